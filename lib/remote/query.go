package remote

type Table string

const (
	ProfilesTable       Table = "profiles"
	LeaveRequestsTable  Table = "leave_requests"
	TasksTable          Table = "tasks"
	AnnouncementsTable  Table = "announcements"
	ProjectUpdatesTable Table = "project_updates"
)

type Operator string

const (
	OpEq     Operator = "eq"
	OpNeq    Operator = "neq"
	OpIn     Operator = "in"
	OpLt     Operator = "lt"
	OpLte    Operator = "lte"
	OpGt     Operator = "gt"
	OpGte    Operator = "gte"
	OpIsNull Operator = "is_null"
)

type Condition struct {
	Column string
	Op     Operator
	Value  interface{}
}

func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

func IsNull(column string) Condition {
	return Condition{Column: column, Op: OpIsNull}
}

type Order struct {
	Column string
	Desc   bool
}

// Query описание запроса к таблице: условия объединяются через AND,
// каждая группа AnyOf - через OR и добавляется к условиям как одно выражение
type Query struct {
	Table   Table
	Columns []string // пусто - все колонки
	Where   []Condition
	AnyOf   [][]Condition
	Joins   []string // связанные сущности (имена полей-ассоциаций)
	Orders  []Order
	Limit   int
}

func From(table Table) Query {
	return Query{Table: table}
}

func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string{}, columns...)
	return q
}

func (q Query) Eq(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpEq, Value: value})
}

func (q Query) Neq(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpNeq, Value: value})
}

func (q Query) In(column string, values interface{}) Query {
	return q.add(Condition{Column: column, Op: OpIn, Value: values})
}

func (q Query) Lt(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpLt, Value: value})
}

func (q Query) Lte(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpLte, Value: value})
}

func (q Query) Gt(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpGt, Value: value})
}

func (q Query) Gte(column string, value interface{}) Query {
	return q.add(Condition{Column: column, Op: OpGte, Value: value})
}

func (q Query) IsNull(column string) Query {
	return q.add(Condition{Column: column, Op: OpIsNull})
}

// Or добавляет группу условий, из которых должно выполниться хотя бы одно
func (q Query) Or(conditions ...Condition) Query {
	if len(conditions) == 0 {
		return q
	}
	groups := make([][]Condition, 0, len(q.AnyOf)+1)
	groups = append(groups, q.AnyOf...)
	q.AnyOf = append(groups, conditions)
	return q
}

func (q Query) Join(association string) Query {
	joins := make([]string, 0, len(q.Joins)+1)
	joins = append(joins, q.Joins...)
	q.Joins = append(joins, association)
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	orders := make([]Order, 0, len(q.Orders)+1)
	orders = append(orders, q.Orders...)
	q.Orders = append(orders, Order{Column: column, Desc: desc})
	return q
}

func (q Query) WithLimit(limit int) Query {
	q.Limit = limit
	return q
}

// Condition ищет условие по колонке среди AND-условий
func (q Query) Condition(column string) (Condition, bool) {
	for _, cond := range q.Where {
		if cond.Column == column {
			return cond, true
		}
	}
	return Condition{}, false
}

func (q Query) add(cond Condition) Query {
	where := make([]Condition, 0, len(q.Where)+1)
	where = append(where, q.Where...)
	q.Where = append(where, cond)
	return q
}

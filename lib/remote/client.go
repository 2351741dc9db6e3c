package remote

import (
	"context"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Client единственная точка обращения к данным: таблица + условия выборки.
// Результаты сразу раскладываются в типизированные структуры dbmodels.
type Client interface {
	Count(ctx context.Context, q Query) (int64, error)
	Find(ctx context.Context, q Query, dest interface{}) error
	First(ctx context.Context, q Query, dest interface{}) error
	Insert(ctx context.Context, table Table, row interface{}) error
	// Update обновляет записи по условиям запроса и, если dest не nil, возвращает обновленную запись
	Update(ctx context.Context, q Query, values map[string]interface{}, dest interface{}) error
}

func NewInstance(db *gorm.DB) Client {
	return &impl{
		db: db,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Count(ctx context.Context, q Query) (int64, error) {
	tx, err := i.filtered(ctx, q)
	if err != nil {
		return 0, err
	}
	var count int64
	err = tx.Count(&count).Error
	if err != nil {
		return 0, normalizeError(err)
	}
	return count, nil
}

func (i impl) Find(ctx context.Context, q Query, dest interface{}) error {
	tx, err := i.selection(ctx, q)
	if err != nil {
		return err
	}
	return normalizeError(tx.Find(dest).Error)
}

func (i impl) First(ctx context.Context, q Query, dest interface{}) error {
	tx, err := i.selection(ctx, q)
	if err != nil {
		return err
	}
	return normalizeError(tx.First(dest).Error)
}

func (i impl) Insert(ctx context.Context, table Table, row interface{}) error {
	err := i.db.WithContext(ctx).
		Table(string(table)).
		Create(row).
		Error
	return normalizeError(err)
}

func (i impl) Update(ctx context.Context, q Query, values map[string]interface{}, dest interface{}) error {
	if len(q.Where) == 0 && len(q.AnyOf) == 0 {
		return NewError("обновление без условий запрещено", "")
	}
	tx, err := i.filtered(ctx, q)
	if err != nil {
		return err
	}
	updMap := make(map[string]interface{}, len(values)+1)
	for key, value := range values {
		updMap[key] = value
	}
	if _, ok := updMap["updated_at"]; !ok {
		updMap["updated_at"] = time.Now().UTC()
	}
	result := tx.Updates(updMap)
	if result.Error != nil {
		return normalizeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return NewError("запись для обновления не найдена", CodeNoRows)
	}
	if dest == nil {
		return nil
	}
	return i.First(ctx, q, dest)
}

// filtered только таблица и условия, без сортировки и связей
func (i impl) filtered(ctx context.Context, q Query) (*gorm.DB, error) {
	if q.Table == "" {
		return nil, NewError("не указана таблица", "")
	}
	tx := i.db.WithContext(ctx).Table(string(q.Table))
	for _, cond := range q.Where {
		expr, err := toExpression(cond)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(expr)
	}
	for _, group := range q.AnyOf {
		exprs := make([]clause.Expression, 0, len(group))
		for _, cond := range group {
			expr, err := toExpression(cond)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		if len(exprs) == 1 {
			// одиночное OR-условие gorm склеивает с предыдущим через OR
			tx = tx.Where(exprs[0])
			continue
		}
		tx = tx.Where(clause.Or(exprs...))
	}
	return tx, nil
}

func (i impl) selection(ctx context.Context, q Query) (*gorm.DB, error) {
	tx, err := i.filtered(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(q.Columns) != 0 {
		tx = tx.Select(q.Columns)
	}
	for _, join := range q.Joins {
		tx = tx.Preload(join)
	}
	for _, order := range q.Orders {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

func toExpression(cond Condition) (clause.Expression, error) {
	column := clause.Column{Name: cond.Column}
	switch cond.Op {
	case OpEq:
		return clause.Eq{Column: column, Value: cond.Value}, nil
	case OpNeq:
		return clause.Neq{Column: column, Value: cond.Value}, nil
	case OpLt:
		return clause.Lt{Column: column, Value: cond.Value}, nil
	case OpLte:
		return clause.Lte{Column: column, Value: cond.Value}, nil
	case OpGt:
		return clause.Gt{Column: column, Value: cond.Value}, nil
	case OpGte:
		return clause.Gte{Column: column, Value: cond.Value}, nil
	case OpIsNull:
		return clause.Expr{SQL: "? IS NULL", Vars: []interface{}{column}}, nil
	case OpIn:
		values, err := toInterfaceSlice(cond.Value)
		if err != nil {
			return nil, err
		}
		return clause.IN{Column: column, Values: values}, nil
	}
	return nil, errors.Errorf("неизвестный оператор %v для колонки %v", cond.Op, cond.Column)
}

func toInterfaceSlice(value interface{}) ([]interface{}, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Errorf("для условия IN ожидается список, получено %T", value)
	}
	result := make([]interface{}, 0, rv.Len())
	for idx := 0; idx < rv.Len(); idx++ {
		result = append(result, rv.Index(idx).Interface())
	}
	return result, nil
}

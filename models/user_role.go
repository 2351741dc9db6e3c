package models

type UserRole string

const (
	EmployeeRole   UserRole = "employee"
	ManagerRole    UserRole = "manager"
	SuperAdminRole UserRole = "super_admin"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole:   "Сотрудник",
	ManagerRole:    "Руководитель",
	SuperAdminRole: "Суперадмин",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) IsManager() bool {
	return r == ManagerRole
}

func (r UserRole) IsSuperAdmin() bool {
	return r == SuperAdminRole
}

// IsManagerOrAdmin руководитель или суперадмин
func (r UserRole) IsManagerOrAdmin() bool {
	return r == ManagerRole || r == SuperAdminRole
}

const (
	DefaultDepartment = "General"
	DefaultJobTitle   = "Employee"
	DefaultLocation   = "Office"
	DefaultFullName   = "User"
)

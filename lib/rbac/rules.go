package rbac

import (
	"staff-portal-backend/models"
)

var (
	AllRoles            = []models.UserRole{models.EmployeeRole, models.ManagerRole, models.SuperAdminRole}
	ManagerAdminRoleSet = []models.UserRole{models.ManagerRole, models.SuperAdminRole}
	AdminRoleSet        = []models.UserRole{models.SuperAdminRole}
)

func (i *impl) initRules() {
	i.profile()
	i.dashboard()
	i.directory()
	i.employees()
	i.leave()
	i.tasks()
	i.announcements()
	i.projectUpdates()
	i.reports()
}

func (i *impl) profile() {
	i.RegisterRule(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/profile [get]")
	i.RegisterRule(models.ProfileModule, models.ViewPermission, AllRoles, "/api/v1/profile/permissions [get]")
	i.RegisterRule(models.ProfileModule, models.EditPermission, AllRoles, "/api/v1/profile [put]")
	i.RegisterRule(models.ProfileModule, models.FilesPermission, AllRoles, "/api/v1/profile/picture [post]")
}

func (i *impl) dashboard() {
	i.RegisterRule(models.DashboardModule, models.ViewPermission, AllRoles, "/api/v1/dashboard/stats [get]")
	i.RegisterRule(models.DashboardModule, models.ViewPermission, AllRoles, "/api/v1/dashboard/activity [get]")
}

func (i *impl) directory() {
	i.RegisterRule(models.DirectoryModule, models.ViewPermission, AllRoles, "/api/v1/directory [get]")
	i.RegisterRule(models.DirectoryModule, models.ViewPermission, AllRoles, "/api/v1/directory/departments [get]")
}

func (i *impl) employees() {
	//VIEW
	i.RegisterRule(models.EmployeesModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin/employees [get]")
	i.RegisterRule(models.EmployeesModule, models.ExportPermission, AdminRoleSet, "/api/v1/admin/employees/xlsx [get]")
	//MANAGE
	i.RegisterRule(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/employees [post]")
	i.RegisterRule(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/employees/{id} [put]")
	i.RegisterRule(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/employees/{id}/toggle_active [put]")
	i.RegisterRule(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/cache [delete]")
}

func (i *impl) leave() {
	i.RegisterRule(models.LeaveModule, models.ViewPermission, AllRoles, "/api/v1/leave [get]")
	i.RegisterRule(models.LeaveModule, models.CreatePermission, AllRoles, "/api/v1/leave [post]")
	i.RegisterRule(models.LeaveModule, models.ApprovePermission, ManagerAdminRoleSet, "/api/v1/leave/{id}/decide [put]")
}

func (i *impl) tasks() {
	i.RegisterRule(models.TasksModule, models.ViewPermission, AllRoles, "/api/v1/tasks [get]")
	i.RegisterRule(models.TasksModule, models.CreatePermission, ManagerAdminRoleSet, "/api/v1/tasks [post]")
	// видимость задачи проверяется в обработчике
	i.RegisterRule(models.TasksModule, models.EditPermission, AllRoles, "/api/v1/tasks/{id}/status [put]")
}

func (i *impl) announcements() {
	i.RegisterRule(models.AnnouncementsModule, models.ViewPermission, AllRoles, "/api/v1/announcements [get]")
	i.RegisterRule(models.AnnouncementsModule, models.CreatePermission, AdminRoleSet, "/api/v1/announcements [post]")
}

func (i *impl) projectUpdates() {
	i.RegisterRule(models.ProjectModule, models.ViewPermission, AllRoles, "/api/v1/project_updates [get]")
	i.RegisterRule(models.ProjectModule, models.CreatePermission, AllRoles, "/api/v1/project_updates [post]")
	i.RegisterRule(models.ProjectModule, models.FilesPermission, AllRoles, "/api/v1/project_updates/images [post]")
	i.RegisterRule(models.ProjectModule, models.ApprovePermission, ManagerAdminRoleSet, "/api/v1/project_updates/{id}/review [put]")
}

func (i *impl) reports() {
	i.RegisterRule(models.ReportsModule, models.ViewPermission, ManagerAdminRoleSet, "/api/v1/reports [get]")
	i.RegisterRule(models.ReportsModule, models.ExportPermission, ManagerAdminRoleSet, "/api/v1/reports/xlsx [get]")
	i.RegisterRule(models.ReportsModule, models.ExportPermission, ManagerAdminRoleSet, "/api/v1/reports/pdf [get]")
}

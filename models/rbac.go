package models

type Module string

const (
	DashboardModule     Module = "DASHBOARD"
	DirectoryModule     Module = "DIRECTORY"
	EmployeesModule     Module = "EMPLOYEES"
	LeaveModule         Module = "LEAVE"
	TasksModule         Module = "TASKS"
	AnnouncementsModule Module = "ANNOUNCEMENTS"
	ProjectModule       Module = "PROJECT_UPDATES"
	ReportsModule       Module = "REPORTS"
	ProfileModule       Module = "PROFILE"
)

type Permission string

const (
	CreatePermission  Permission = "CREATE"
	EditPermission    Permission = "EDIT"
	ViewPermission    Permission = "VIEW"
	ManagePermission  Permission = "MANAGE"
	ApprovePermission Permission = "APPROVE"
	ExportPermission  Permission = "EXPORT"
	FilesPermission   Permission = "FILES"
)

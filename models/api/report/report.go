package reportapimodels

import dashboardapimodels "staff-portal-backend/models/api/dashboard"

type ReportFilter struct {
	Days       int    `json:"days" query:"days"`             // период в днях, по умолчанию 30
	Department string `json:"department" query:"department"` // пусто - все отделы
}

func (r ReportFilter) GetDays() int {
	if r.Days <= 0 {
		return 30
	}
	return r.Days
}

type ChartItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

type ReportData struct {
	// Сотрудники
	TotalEmployees        int64       `json:"total_employees"`
	ActiveEmployees       int64       `json:"active_employees"`
	NewHiresThisMonth     int64       `json:"new_hires_this_month"`
	EmployeesByDepartment []ChartItem `json:"employees_by_department"`
	EmployeesByRole       []ChartItem `json:"employees_by_role"`

	// Отпуска
	TotalLeaveRequests int         `json:"total_leave_requests"`
	ApprovedLeaves     int         `json:"approved_leaves"`
	PendingLeaves      int         `json:"pending_leaves"`
	RejectedLeaves     int         `json:"rejected_leaves"`
	LeavesByType       []ChartItem `json:"leaves_by_type"`
	AverageLeaveDays   float64     `json:"average_leave_days"`

	// Задачи
	TotalTasks         int         `json:"total_tasks"`
	CompletedTasks     int         `json:"completed_tasks"`
	PendingTasks       int         `json:"pending_tasks"`
	OverdueTasks       int         `json:"overdue_tasks"`
	TasksByPriority    []ChartItem `json:"tasks_by_priority"`
	TaskCompletionRate float64     `json:"task_completion_rate"`

	// Проекты
	TotalProjects      int                            `json:"total_projects"`
	ApprovedProjects   int                            `json:"approved_projects"`
	DraftProjects      int                            `json:"draft_projects"`
	SubmittedProjects  int                            `json:"submitted_projects"`
	ProjectsByLocation []dashboardapimodels.NameValue `json:"projects_by_location"`
}

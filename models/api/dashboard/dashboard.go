package dashboardapimodels

import "time"

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type StatusBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type DashboardStats struct {
	TotalEmployees      int64          `json:"total_employees"`
	PendingLeaves       int64          `json:"pending_leaves"`
	ActiveTasks         int64          `json:"active_tasks"`
	RecentAnnouncements int64          `json:"recent_announcements"`
	LeavesByDepartment  []NameValue    `json:"leaves_by_department"`
	TasksByStatus       []StatusBucket `json:"tasks_by_status"`
	MyTasks             int64          `json:"my_tasks"`
	MyPendingLeaves     int64          `json:"my_pending_leaves"`
	TeamSize            int64          `json:"team_size"`
	UpcomingDeadlines   int64          `json:"upcoming_deadlines"`
}

type RecentActivity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // task/leave/announcement
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
}

// Package visibility правила видимости сущностей в зависимости от роли.
// Правила определяют что показывать пользователю, а не что можно выбрать из БД.
package visibility

import (
	"errors"

	"staff-portal-backend/lib/remote"
	"staff-portal-backend/models"
	dbmodels "staff-portal-backend/models/db"
)

type Viewer struct {
	ID         string
	Role       models.UserRole
	Department string
}

func FromProfile(profile dbmodels.Profile) Viewer {
	return Viewer{
		ID:         profile.ID,
		Role:       profile.Role,
		Department: profile.Department,
	}
}

func CanViewTask(v Viewer, task dbmodels.Task) bool {
	if v.Role.IsSuperAdmin() {
		return true
	}
	if task.AssignedTo == v.ID || task.AssignedBy == v.ID {
		return true
	}
	return v.Role.IsManager() && task.Department == v.Department
}

func CanViewLeave(v Viewer, leave dbmodels.LeaveRequest) bool {
	if v.Role.IsManagerOrAdmin() {
		return true
	}
	return leave.EmployeeID == v.ID
}

func CanViewAnnouncement(v Viewer, rec dbmodels.Announcement) bool {
	if v.Role.IsSuperAdmin() || rec.IsCompanyWide() {
		return true
	}
	return *rec.Department == v.Department
}

func CanViewProjectUpdate(v Viewer, rec dbmodels.ProjectUpdate) bool {
	if v.Role.IsSuperAdmin() || rec.EmployeeID == v.ID {
		return true
	}
	return v.Role.IsManager() && rec.GetDepartment() == v.Department
}

func Filter[T any](items []T, visible func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if visible(item) {
			result = append(result, item)
		}
	}
	return result
}

func FilterTasks(v Viewer, list []dbmodels.Task) []dbmodels.Task {
	return Filter(list, func(rec dbmodels.Task) bool { return CanViewTask(v, rec) })
}

func FilterLeaves(v Viewer, list []dbmodels.LeaveRequest) []dbmodels.LeaveRequest {
	return Filter(list, func(rec dbmodels.LeaveRequest) bool { return CanViewLeave(v, rec) })
}

func FilterAnnouncements(v Viewer, list []dbmodels.Announcement) []dbmodels.Announcement {
	return Filter(list, func(rec dbmodels.Announcement) bool { return CanViewAnnouncement(v, rec) })
}

func FilterProjectUpdates(v Viewer, list []dbmodels.ProjectUpdate) []dbmodels.ProjectUpdate {
	return Filter(list, func(rec dbmodels.ProjectUpdate) bool { return CanViewProjectUpdate(v, rec) })
}

func CanUpdateTaskStatus(v Viewer, task dbmodels.Task) bool {
	return CanViewTask(v, task)
}

func CanAssignTasks(v Viewer) bool {
	return v.Role.IsManagerOrAdmin()
}

func CanApproveLeave(v Viewer, leave dbmodels.LeaveRequest) bool {
	return v.Role.IsManagerOrAdmin() && CanViewLeave(v, leave)
}

func CanReviewProjectUpdate(v Viewer, rec dbmodels.ProjectUpdate) bool {
	return v.Role.IsManagerOrAdmin() && CanViewProjectUpdate(v, rec)
}

func CanManageEmployees(v Viewer) bool {
	return v.Role.IsSuperAdmin()
}

func CanPublishAnnouncement(v Viewer) bool {
	return v.Role.IsSuperAdmin()
}

func CanViewReports(v Viewer) bool {
	return v.Role.IsManagerOrAdmin()
}

// TaskScope сужает выборку задач до видимых пользователю
func TaskScope(v Viewer, q remote.Query) remote.Query {
	switch v.Role {
	case models.SuperAdminRole:
		return q
	case models.ManagerRole:
		return q.Or(
			remote.Eq("assigned_to", v.ID),
			remote.Eq("assigned_by", v.ID),
			remote.Eq("department", v.Department),
		)
	}
	return q.Or(
		remote.Eq("assigned_to", v.ID),
		remote.Eq("assigned_by", v.ID),
	)
}

func LeaveScope(v Viewer, q remote.Query) remote.Query {
	if v.Role.IsManagerOrAdmin() {
		return q
	}
	return q.Eq("employee_id", v.ID)
}

func AnnouncementScope(v Viewer, q remote.Query) remote.Query {
	if v.Role.IsSuperAdmin() {
		return q
	}
	return q.Or(
		remote.IsNull("department"),
		remote.Eq("department", ""),
		remote.Eq("department", v.Department),
	)
}

// ErrForbidden действие недоступно пользователю
var ErrForbidden = errors.New("операция недоступна")

// Package dataservice агрегирует данные для дашборда и отдает часто используемые списки через кэш
package dataservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"staff-portal-backend/lib/cache"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/models"
	dashboardapimodels "staff-portal-backend/models/api/dashboard"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Scope string

const (
	UserScope   Scope = "user"
	GlobalScope Scope = "global"
)

const (
	recentTasksLimit         = 3
	recentLeavesLimit        = 2
	recentAnnouncementsLimit = 2
	recentActivityLimit      = 5
	activityDescriptionLimit = 100
	deadlineHorizon          = 7 * 24 * time.Hour
)

type Provider interface {
	GetDashboardStats(ctx context.Context, userID string, role models.UserRole, department string) (dashboardapimodels.DashboardStats, error)
	GetRecentActivity(ctx context.Context, userID, department string) ([]dashboardapimodels.RecentActivity, error)
	GetEmployees(ctx context.Context) ([]dbmodels.Profile, error)
	GetTasks(ctx context.Context, userID string, role models.UserRole) ([]dbmodels.Task, error)
	GetLeaveRequests(ctx context.Context, userID string, role models.UserRole) ([]dbmodels.LeaveRequest, error)
	InvalidateCache(scope Scope, userID string)
}

var Instance Provider

func NewHandler(client remote.Client, cacheProvider cache.Provider) {
	Instance = NewInstance(client, cacheProvider, clockwork.NewRealClock())
}

func NewInstance(client remote.Client, cacheProvider cache.Provider, clock clockwork.Clock) Provider {
	return &impl{
		client: client,
		cache:  cacheProvider,
		clock:  clock,
	}
}

type impl struct {
	client remote.Client
	cache  cache.Provider
	clock  clockwork.Clock
}

func (i impl) GetDashboardStats(ctx context.Context, userID string, role models.UserRole, department string) (dashboardapimodels.DashboardStats, error) {
	if cached, ok := i.cache.GetDashboardStats(userID); ok {
		if stats, ok := cached.(dashboardapimodels.DashboardStats); ok {
			return stats, nil
		}
	}
	logger := log.
		WithField("user_id", userID).
		WithField("role", role)

	var (
		stats          dashboardapimodels.DashboardStats
		approvedLeaves []dbmodels.LeaveRequest
		taskStatuses   []dbmodels.Task
	)
	nextWeek := i.today().Add(deadlineHorizon)

	g, gCtx := errgroup.WithContext(ctx)
	count := func(dest *int64, q remote.Query) {
		g.Go(func() error {
			value, err := i.client.Count(gCtx, q)
			if err != nil {
				return err
			}
			*dest = value
			return nil
		})
	}
	count(&stats.TotalEmployees, remote.From(remote.ProfilesTable).
		Eq("is_active", true))
	count(&stats.PendingLeaves, remote.From(remote.LeaveRequestsTable).
		Eq("status", models.LeavePending))
	count(&stats.ActiveTasks, remote.From(remote.TasksTable).
		In("status", models.ActiveTaskStatuses))
	count(&stats.RecentAnnouncements, remote.From(remote.AnnouncementsTable))
	g.Go(func() error {
		q := remote.From(remote.LeaveRequestsTable).
			Select("id", "employee_id").
			Join("Employee").
			Eq("status", models.LeaveApproved)
		return i.client.Find(gCtx, q, &approvedLeaves)
	})
	g.Go(func() error {
		q := remote.From(remote.TasksTable).
			Select("id", "status")
		return i.client.Find(gCtx, q, &taskStatuses)
	})
	count(&stats.MyTasks, remote.From(remote.TasksTable).
		Eq("assigned_to", userID).
		In("status", models.ActiveTaskStatuses))
	count(&stats.MyPendingLeaves, remote.From(remote.LeaveRequestsTable).
		Eq("employee_id", userID).
		Eq("status", models.LeavePending))
	if role.IsManagerOrAdmin() {
		count(&stats.TeamSize, remote.From(remote.ProfilesTable).
			Eq("department", department).
			Eq("is_active", true))
	}
	count(&stats.UpcomingDeadlines, remote.From(remote.TasksTable).
		Eq("assigned_to", userID).
		Lte("due_date", nextWeek).
		In("status", models.ActiveTaskStatuses))

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("ошибка получения статистики для дашборда")
		return dashboardapimodels.DashboardStats{}, err
	}
	stats.LeavesByDepartment = processLeavesByDepartment(approvedLeaves)
	stats.TasksByStatus = processTasksByStatus(taskStatuses)

	i.cache.SetDashboardStats(userID, stats)
	return stats, nil
}

func (i impl) GetRecentActivity(ctx context.Context, userID, department string) ([]dashboardapimodels.RecentActivity, error) {
	var (
		tasks         []dbmodels.Task
		leaves        []dbmodels.LeaveRequest
		announcements []dbmodels.Announcement
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := remote.From(remote.TasksTable).
			Select("id", "title", "description", "created_at", "status", "priority").
			Eq("assigned_to", userID).
			OrderBy("created_at", true).
			WithLimit(recentTasksLimit)
		return i.client.Find(gCtx, q, &tasks)
	})
	g.Go(func() error {
		q := remote.From(remote.LeaveRequestsTable).
			Select("id", "leave_type", "start_date", "end_date", "created_at", "status").
			Eq("employee_id", userID).
			OrderBy("created_at", true).
			WithLimit(recentLeavesLimit)
		return i.client.Find(gCtx, q, &leaves)
	})
	g.Go(func() error {
		q := remote.From(remote.AnnouncementsTable).
			Select("id", "title", "content", "created_at", "is_priority", "department").
			Or(
				remote.IsNull("department"),
				remote.Eq("department", ""),
				remote.Eq("department", department),
			).
			OrderBy("created_at", true).
			WithLimit(recentAnnouncementsLimit)
		return i.client.Find(gCtx, q, &announcements)
	})
	if err := g.Wait(); err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка получения последних событий")
		return nil, err
	}
	return mergeActivity(tasks, leaves, announcements), nil
}

func (i impl) GetEmployees(ctx context.Context) ([]dbmodels.Profile, error) {
	if cached, ok := i.cache.GetProfiles(); ok {
		if list, ok := cached.([]dbmodels.Profile); ok {
			return list, nil
		}
	}
	list := []dbmodels.Profile{}
	q := remote.From(remote.ProfilesTable).
		Eq("is_active", true).
		OrderBy("full_name", false)
	err := i.client.Find(ctx, q, &list)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сотрудников")
		return nil, err
	}
	i.cache.SetProfiles(list)
	return list, nil
}

func (i impl) GetTasks(ctx context.Context, userID string, role models.UserRole) ([]dbmodels.Task, error) {
	if cached, ok := i.cache.GetTasks(userID); ok {
		if list, ok := cached.([]dbmodels.Task); ok {
			return list, nil
		}
	}
	q := remote.From(remote.TasksTable).
		Join("AssignedToProfile").
		Join("AssignedByProfile").
		OrderBy("created_at", true)
	if !role.IsManagerOrAdmin() {
		q = q.Or(
			remote.Eq("assigned_to", userID),
			remote.Eq("assigned_by", userID),
		)
	}
	list := []dbmodels.Task{}
	err := i.client.Find(ctx, q, &list)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка получения списка задач")
		return nil, err
	}
	i.cache.SetTasks(userID, list)
	return list, nil
}

func (i impl) GetLeaveRequests(ctx context.Context, userID string, role models.UserRole) ([]dbmodels.LeaveRequest, error) {
	if cached, ok := i.cache.GetLeaveRequests(userID); ok {
		if list, ok := cached.([]dbmodels.LeaveRequest); ok {
			return list, nil
		}
	}
	q := remote.From(remote.LeaveRequestsTable).
		Join("Employee").
		OrderBy("created_at", true)
	if !role.IsManagerOrAdmin() {
		q = q.Eq("employee_id", userID)
	}
	list := []dbmodels.LeaveRequest{}
	err := i.client.Find(ctx, q, &list)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("ошибка получения списка заявок на отпуск")
		return nil, err
	}
	i.cache.SetLeaveRequests(userID, list)
	return list, nil
}

func (i impl) InvalidateCache(scope Scope, userID string) {
	switch scope {
	case UserScope:
		if userID != "" {
			i.cache.InvalidateUserData(userID)
		}
	case GlobalScope:
		i.cache.InvalidateGlobalData()
	}
}

func (i impl) today() time.Time {
	return i.clock.Now().UTC().Truncate(24 * time.Hour)
}

// processLeavesByDepartment количество одобренных отпусков по отделам в порядке появления отдела
func processLeavesByDepartment(list []dbmodels.LeaveRequest) []dashboardapimodels.NameValue {
	result := []dashboardapimodels.NameValue{}
	index := map[string]int{}
	for _, rec := range list {
		department := rec.GetDepartment()
		if department == "" {
			continue
		}
		pos, ok := index[department]
		if !ok {
			index[department] = len(result)
			result = append(result, dashboardapimodels.NameValue{Name: department, Value: 1})
			continue
		}
		result[pos].Value++
	}
	return result
}

func processTasksByStatus(list []dbmodels.Task) []dashboardapimodels.StatusBucket {
	result := []dashboardapimodels.StatusBucket{
		{Name: "Pending", Color: "#f59e0b"},
		{Name: "In Progress", Color: "#3b82f6"},
		{Name: "Completed", Color: "#10b981"},
	}
	for _, rec := range list {
		switch rec.Status {
		case models.TaskPending:
			result[0].Value++
		case models.TaskInProgress:
			result[1].Value++
		case models.TaskCompleted:
			result[2].Value++
		}
	}
	return result
}

func mergeActivity(tasks []dbmodels.Task, leaves []dbmodels.LeaveRequest, announcements []dbmodels.Announcement) []dashboardapimodels.RecentActivity {
	result := make([]dashboardapimodels.RecentActivity, 0, len(tasks)+len(leaves)+len(announcements))
	for _, rec := range tasks {
		result = append(result, dashboardapimodels.RecentActivity{
			ID:          rec.ID,
			Type:        string(models.TaskActivity),
			Title:       rec.Title,
			Description: rec.Description,
			Timestamp:   rec.CreatedAt,
			Status:      string(rec.Status),
			Priority:    string(rec.Priority),
		})
	}
	for _, rec := range leaves {
		result = append(result, dashboardapimodels.RecentActivity{
			ID:    rec.ID,
			Type:  string(models.LeaveActivity),
			Title: fmt.Sprintf("%s Leave Request", rec.LeaveType),
			Description: fmt.Sprintf("%s to %s",
				rec.StartDate.Format(time.DateOnly),
				rec.EndDate.Format(time.DateOnly)),
			Timestamp: rec.CreatedAt,
			Status:    string(rec.Status),
		})
	}
	for _, rec := range announcements {
		activity := dashboardapimodels.RecentActivity{
			ID:          rec.ID,
			Type:        string(models.AnnouncementActivity),
			Title:       rec.Title,
			Description: truncate(rec.Content, activityDescriptionLimit),
			Timestamp:   rec.CreatedAt,
		}
		if rec.IsPriority {
			activity.Priority = string(models.HighPriority)
		}
		result = append(result, activity)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Timestamp.After(result[b].Timestamp)
	})
	if len(result) > recentActivityLimit {
		result = result[:recentActivityLimit]
	}
	return result
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

package reports

import (
	"context"
	"strings"
	"time"

	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	dashboardapimodels "staff-portal-backend/models/api/dashboard"
	reportapimodels "staff-portal-backend/models/api/report"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var chartColors = []string{
	"#3b82f6",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#8b5cf6",
	"#ec4899",
	"#6366f1",
	"#14b8a6",
}

type Provider interface {
	Build(ctx context.Context, user dbmodels.Profile, filter reportapimodels.ReportFilter) (reportapimodels.ReportData, error)
}

var Instance Provider

func NewHandler(client remote.Client) {
	Instance = NewInstance(client, clockwork.NewRealClock())
}

func NewInstance(client remote.Client, clock clockwork.Clock) Provider {
	return &impl{
		client: client,
		clock:  clock,
	}
}

type impl struct {
	client remote.Client
	clock  clockwork.Clock
}

func (i impl) Build(ctx context.Context, user dbmodels.Profile, filter reportapimodels.ReportFilter) (reportapimodels.ReportData, error) {
	if !visibility.CanViewReports(visibility.FromProfile(user)) {
		return reportapimodels.ReportData{}, visibility.ErrForbidden
	}
	logger := log.
		WithField("user_id", user.ID).
		WithField("days", filter.GetDays()).
		WithField("department", filter.Department)

	now := i.clock.Now().UTC()
	since := now.AddDate(0, 0, -filter.GetDays())
	today := helpers.StartOfDay(now)

	profiles := remote.From(remote.ProfilesTable)
	if filter.Department != "" {
		profiles = profiles.Eq("department", filter.Department)
	}

	result := reportapimodels.ReportData{}
	var active []dbmodels.Profile
	var leaves []dbmodels.LeaveRequest
	var tasks []dbmodels.Task
	var projects []dbmodels.ProjectUpdate

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		result.TotalEmployees, err = i.client.Count(gctx, profiles)
		return errors.Wrap(err, "ошибка подсчета сотрудников")
	})
	g.Go(func() error {
		err := i.client.Find(gctx, profiles.Select("id", "department", "role").Eq("is_active", true), &active)
		return errors.Wrap(err, "ошибка получения активных сотрудников")
	})
	g.Go(func() (err error) {
		result.NewHiresThisMonth, err = i.client.Count(gctx, profiles.Gte("joining_date", helpers.StartOfMonth(now)))
		return errors.Wrap(err, "ошибка подсчета новых сотрудников")
	})
	g.Go(func() error {
		q := remote.From(remote.LeaveRequestsTable).
			Join("Employee").
			Gte("created_at", since)
		err := i.client.Find(gctx, q, &leaves)
		return errors.Wrap(err, "ошибка получения заявок на отпуск")
	})
	g.Go(func() error {
		q := remote.From(remote.TasksTable).Gte("created_at", since)
		if filter.Department != "" {
			q = q.Eq("department", filter.Department)
		}
		err := i.client.Find(gctx, q, &tasks)
		return errors.Wrap(err, "ошибка получения задач")
	})
	g.Go(func() error {
		q := remote.From(remote.ProjectUpdatesTable).
			Join("Employee").
			Gte("created_at", since)
		err := i.client.Find(gctx, q, &projects)
		return errors.Wrap(err, "ошибка получения отчетов по проектам")
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("ошибка построения отчета")
		return reportapimodels.ReportData{}, err
	}

	if filter.Department != "" {
		leaves = byDepartment(leaves, filter.Department)
		projects = byDepartment(projects, filter.Department)
	}

	fillEmployees(&result, active)
	fillLeaves(&result, leaves)
	fillTasks(&result, tasks, today)
	fillProjects(&result, projects)
	logger.Debug("отчет построен")
	return result, nil
}

func byDepartment[T interface{ GetDepartment() string }](list []T, department string) []T {
	result := make([]T, 0, len(list))
	for _, rec := range list {
		if rec.GetDepartment() == department {
			result = append(result, rec)
		}
	}
	return result
}

func fillEmployees(result *reportapimodels.ReportData, active []dbmodels.Profile) {
	result.ActiveEmployees = int64(len(active))
	departments := counter{}
	roles := counter{}
	for _, rec := range active {
		departments.add(rec.Department)
		roles.add(strings.ToUpper(strings.ReplaceAll(string(rec.Role), "_", " ")))
	}
	result.EmployeesByDepartment = departments.chart(true)
	result.EmployeesByRole = roles.chart(false)
}

func fillLeaves(result *reportapimodels.ReportData, leaves []dbmodels.LeaveRequest) {
	result.TotalLeaveRequests = len(leaves)
	types := counter{}
	totalDays := 0
	for _, rec := range leaves {
		switch rec.Status {
		case models.LeaveApproved:
			result.ApprovedLeaves++
		case models.LeavePending:
			result.PendingLeaves++
		case models.LeaveRejected:
			result.RejectedLeaves++
		}
		types.add(strings.ToUpper(string(rec.LeaveType)))
		totalDays += rec.DaysCount
	}
	result.LeavesByType = types.chart(true)
	if len(leaves) > 0 {
		result.AverageLeaveDays = float64(totalDays) / float64(len(leaves))
	}
}

func fillTasks(result *reportapimodels.ReportData, tasks []dbmodels.Task, today time.Time) {
	result.TotalTasks = len(tasks)
	priorities := counter{}
	for _, rec := range tasks {
		switch rec.Status {
		case models.TaskCompleted:
			result.CompletedTasks++
		case models.TaskPending:
			result.PendingTasks++
		}
		if rec.Status != models.TaskCompleted && rec.DueDate != nil && rec.DueDate.Before(today) {
			result.OverdueTasks++
		}
		priorities.add(strings.ToUpper(string(rec.Priority)))
	}
	result.TasksByPriority = priorities.chart(true)
	if len(tasks) > 0 {
		result.TaskCompletionRate = float64(result.CompletedTasks) / float64(len(tasks)) * 100
	}
}

func fillProjects(result *reportapimodels.ReportData, projects []dbmodels.ProjectUpdate) {
	result.TotalProjects = len(projects)
	locations := counter{}
	for _, rec := range projects {
		switch rec.Status {
		case models.ProjectApproved:
			result.ApprovedProjects++
		case models.ProjectDraft:
			result.DraftProjects++
		case models.ProjectSubmitted:
			result.SubmittedProjects++
		}
		locations.add(rec.WorkLocation)
	}
	result.ProjectsByLocation = make([]dashboardapimodels.NameValue, 0, len(locations.names))
	for _, item := range locations.chart(false) {
		result.ProjectsByLocation = append(result.ProjectsByLocation, dashboardapimodels.NameValue{Name: item.Name, Value: item.Value})
	}
}

// counter считает значения в порядке первого появления, пустые пропускаются
type counter struct {
	names  []string
	values map[string]int
}

func (c *counter) add(name string) {
	if name == "" {
		return
	}
	if c.values == nil {
		c.values = map[string]int{}
	}
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name]++
}

func (c counter) chart(colored bool) []reportapimodels.ChartItem {
	result := make([]reportapimodels.ChartItem, 0, len(c.names))
	for idx, name := range c.names {
		item := reportapimodels.ChartItem{Name: name, Value: c.values[name]}
		if colored {
			item.Color = chartColors[idx%len(chartColors)]
		}
		result = append(result, item)
	}
	return result
}

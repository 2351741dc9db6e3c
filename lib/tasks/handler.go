package tasks

import (
	"context"
	"strings"

	"staff-portal-backend/lib/dataservice"
	"staff-portal-backend/lib/notify"
	profilestore "staff-portal-backend/lib/profiles/store"
	"staff-portal-backend/lib/remote"
	taskstore "staff-portal-backend/lib/tasks/store"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	taskapimodels "staff-portal-backend/models/api/task"
	dbmodels "staff-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, user dbmodels.Profile, data taskapimodels.CreateTask) (view taskapimodels.TaskView, hMsg string, err error)
	List(ctx context.Context, user dbmodels.Profile) ([]taskapimodels.TaskView, error)
	UpdateStatus(ctx context.Context, user dbmodels.Profile, id string, data taskapimodels.TaskStatusUpdate) (view taskapimodels.TaskView, hMsg string, err error)
}

var Instance Provider

func NewHandler(client remote.Client, data dataservice.Provider, notifier notify.Provider) {
	Instance = NewInstance(taskstore.NewInstance(client), profilestore.NewInstance(client), data, notifier)
}

func NewInstance(store taskstore.Provider, profiles profilestore.Provider, data dataservice.Provider, notifier notify.Provider) Provider {
	return &impl{
		store:    store,
		profiles: profiles,
		data:     data,
		notifier: notifier,
	}
}

type impl struct {
	store    taskstore.Provider
	profiles profilestore.Provider
	data     dataservice.Provider
	notifier notify.Provider
}

func (i impl) Create(ctx context.Context, user dbmodels.Profile, data taskapimodels.CreateTask) (taskapimodels.TaskView, string, error) {
	if !visibility.CanAssignTasks(visibility.FromProfile(user)) {
		return taskapimodels.TaskView{}, "", visibility.ErrForbidden
	}
	priority := models.MediumPriority
	if data.Priority != "" {
		priority = models.TaskPriority(data.Priority)
		if !priority.IsValid() {
			return taskapimodels.TaskView{}, "некорректный приоритет", nil
		}
	}
	assignee, err := i.profiles.GetByID(ctx, data.AssignedTo)
	if err != nil {
		return taskapimodels.TaskView{}, "", err
	}
	if assignee == nil || !assignee.IsActive {
		return taskapimodels.TaskView{}, "исполнитель не найден", nil
	}
	department := user.Department
	if department == "" {
		department = models.DefaultDepartment
	}
	rec := dbmodels.Task{
		Title:       strings.TrimSpace(data.Title),
		Description: strings.TrimSpace(data.Description),
		AssignedTo:  assignee.ID,
		AssignedBy:  user.ID,
		Priority:    priority,
		Status:      models.TaskPending,
		Department:  department,
	}
	if data.DueDate != "" {
		dueDate, err := helpers.ParseDate(data.DueDate)
		if err != nil {
			return taskapimodels.TaskView{}, err.Error(), nil
		}
		rec.DueDate = &dueDate
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		return taskapimodels.TaskView{}, "", err
	}
	i.data.InvalidateCache(dataservice.UserScope, assignee.ID)
	i.data.InvalidateCache(dataservice.UserScope, user.ID)
	log.
		WithField("task_id", id).
		WithField("assigned_to", assignee.ID).
		WithField("assigned_by", user.ID).
		Info("создана задача")

	created, err := i.store.GetByID(ctx, id)
	if err != nil {
		return taskapimodels.TaskView{}, "", err
	}
	if created == nil {
		return taskapimodels.TaskView{}, "", remote.NewError("созданная задача не найдена", remote.CodeNoRows)
	}
	if i.notifier != nil {
		i.notifier.TaskAssigned(*created, *assignee, user)
	}
	return created.ToModel(), "", nil
}

func (i impl) List(ctx context.Context, user dbmodels.Profile) ([]taskapimodels.TaskView, error) {
	list, err := i.data.GetTasks(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	list = visibility.FilterTasks(visibility.FromProfile(user), list)
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) UpdateStatus(ctx context.Context, user dbmodels.Profile, id string, data taskapimodels.TaskStatusUpdate) (taskapimodels.TaskView, string, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return taskapimodels.TaskView{}, "", err
	}
	if rec == nil {
		return taskapimodels.TaskView{}, "задача не найдена", nil
	}
	if !visibility.CanUpdateTaskStatus(visibility.FromProfile(user), *rec) {
		return taskapimodels.TaskView{}, "", visibility.ErrForbidden
	}
	status := models.TaskStatus(data.Status)
	if !status.IsValid() {
		return taskapimodels.TaskView{}, "некорректный статус", nil
	}
	if !rec.Status.CanMoveTo(status) {
		return taskapimodels.TaskView{}, "недопустимая смена статуса задачи", nil
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	if err = i.store.Update(ctx, id, updMap); err != nil {
		return taskapimodels.TaskView{}, "", err
	}
	i.data.InvalidateCache(dataservice.UserScope, rec.AssignedTo)
	i.data.InvalidateCache(dataservice.UserScope, rec.AssignedBy)
	if user.ID != rec.AssignedTo && user.ID != rec.AssignedBy {
		i.data.InvalidateCache(dataservice.UserScope, user.ID)
	}
	log.
		WithField("task_id", id).
		WithField("user_id", user.ID).
		WithField("status", status).
		Info("изменен статус задачи")
	rec.Status = status
	return rec.ToModel(), "", nil
}

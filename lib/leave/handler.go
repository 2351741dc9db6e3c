package leave

import (
	"context"
	"strings"

	"staff-portal-backend/lib/dataservice"
	leavestore "staff-portal-backend/lib/leave/store"
	"staff-portal-backend/lib/notify"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	leaveapimodels "staff-portal-backend/models/api/leave"
	dbmodels "staff-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, user dbmodels.Profile, data leaveapimodels.CreateLeaveRequest) (view leaveapimodels.LeaveRequestView, hMsg string, err error)
	List(ctx context.Context, user dbmodels.Profile) ([]leaveapimodels.LeaveRequestView, error)
	Decide(ctx context.Context, user dbmodels.Profile, id string, data leaveapimodels.LeaveDecision) (view leaveapimodels.LeaveRequestView, hMsg string, err error)
}

var Instance Provider

func NewHandler(client remote.Client, data dataservice.Provider, notifier notify.Provider) {
	Instance = NewInstance(leavestore.NewInstance(client), data, notifier)
}

func NewInstance(store leavestore.Provider, data dataservice.Provider, notifier notify.Provider) Provider {
	return &impl{
		store:    store,
		data:     data,
		notifier: notifier,
	}
}

type impl struct {
	store    leavestore.Provider
	data     dataservice.Provider
	notifier notify.Provider
}

func (i impl) Create(ctx context.Context, user dbmodels.Profile, data leaveapimodels.CreateLeaveRequest) (leaveapimodels.LeaveRequestView, string, error) {
	leaveType := models.LeaveType(data.LeaveType)
	if !leaveType.IsValid() {
		return leaveapimodels.LeaveRequestView{}, "некорректный тип отпуска", nil
	}
	startDate, err := helpers.ParseDate(data.StartDate)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, err.Error(), nil
	}
	endDate, err := helpers.ParseDate(data.EndDate)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, err.Error(), nil
	}
	if endDate.Before(startDate) {
		return leaveapimodels.LeaveRequestView{}, "дата окончания раньше даты начала", nil
	}
	rec := dbmodels.LeaveRequest{
		EmployeeID: user.ID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  helpers.DaysInclusive(startDate, endDate),
		Reason:     strings.TrimSpace(data.Reason),
		Status:     models.LeavePending,
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, "", err
	}
	i.data.InvalidateCache(dataservice.UserScope, user.ID)
	log.
		WithField("user_id", user.ID).
		WithField("leave_id", id).
		WithField("days_count", rec.DaysCount).
		Info("создана заявка на отпуск")

	created, err := i.store.GetByID(ctx, id)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, "", err
	}
	if created == nil {
		return leaveapimodels.LeaveRequestView{}, "", remote.NewError("созданная заявка не найдена", remote.CodeNoRows)
	}
	return created.ToModel(), "", nil
}

func (i impl) List(ctx context.Context, user dbmodels.Profile) ([]leaveapimodels.LeaveRequestView, error) {
	list, err := i.data.GetLeaveRequests(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	list = visibility.FilterLeaves(visibility.FromProfile(user), list)
	result := make([]leaveapimodels.LeaveRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Decide(ctx context.Context, user dbmodels.Profile, id string, data leaveapimodels.LeaveDecision) (leaveapimodels.LeaveRequestView, string, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, "", err
	}
	if rec == nil {
		return leaveapimodels.LeaveRequestView{}, "заявка не найдена", nil
	}
	if !visibility.CanApproveLeave(visibility.FromProfile(user), *rec) {
		return leaveapimodels.LeaveRequestView{}, "", visibility.ErrForbidden
	}
	status := models.LeaveStatus(data.Status)
	if !rec.Status.CanMoveTo(status) {
		return leaveapimodels.LeaveRequestView{}, "недопустимая смена статуса заявки", nil
	}
	comments := helpers.EmptyToNil(data.Comments)
	updMap := map[string]interface{}{
		"status":           status,
		"manager_id":       user.ID,
		"manager_comments": comments,
	}
	if err = i.store.Update(ctx, id, updMap); err != nil {
		return leaveapimodels.LeaveRequestView{}, "", err
	}
	i.data.InvalidateCache(dataservice.UserScope, rec.EmployeeID)
	i.data.InvalidateCache(dataservice.UserScope, user.ID)
	log.
		WithField("leave_id", id).
		WithField("manager_id", user.ID).
		WithField("status", status).
		Info("принято решение по заявке на отпуск")

	rec.Status = status
	rec.ManagerID = &user.ID
	rec.ManagerComments = comments
	if rec.Employee != nil && i.notifier != nil {
		i.notifier.LeaveDecided(*rec, *rec.Employee, user)
	}
	return rec.ToModel(), "", nil
}

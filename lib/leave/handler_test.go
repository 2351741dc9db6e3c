package leave

import (
	"context"
	"testing"
	"time"

	"staff-portal-backend/lib/cache"
	"staff-portal-backend/lib/dataservice"
	leavestore "staff-portal-backend/lib/leave/store"
	"staff-portal-backend/lib/notify"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/remote/remotetest"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	leaveapimodels "staff-portal-backend/models/api/leave"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var (
	ann = dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "ann"}, FullName: "Ann", Email: "ann@corp.io", Role: models.EmployeeRole, Department: "IT", IsActive: true}
	joe = dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "joe"}, FullName: "Joe", Email: "joe@corp.io", Role: models.EmployeeRole, Department: "IT", IsActive: true}
	bob = dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "bob"}, FullName: "Bob", Email: "bob@corp.io", Role: models.ManagerRole, Department: "IT", IsActive: true}
)

func newTestHandler(t *testing.T) (Provider, cache.Provider, *notify.Recorder) {
	client := remotetest.NewSQLiteClient(t)
	for _, rec := range []dbmodels.Profile{ann, joe, bob} {
		rec := rec
		require.NoError(t, client.Insert(context.Background(), remote.ProfilesTable, &rec))
	}
	clock := clockwork.NewFakeClock()
	cacheProvider := cache.NewInstance(clock, cache.Config{})
	recorder := &notify.Recorder{}
	data := dataservice.NewInstance(client, cacheProvider, clock)
	return NewInstance(leavestore.NewInstance(client), data, recorder), cacheProvider, recorder
}

func vacation(start, end string) leaveapimodels.CreateLeaveRequest {
	return leaveapimodels.CreateLeaveRequest{
		LeaveType: "vacation",
		StartDate: start,
		EndDate:   end,
		Reason:    "rest",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	handler, cacheProvider, _ := newTestHandler(t)
	cacheProvider.SetDashboardStats("ann", "stats")

	view, hMsg, err := handler.Create(ctx, ann, vacation("2024-06-01", "2024-06-03"))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, 3, view.DaysCount)
	require.Equal(t, "pending", view.Status)
	require.Equal(t, "Ann", view.Employee.FullName)
	require.False(t, cacheProvider.Has(cache.DashboardStatsKey("ann")))

	view, _, err = handler.Create(ctx, ann, vacation("2024-06-05", "2024-06-05"))
	require.NoError(t, err)
	require.Equal(t, 1, view.DaysCount)

	t.Run(`validation`, func(t *testing.T) {
		_, hMsg, err := handler.Create(ctx, ann, vacation("2024-06-05", "2024-06-01"))
		require.NoError(t, err)
		require.Equal(t, "дата окончания раньше даты начала", hMsg)

		data := vacation("2024-06-01", "2024-06-02")
		data.LeaveType = "holiday"
		_, hMsg, err = handler.Create(ctx, ann, data)
		require.NoError(t, err)
		require.Equal(t, "некорректный тип отпуска", hMsg)

		_, hMsg, err = handler.Create(ctx, ann, vacation("06/01/2024", "2024-06-02"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestListVisibility(t *testing.T) {
	ctx := context.Background()
	handler, _, _ := newTestHandler(t)
	_, _, err := handler.Create(ctx, ann, vacation("2024-06-01", "2024-06-03"))
	require.NoError(t, err)
	_, _, err = handler.Create(ctx, joe, vacation("2024-07-01", "2024-07-03"))
	require.NoError(t, err)

	list, err := handler.List(ctx, ann)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "ann", list[0].EmployeeID)

	list, err = handler.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	handler, cacheProvider, recorder := newTestHandler(t)
	created, _, err := handler.Create(ctx, ann, vacation("2024-06-01", "2024-06-03"))
	require.NoError(t, err)

	_, _, err = handler.Decide(ctx, joe, created.ID, leaveapimodels.LeaveDecision{Status: "approved"})
	require.ErrorIs(t, err, visibility.ErrForbidden)

	_, err = handler.List(ctx, ann)
	require.NoError(t, err)
	require.True(t, cacheProvider.Has(cache.LeavesKey("ann")))

	view, hMsg, err := handler.Decide(ctx, bob, created.ID, leaveapimodels.LeaveDecision{
		Status:   "approved",
		Comments: helpers.StrPtr("ok"),
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "approved", view.Status)
	require.Equal(t, "bob", *view.ManagerID)
	require.Equal(t, "ok", *view.ManagerComments)
	require.False(t, cacheProvider.Has(cache.LeavesKey("ann")))

	require.Eventually(t, func() bool { return len(recorder.Leaves) == 1 }, time.Second, 10*time.Millisecond)

	list, err := handler.List(ctx, ann)
	require.NoError(t, err)
	require.Equal(t, "approved", list[0].Status)
	require.Equal(t, 3, list[0].DaysCount)

	_, hMsg, err = handler.Decide(ctx, bob, created.ID, leaveapimodels.LeaveDecision{Status: "rejected"})
	require.NoError(t, err)
	require.Equal(t, "недопустимая смена статуса заявки", hMsg)

	_, hMsg, err = handler.Decide(ctx, bob, "missing", leaveapimodels.LeaveDecision{Status: "rejected"})
	require.NoError(t, err)
	require.Equal(t, "заявка не найдена", hMsg)
}

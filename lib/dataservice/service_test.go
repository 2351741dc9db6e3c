package dataservice

import (
	"context"
	"strings"
	"testing"
	"time"

	"staff-portal-backend/lib/cache"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/remote/remotetest"
	"staff-portal-backend/models"
	dashboardapimodels "staff-portal-backend/models/api/dashboard"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestService(client remote.Client) (Provider, cache.Provider, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	cacheProvider := cache.NewInstance(clock, cache.Config{})
	return NewInstance(client, cacheProvider, clock), cacheProvider, clock
}

func leaveOf(department string) dbmodels.LeaveRequest {
	return dbmodels.LeaveRequest{
		Status:   models.LeaveApproved,
		Employee: &dbmodels.Profile{Department: department},
	}
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	t.Run(`second call is served from cache`, func(t *testing.T) {
		fake := &remotetest.Fake{
			CountFunc: func(q remote.Query) (int64, error) {
				return 3, nil
			},
		}
		svc, _, _ := newTestService(fake)

		first, err := svc.GetDashboardStats(ctx, "u1", models.ManagerRole, "IT")
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 10)

		second, err := svc.GetDashboardStats(ctx, "u1", models.ManagerRole, "IT")
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 10)
		require.Equal(t, first, second)
		require.EqualValues(t, 3, second.TeamSize)
	})
	t.Run(`cache expires after realtime ttl`, func(t *testing.T) {
		fake := &remotetest.Fake{}
		svc, _, clock := newTestService(fake)
		_, err := svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.NoError(t, err)
		calls := len(fake.Calls())

		clock.Advance(cache.RealtimeTTL)
		_, err = svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 2*calls)
	})
	t.Run(`employee gets no team size query`, func(t *testing.T) {
		fake := &remotetest.Fake{
			CountFunc: func(q remote.Query) (int64, error) {
				return 7, nil
			},
		}
		svc, _, _ := newTestService(fake)
		stats, err := svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 9)
		require.EqualValues(t, 0, stats.TeamSize)
		require.EqualValues(t, 7, stats.MyTasks)
	})
	t.Run(`zero tasks still give three buckets`, func(t *testing.T) {
		svc, _, _ := newTestService(&remotetest.Fake{})
		stats, err := svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.NoError(t, err)
		require.Equal(t, []dashboardapimodels.StatusBucket{
			{Name: "Pending", Value: 0, Color: "#f59e0b"},
			{Name: "In Progress", Value: 0, Color: "#3b82f6"},
			{Name: "Completed", Value: 0, Color: "#10b981"},
		}, stats.TasksByStatus)
		require.Empty(t, stats.LeavesByDepartment)
	})
	t.Run(`charts are reduced from fetched rows`, func(t *testing.T) {
		fake := &remotetest.Fake{
			FindFunc: func(q remote.Query, dest interface{}) error {
				switch d := dest.(type) {
				case *[]dbmodels.LeaveRequest:
					*d = []dbmodels.LeaveRequest{leaveOf("A"), leaveOf("A"), leaveOf("B")}
				case *[]dbmodels.Task:
					*d = []dbmodels.Task{
						{Status: models.TaskPending},
						{Status: models.TaskCompleted},
						{Status: models.TaskCompleted},
					}
				}
				return nil
			},
		}
		svc, _, _ := newTestService(fake)
		stats, err := svc.GetDashboardStats(ctx, "u1", models.SuperAdminRole, "HR")
		require.NoError(t, err)
		require.Equal(t, []dashboardapimodels.NameValue{
			{Name: "A", Value: 2},
			{Name: "B", Value: 1},
		}, stats.LeavesByDepartment)
		require.Equal(t, 1, stats.TasksByStatus[0].Value)
		require.Equal(t, 0, stats.TasksByStatus[1].Value)
		require.Equal(t, 2, stats.TasksByStatus[2].Value)
	})
	t.Run(`upcoming deadlines use a week horizon`, func(t *testing.T) {
		fake := &remotetest.Fake{}
		svc, _, _ := newTestService(fake)
		_, err := svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.NoError(t, err)

		found := false
		for _, call := range fake.CallsTo(remote.TasksTable) {
			cond, ok := call.Query.Condition("due_date")
			if !ok {
				continue
			}
			found = true
			require.Equal(t, remote.OpLte, cond.Op)
			require.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), cond.Value)
		}
		require.True(t, found)
	})
	t.Run(`failure propagates and nothing is cached`, func(t *testing.T) {
		fake := &remotetest.Fake{
			CountFunc: func(q remote.Query) (int64, error) {
				if q.Table == remote.AnnouncementsTable {
					return 0, errors.New("connection refused")
				}
				return 1, nil
			},
		}
		svc, cacheProvider, _ := newTestService(fake)
		_, err := svc.GetDashboardStats(ctx, "u1", models.EmployeeRole, "IT")
		require.Error(t, err)
		require.False(t, cacheProvider.Has(cache.DashboardStatsKey("u1")))
	})
}

func TestGetRecentActivity(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time {
		return base.Add(time.Duration(hours) * time.Hour)
	}
	it := "IT"
	fake := &remotetest.Fake{
		FindFunc: func(q remote.Query, dest interface{}) error {
			switch d := dest.(type) {
			case *[]dbmodels.Task:
				*d = []dbmodels.Task{
					{BaseModel: dbmodels.BaseModel{ID: "t1", CreatedAt: at(1)}, Title: "t1", Priority: models.HighPriority},
					{BaseModel: dbmodels.BaseModel{ID: "t2", CreatedAt: at(5)}, Title: "t2"},
					{BaseModel: dbmodels.BaseModel{ID: "t3", CreatedAt: at(3)}, Title: "t3"},
				}
			case *[]dbmodels.LeaveRequest:
				*d = []dbmodels.LeaveRequest{
					{
						BaseModel: dbmodels.BaseModel{ID: "l1", CreatedAt: at(6)},
						LeaveType: models.VacationLeave,
						StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
						EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
						Status:    models.LeavePending,
					},
					{BaseModel: dbmodels.BaseModel{ID: "l2", CreatedAt: at(2)}},
				}
			case *[]dbmodels.Announcement:
				*d = []dbmodels.Announcement{
					{BaseModel: dbmodels.BaseModel{ID: "a1", CreatedAt: at(7)}, Content: strings.Repeat("x", 150), IsPriority: true},
					{BaseModel: dbmodels.BaseModel{ID: "a2", CreatedAt: at(4)}, Content: "short", Department: &it},
				}
			}
			return nil
		},
	}
	svc, _, _ := newTestService(fake)

	list, err := svc.GetRecentActivity(ctx, "u1", "IT")
	require.NoError(t, err)
	require.Len(t, list, 5)
	ids := []string{}
	for n, rec := range list {
		ids = append(ids, rec.ID)
		if n > 0 {
			require.True(t, list[n-1].Timestamp.After(rec.Timestamp))
		}
	}
	require.Equal(t, []string{"a1", "l1", "t2", "a2", "t3"}, ids)

	require.Equal(t, "announcement", list[0].Type)
	require.Equal(t, strings.Repeat("x", 100)+"...", list[0].Description)
	require.Equal(t, "high", list[0].Priority)
	require.Equal(t, "short", list[3].Description)

	require.Equal(t, "leave", list[1].Type)
	require.Equal(t, "vacation Leave Request", list[1].Title)
	require.Equal(t, "2024-06-01 to 2024-06-03", list[1].Description)

	announcementCalls := fake.CallsTo(remote.AnnouncementsTable)
	require.Len(t, announcementCalls, 1)
	require.Len(t, announcementCalls[0].Query.AnyOf, 1)
	require.Contains(t, announcementCalls[0].Query.AnyOf[0], remote.Eq("department", "IT"))

	t.Run(`not cached`, func(t *testing.T) {
		fake.Reset()
		_, err := svc.GetRecentActivity(ctx, "u1", "IT")
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 3)
	})
}

func TestGetTasks(t *testing.T) {
	ctx := context.Background()
	t.Run(`employee query is limited to own tasks`, func(t *testing.T) {
		fake := &remotetest.Fake{}
		svc, _, _ := newTestService(fake)
		_, err := svc.GetTasks(ctx, "u1", models.EmployeeRole)
		require.NoError(t, err)
		calls := fake.CallsTo(remote.TasksTable)
		require.Len(t, calls, 1)
		require.Equal(t, [][]remote.Condition{{
			remote.Eq("assigned_to", "u1"),
			remote.Eq("assigned_by", "u1"),
		}}, calls[0].Query.AnyOf)
		require.Equal(t, []string{"AssignedToProfile", "AssignedByProfile"}, calls[0].Query.Joins)
	})
	t.Run(`manager query is unrestricted and cached`, func(t *testing.T) {
		fake := &remotetest.Fake{
			FindFunc: func(q remote.Query, dest interface{}) error {
				*dest.(*[]dbmodels.Task) = []dbmodels.Task{{Title: "a"}}
				return nil
			},
		}
		svc, cacheProvider, _ := newTestService(fake)
		list, err := svc.GetTasks(ctx, "m1", models.ManagerRole)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Empty(t, fake.Calls()[0].Query.AnyOf)
		require.True(t, cacheProvider.Has(cache.TasksKey("m1")))

		_, err = svc.GetTasks(ctx, "m1", models.ManagerRole)
		require.NoError(t, err)
		require.Len(t, fake.Calls(), 1)
	})
	t.Run(`error is not cached`, func(t *testing.T) {
		fake := &remotetest.Fake{
			FindFunc: func(q remote.Query, dest interface{}) error {
				return remote.NewError("timeout", remote.CodeTimeout)
			},
		}
		svc, cacheProvider, _ := newTestService(fake)
		_, err := svc.GetTasks(ctx, "u1", models.EmployeeRole)
		require.True(t, remote.IsTimeout(err))
		require.False(t, cacheProvider.Has(cache.TasksKey("u1")))
	})
}

func TestGetEmployeesAndLeaves(t *testing.T) {
	ctx := context.Background()
	fake := &remotetest.Fake{}
	svc, cacheProvider, _ := newTestService(fake)

	list, err := svc.GetEmployees(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	q := fake.Calls()[0].Query
	require.Equal(t, []remote.Order{{Column: "full_name"}}, q.Orders)
	require.True(t, cacheProvider.Has(cache.ProfilesKey()))

	_, err = svc.GetLeaveRequests(ctx, "u1", models.EmployeeRole)
	require.NoError(t, err)
	cond, ok := fake.CallsTo(remote.LeaveRequestsTable)[0].Query.Condition("employee_id")
	require.True(t, ok)
	require.Equal(t, "u1", cond.Value)
	require.True(t, cacheProvider.Has(cache.LeavesKey("u1")))
}

func TestInvalidateCache(t *testing.T) {
	svc, cacheProvider, _ := newTestService(&remotetest.Fake{})
	cacheProvider.SetProfiles([]dbmodels.Profile{})
	cacheProvider.SetDashboardStats("u1", dashboardapimodels.DashboardStats{})
	cacheProvider.SetTasks("u1", []dbmodels.Task{})
	cacheProvider.SetTasks("u2", []dbmodels.Task{})

	svc.InvalidateCache(UserScope, "u1")
	require.Equal(t, []string{"profiles", "tasks-u2"}, cacheProvider.Stats().Keys)

	cacheProvider.SetDashboardStats("u2", dashboardapimodels.DashboardStats{})
	svc.InvalidateCache(GlobalScope, "")
	require.Equal(t, []string{"tasks-u2"}, cacheProvider.Stats().Keys)
}

package tasks

import (
	"context"
	"testing"

	"staff-portal-backend/lib/cache"
	"staff-portal-backend/lib/dataservice"
	"staff-portal-backend/lib/notify"
	profilestore "staff-portal-backend/lib/profiles/store"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/remote/remotetest"
	taskstore "staff-portal-backend/lib/tasks/store"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	taskapimodels "staff-portal-backend/models/api/task"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func person(id string, role models.UserRole, department string) dbmodels.Profile {
	return dbmodels.Profile{
		BaseModel:  dbmodels.BaseModel{ID: id},
		FullName:   id,
		Email:      id + "@corp.io",
		Role:       role,
		Department: department,
		IsActive:   true,
	}
}

var (
	ann   = person("ann", models.EmployeeRole, "IT")
	joe   = person("joe", models.EmployeeRole, "IT")
	kim   = person("kim", models.EmployeeRole, "Sales")
	bob   = person("bob", models.ManagerRole, "IT")
	sam   = person("sam", models.ManagerRole, "Sales")
	admin = person("admin", models.SuperAdminRole, "HR")
)

func newTestHandler(t *testing.T) (Provider, cache.Provider, *notify.Recorder, remote.Client) {
	client := remotetest.NewSQLiteClient(t)
	for _, rec := range []dbmodels.Profile{ann, joe, kim, bob, sam, admin} {
		rec := rec
		require.NoError(t, client.Insert(context.Background(), remote.ProfilesTable, &rec))
	}
	clock := clockwork.NewFakeClock()
	cacheProvider := cache.NewInstance(clock, cache.Config{})
	data := dataservice.NewInstance(client, cacheProvider, clock)
	recorder := &notify.Recorder{}
	handler := NewInstance(taskstore.NewInstance(client), profilestore.NewInstance(client), data, recorder)
	return handler, cacheProvider, recorder, client
}

func titles(list []taskapimodels.TaskView) []string {
	result := []string{}
	for _, rec := range list {
		result = append(result, rec.Title)
	}
	return result
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	handler, cacheProvider, recorder, _ := newTestHandler(t)
	cacheProvider.SetTasks("ann", []dbmodels.Task{})

	_, _, err := handler.Create(ctx, ann, taskapimodels.CreateTask{Title: "x", AssignedTo: "joe"})
	require.ErrorIs(t, err, visibility.ErrForbidden)

	view, hMsg, err := handler.Create(ctx, bob, taskapimodels.CreateTask{
		Title:      "Report",
		AssignedTo: "ann",
		DueDate:    "2024-06-10",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "medium", view.Priority)
	require.Equal(t, "pending", view.Status)
	require.Equal(t, "IT", view.Department)
	require.Equal(t, "2024-06-10", *view.DueDate)
	require.Equal(t, "ann", view.AssignedToProfile.FullName)
	require.Equal(t, "bob", view.AssignedByProfile.FullName)
	require.False(t, cacheProvider.Has(cache.TasksKey("ann")))
	require.Len(t, recorder.Tasks, 1)

	_, hMsg, err = handler.Create(ctx, bob, taskapimodels.CreateTask{Title: "x", AssignedTo: "ghost"})
	require.NoError(t, err)
	require.Equal(t, "исполнитель не найден", hMsg)

	_, hMsg, err = handler.Create(ctx, bob, taskapimodels.CreateTask{Title: "x", AssignedTo: "ann", Priority: "urgent"})
	require.NoError(t, err)
	require.Equal(t, "некорректный приоритет", hMsg)
}

func TestListVisibility(t *testing.T) {
	ctx := context.Background()
	handler, _, _, _ := newTestHandler(t)
	for _, item := range []struct {
		by    dbmodels.Profile
		title string
		to    string
	}{
		{bob, "ann-task", "ann"},
		{bob, "joe-task", "joe"},
		{sam, "kim-task", "kim"},
		{admin, "ann-admin-task", "ann"},
	} {
		_, hMsg, err := handler.Create(ctx, item.by, taskapimodels.CreateTask{Title: item.title, AssignedTo: item.to})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	}

	list, err := handler.List(ctx, ann)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"ann-task", "ann-admin-task"}, titles(list))
	for _, rec := range list {
		require.True(t, rec.AssignedTo == "ann" || rec.AssignedBy == "ann")
	}

	list, err = handler.List(ctx, bob)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"ann-task", "joe-task"}, titles(list))

	list, err = handler.List(ctx, sam)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"kim-task"}, titles(list))

	list, err = handler.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 4)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	handler, cacheProvider, _, _ := newTestHandler(t)
	created, _, err := handler.Create(ctx, bob, taskapimodels.CreateTask{Title: "Report", AssignedTo: "ann"})
	require.NoError(t, err)

	_, _, err = handler.UpdateStatus(ctx, kim, created.ID, taskapimodels.TaskStatusUpdate{Status: "in_progress"})
	require.ErrorIs(t, err, visibility.ErrForbidden)

	_, hMsg, err := handler.UpdateStatus(ctx, ann, created.ID, taskapimodels.TaskStatusUpdate{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, "недопустимая смена статуса задачи", hMsg)

	cacheProvider.SetDashboardStats("bob", "stats")
	view, hMsg, err := handler.UpdateStatus(ctx, ann, created.ID, taskapimodels.TaskStatusUpdate{Status: "in_progress"})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "in_progress", view.Status)
	require.False(t, cacheProvider.Has(cache.DashboardStatsKey("bob")))

	view, _, err = handler.UpdateStatus(ctx, ann, created.ID, taskapimodels.TaskStatusUpdate{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, "completed", view.Status)

	_, hMsg, err = handler.UpdateStatus(ctx, ann, created.ID, taskapimodels.TaskStatusUpdate{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, "недопустимая смена статуса задачи", hMsg)

	_, hMsg, err = handler.UpdateStatus(ctx, ann, "missing", taskapimodels.TaskStatusUpdate{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, "задача не найдена", hMsg)
}

package announcements

import (
	"context"
	"testing"
	"time"

	"staff-portal-backend/lib/cache"
	"staff-portal-backend/lib/dataservice"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/remote/remotetest"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	announcementapimodels "staff-portal-backend/models/api/announcement"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	client := remotetest.NewSQLiteClient(t)
	admin := dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "admin"}, FullName: "Admin", Role: models.SuperAdminRole, Department: "HR", IsActive: true}
	ann := dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "ann"}, FullName: "Ann", Role: models.EmployeeRole, Department: "IT", IsActive: true}
	bob := dbmodels.Profile{BaseModel: dbmodels.BaseModel{ID: "bob"}, FullName: "Bob", Role: models.ManagerRole, Department: "Sales", IsActive: true}
	for _, rec := range []dbmodels.Profile{admin, ann, bob} {
		rec := rec
		require.NoError(t, client.Insert(ctx, remote.ProfilesTable, &rec))
	}
	clock := clockwork.NewFakeClock()
	cacheProvider := cache.NewInstance(clock, cache.Config{})
	handler := NewInstance(client, dataservice.NewInstance(client, cacheProvider, clock))

	_, err := handler.Create(ctx, bob, announcementapimodels.CreateAnnouncement{Title: "x", Content: "y"})
	require.ErrorIs(t, err, visibility.ErrForbidden)

	cacheProvider.SetDashboardStats("ann", "stats")
	view, err := handler.Create(ctx, admin, announcementapimodels.CreateAnnouncement{Title: "All hands", Content: "Friday", IsPriority: true})
	require.NoError(t, err)
	require.Nil(t, view.Department)
	require.Equal(t, "Admin", view.Author.FullName)
	require.False(t, cacheProvider.Has(cache.DashboardStatsKey("ann")))

	for _, item := range []struct{ title, department string }{
		{"IT news", "IT"},
		{"Sales news", "Sales"},
	} {
		time.Sleep(5 * time.Millisecond)
		_, err = handler.Create(ctx, admin, announcementapimodels.CreateAnnouncement{Title: item.title, Content: "c", Department: item.department})
		require.NoError(t, err)
	}
	titles := func(user dbmodels.Profile) []string {
		list, err := handler.List(ctx, user)
		require.NoError(t, err)
		result := []string{}
		for _, rec := range list {
			result = append(result, rec.Title)
		}
		return result
	}
	require.Equal(t, []string{"IT news", "All hands"}, titles(ann))
	require.Equal(t, []string{"Sales news", "All hands"}, titles(bob))
	require.Equal(t, []string{"Sales news", "IT news", "All hands"}, titles(admin))
}

package rbac

import (
	"testing"

	"staff-portal-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, methods, err := parseSwaggerPattern("/api/v1/leave/{id}/decide [put]")
		require.Nil(t, err)
		require.Equal(t, []HTTPMethod{PUT}, methods)
		r1 := pathToRegex(path)

		require.True(t, r1.MatchString("/api/v1/leave/123-321/decide"))
		require.False(t, r1.MatchString("/api/v1/leave/decide"))
		require.False(t, r1.MatchString("/api/v1/leave/1/2/decide"))

		path, _, err = parseSwaggerPattern("/api/v1/admin/employees/{id}/toggle_active [put]")
		require.Nil(t, err)
		r2 := pathToRegex(path)

		require.True(t, r2.MatchString("/api/v1/admin/employees/qwe-ewr123-wr-12/toggle_active"))
		require.False(t, r2.MatchString("/api/v1/admin/employees/qwe-ewr123-wr-12"))
	})

	t.Run(`several methods`, func(t *testing.T) {
		path, methods, err := parseSwaggerPattern(" api/v1/profile/ [get, put]")
		require.Nil(t, err)
		require.Equal(t, "/api/v1/profile", path)
		require.Equal(t, []HTTPMethod{GET, PUT}, methods)
	})

	t.Run(`pattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/leave")
		require.Error(t, err)
		_, _, err = parseSwaggerPattern("/api/v1/leave [get,]")
		require.Error(t, err)
	})

	t.Run(`normalizePath`, func(t *testing.T) {
		require.Equal(t, "/", normalizePath(""))
		require.Equal(t, "/api/v1/tasks", normalizePath("api//v1/tasks/"))
	})

	t.Run(`rules by role`, func(t *testing.T) {
		provider := NewInstance()

		check := func(method, path string, role models.UserRole) bool {
			rule, found := provider.Match(method, path)
			require.True(t, found, "%v %v", method, path)
			return rule.Allowed(role)
		}
		require.True(t, check("GET", "/api/v1/dashboard/stats", models.EmployeeRole))
		require.True(t, check("put", "/api/v1/leave/42/decide", models.ManagerRole))
		require.False(t, check("PUT", "/api/v1/leave/42/decide", models.EmployeeRole))
		require.False(t, check("POST", "/api/v1/announcements", models.ManagerRole))
		require.True(t, check("POST", "/api/v1/announcements", models.SuperAdminRole))
		require.False(t, check("GET", "/api/v1/reports/pdf", models.EmployeeRole))
		require.False(t, check("PUT", "/api/v1/admin/employees/42/toggle_active", models.ManagerRole))

		rule, found := provider.Match("GET", "/api/v1/reports/xlsx/")
		require.True(t, found)
		require.Equal(t, models.ReportsModule, rule.Module)
		require.Equal(t, models.ExportPermission, rule.Permission)

		_, found = provider.Match("GET", "/api/v1/unknown")
		require.False(t, found)
		_, found = provider.Match("PATCH", "/api/v1/tasks")
		require.False(t, found)
	})

	t.Run(`invalid rule panics`, func(t *testing.T) {
		provider := NewInstance()
		require.Panics(t, func() {
			provider.RegisterRule(models.TasksModule, models.ViewPermission, AllRoles, "/api/v1/tasks")
		})
	})

	t.Run(`permissions`, func(t *testing.T) {
		provider := NewInstance()
		employee := provider.GetPermissions(models.EmployeeRole)
		require.Equal(t, []models.Permission{models.ViewPermission, models.CreatePermission}, employee[models.LeaveModule])
		require.NotContains(t, employee, models.ReportsModule)
		require.NotContains(t, employee, models.EmployeesModule)

		admin := provider.GetPermissions(models.SuperAdminRole)
		require.Equal(t, []models.Permission{models.ViewPermission, models.ExportPermission, models.ManagePermission}, admin[models.EmployeesModule])

		employee[models.LeaveModule] = nil
		require.Len(t, provider.GetPermissions(models.EmployeeRole)[models.LeaveModule], 2)
	})
}

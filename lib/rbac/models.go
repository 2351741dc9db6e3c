package rbac

import (
	"regexp"

	"staff-portal-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// Rule правило доступа к маршруту
type Rule struct {
	Module     models.Module
	Permission models.Permission
	roles      map[models.UserRole]bool
}

func (r Rule) Allowed(role models.UserRole) bool {
	return r.roles[role]
}

type patternRule struct {
	pattern *regexp.Regexp
	rule    Rule
}

type methodRules struct {
	exact    map[string]Rule
	patterns []patternRule
}

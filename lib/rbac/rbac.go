package rbac

import (
	"regexp"
	"slices"
	"strings"

	"staff-portal-backend/models"

	"github.com/pkg/errors"
)

type Provider interface {
	Match(method, path string) (Rule, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string)
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	i := &impl{
		rules:       map[HTTPMethod]*methodRules{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

type impl struct {
	rules       map[HTTPMethod]*methodRules
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

var paramRegex = regexp.MustCompile(`\\\{[^}]+?\\\}`)

func (i *impl) Match(method, path string) (Rule, bool) {
	methodRule, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return Rule{}, false
	}
	path = normalizePath(path)
	if rule, ok := methodRule.exact[path]; ok {
		return rule, true
	}
	for _, item := range methodRule.patterns {
		if item.pattern.MatchString(path) {
			return item.rule, true
		}
	}
	return Rule{}, false
}

// RegisterRule регистрирует правило вида "/api/v1/leave/{id}/decide [put]" или "/api/v1/profile [get,put]".
// Паникует на некорректном шаблоне, правила регистрируются только при старте
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	path, methods, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		panic(err.Error())
	}
	rule := Rule{
		Module:     module,
		Permission: permission,
		roles:      make(map[models.UserRole]bool, len(roles)),
	}
	for _, role := range roles {
		rule.roles[role] = true
		i.addPermission(role, module, permission)
	}

	for _, method := range methods {
		methodRule, ok := i.rules[method]
		if !ok {
			methodRule = &methodRules{exact: map[string]Rule{}}
			i.rules[method] = methodRule
		}
		if !strings.Contains(path, "{") {
			methodRule.exact[path] = rule
			continue
		}
		methodRule.patterns = append(methodRule.patterns, patternRule{
			pattern: pathToRegex(path),
			rule:    rule,
		})
	}
}

// GetPermissions права роли по модулям для фронта
func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	result := make(map[models.Module][]models.Permission, len(i.permissions[role]))
	for module, permissions := range i.permissions[role] {
		result[module] = slices.Clone(permissions)
	}
	return result
}

func (i *impl) addPermission(role models.UserRole, module models.Module, permission models.Permission) {
	modules, ok := i.permissions[role]
	if !ok {
		modules = map[models.Module][]models.Permission{}
		i.permissions[role] = modules
	}
	if !slices.Contains(modules[module], permission) {
		modules[module] = append(modules[module], permission)
	}
}

// pathToRegex параметр {name} совпадает с одним сегментом пути
func pathToRegex(path string) *regexp.Regexp {
	pattern := paramRegex.ReplaceAllString(regexp.QuoteMeta(path), `[^/]+`)
	return regexp.MustCompile("^" + pattern + "$")
}

func parseSwaggerPattern(pattern string) (path string, methods []HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd < bracketStart {
		return "", nil, errors.Errorf("не указан метод в шаблоне (%v)", pattern)
	}
	for _, method := range strings.Split(pattern[bracketStart+1:bracketEnd], ",") {
		method = strings.TrimSpace(method)
		if method == "" {
			return "", nil, errors.Errorf("пустой метод в шаблоне (%v)", pattern)
		}
		methods = append(methods, HTTPMethod(strings.ToUpper(method)))
	}
	return normalizePath(strings.TrimSpace(pattern[:bracketStart])), methods, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

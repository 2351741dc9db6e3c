// Package cache in-memory кэш результатов запросов с временем жизни записи.
// Один экземпляр на процесс, между процессами не разделяется.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultTTL  = 5 * time.Minute // редко меняющиеся данные (справочник сотрудников)
	RealtimeTTL = 1 * time.Minute // статистика, задачи, отпуска

	profilesKey          = "profiles"
	dashboardStatsPrefix = "dashboard-stats-"
	tasksPrefix          = "tasks-"
	leavesPrefix         = "leaves-"
)

type Provider interface {
	Set(key string, value interface{}, ttl time.Duration)
	Get(key string) (interface{}, bool)
	Has(key string) bool
	Delete(key string)
	Clear()
	// Cleanup удаляет все просроченные записи, возвращает кол-во удаленных
	Cleanup() int
	Stats() Stats

	SetProfiles(value interface{})
	GetProfiles() (interface{}, bool)
	SetDashboardStats(userID string, value interface{})
	GetDashboardStats(userID string) (interface{}, bool)
	SetTasks(userID string, value interface{})
	GetTasks(userID string) (interface{}, bool)
	SetLeaveRequests(userID string, value interface{})
	GetLeaveRequests(userID string) (interface{}, bool)

	InvalidateUserData(userID string)
	InvalidateGlobalData()
}

type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

type Config struct {
	DefaultTTL  time.Duration
	RealtimeTTL time.Duration
}

func NewInstance(clock clockwork.Clock, cfg Config) Provider {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.RealtimeTTL <= 0 {
		cfg.RealtimeTTL = RealtimeTTL
	}
	return &impl{
		clock:       clock,
		items:       map[string]item{},
		defaultTTL:  cfg.DefaultTTL,
		realtimeTTL: cfg.RealtimeTTL,
	}
}

type item struct {
	value    interface{}
	storedAt time.Time
	ttl      time.Duration
}

func (i item) isFresh(now time.Time) bool {
	return now.Sub(i.storedAt) < i.ttl
}

type impl struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	items       map[string]item
	defaultTTL  time.Duration
	realtimeTTL time.Duration
}

func (i *impl) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items[key] = item{
		value:    value,
		storedAt: i.clock.Now(),
		ttl:      ttl,
	}
}

func (i *impl) Get(key string) (interface{}, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	rec, ok := i.items[key]
	if !ok {
		return nil, false
	}
	if !rec.isFresh(i.clock.Now()) {
		delete(i.items, key)
		return nil, false
	}
	return rec.value, true
}

func (i *impl) Has(key string) bool {
	_, ok := i.Get(key)
	return ok
}

func (i *impl) Delete(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.items, key)
}

func (i *impl) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = map[string]item{}
}

func (i *impl) Cleanup() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	now := i.clock.Now()
	removed := 0
	for key, rec := range i.items {
		if !rec.isFresh(now) {
			delete(i.items, key)
			removed++
		}
	}
	return removed
}

func (i *impl) Stats() Stats {
	i.mu.Lock()
	defer i.mu.Unlock()
	keys := make([]string, 0, len(i.items))
	for key := range i.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return Stats{
		Size: len(keys),
		Keys: keys,
	}
}

func (i *impl) SetProfiles(value interface{}) {
	i.Set(profilesKey, value, i.defaultTTL)
}

func (i *impl) GetProfiles() (interface{}, bool) {
	return i.Get(profilesKey)
}

func (i *impl) SetDashboardStats(userID string, value interface{}) {
	i.Set(DashboardStatsKey(userID), value, i.realtimeTTL)
}

func (i *impl) GetDashboardStats(userID string) (interface{}, bool) {
	return i.Get(DashboardStatsKey(userID))
}

func (i *impl) SetTasks(userID string, value interface{}) {
	i.Set(TasksKey(userID), value, i.realtimeTTL)
}

func (i *impl) GetTasks(userID string) (interface{}, bool) {
	return i.Get(TasksKey(userID))
}

func (i *impl) SetLeaveRequests(userID string, value interface{}) {
	i.Set(LeavesKey(userID), value, i.realtimeTTL)
}

func (i *impl) GetLeaveRequests(userID string) (interface{}, bool) {
	return i.Get(LeavesKey(userID))
}

func (i *impl) InvalidateUserData(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.items, DashboardStatsKey(userID))
	delete(i.items, TasksKey(userID))
	delete(i.items, LeavesKey(userID))
}

func (i *impl) InvalidateGlobalData() {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.items, profilesKey)
	for key := range i.items {
		if strings.HasPrefix(key, dashboardStatsPrefix) {
			delete(i.items, key)
		}
	}
}

func ProfilesKey() string {
	return profilesKey
}

func DashboardStatsKey(userID string) string {
	return fmt.Sprintf("%s%s", dashboardStatsPrefix, userID)
}

func TasksKey(userID string) string {
	return fmt.Sprintf("%s%s", tasksPrefix, userID)
}

func LeavesKey(userID string) string {
	return fmt.Sprintf("%s%s", leavesPrefix, userID)
}

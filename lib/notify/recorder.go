package notify

import (
	"sync"

	dbmodels "staff-portal-backend/models/db"
)

// Recorder запоминает уведомления вместо отправки
type Recorder struct {
	mu     sync.Mutex
	Leaves []dbmodels.LeaveRequest
	Tasks  []dbmodels.Task
}

func (r *Recorder) LeaveDecided(leave dbmodels.LeaveRequest, employee, manager dbmodels.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Leaves = append(r.Leaves, leave)
}

func (r *Recorder) TaskAssigned(task dbmodels.Task, assignee, assigner dbmodels.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tasks = append(r.Tasks, task)
}

var _ Provider = (*Recorder)(nil)

package models

type LeaveType string

const (
	SickLeave      LeaveType = "sick"
	VacationLeave  LeaveType = "vacation"
	PersonalLeave  LeaveType = "personal"
	EmergencyLeave LeaveType = "emergency"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case SickLeave, VacationLeave, PersonalLeave, EmergencyLeave:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// CanMoveTo заявка на отпуск решается один раз: pending -> approved|rejected
func (s LeaveStatus) CanMoveTo(next LeaveStatus) bool {
	return s == LeavePending && (next == LeaveApproved || next == LeaveRejected)
}

type TaskPriority string

const (
	LowPriority    TaskPriority = "low"
	MediumPriority TaskPriority = "medium"
	HighPriority   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case LowPriority, MediumPriority, HighPriority:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// ActiveTaskStatuses задачи в работе
var ActiveTaskStatuses = []TaskStatus{TaskPending, TaskInProgress}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

func (s TaskStatus) CanMoveTo(next TaskStatus) bool {
	switch s {
	case TaskPending:
		return next == TaskInProgress
	case TaskInProgress:
		return next == TaskCompleted
	}
	return false
}

type ProjectUpdateStatus string

const (
	ProjectDraft     ProjectUpdateStatus = "draft"
	ProjectSubmitted ProjectUpdateStatus = "submitted"
	ProjectApproved  ProjectUpdateStatus = "approved"
)

func (s ProjectUpdateStatus) CanMoveTo(next ProjectUpdateStatus) bool {
	return s == ProjectSubmitted && (next == ProjectApproved || next == ProjectDraft)
}

type ActivityType string

const (
	TaskActivity         ActivityType = "task"
	LeaveActivity        ActivityType = "leave"
	AnnouncementActivity ActivityType = "announcement"
)

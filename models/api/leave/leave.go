package leaveapimodels

import (
	"errors"
	"strings"
	"time"

	profileapimodels "staff-portal-backend/models/api/profile"
)

type LeaveRequestView struct {
	ID              string                         `json:"id"`
	EmployeeID      string                         `json:"employee_id"`
	Employee        *profileapimodels.ProfileShort `json:"employee,omitempty"`
	LeaveType       string                         `json:"leave_type"`
	StartDate       string                         `json:"start_date"`
	EndDate         string                         `json:"end_date"`
	DaysCount       int                            `json:"days_count"`
	Reason          string                         `json:"reason"`
	Status          string                         `json:"status"`
	ManagerID       *string                        `json:"manager_id"`
	ManagerComments *string                        `json:"manager_comments"`
	CreatedAt       time.Time                      `json:"created_at"`
}

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r CreateLeaveRequest) Validate() error {
	if r.LeaveType == "" {
		return errors.New("не указан тип отпуска")
	}
	if r.StartDate == "" || r.EndDate == "" {
		return errors.New("не указаны даты отпуска")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("не указана причина")
	}
	return nil
}

type LeaveDecision struct {
	Status   string  `json:"status"` // approved/rejected
	Comments *string `json:"comments"`
}

func (r LeaveDecision) Validate() error {
	if r.Status == "" {
		return errors.New("не указан статус")
	}
	return nil
}

package dbmodels

import (
	"staff-portal-backend/models"
	leaveapimodels "staff-portal-backend/models/api/leave"
	"time"
)

type LeaveRequest struct {
	BaseModel
	EmployeeID      string             `gorm:"type:varchar(36);index" json:"employee_id"`
	Employee        *Profile           `gorm:"foreignKey:EmployeeID" json:"profiles,omitempty"`
	LeaveType       models.LeaveType   `gorm:"type:varchar(20)" json:"leave_type"`
	StartDate       time.Time          `gorm:"type:date" json:"start_date"`
	EndDate         time.Time          `gorm:"type:date" json:"end_date"`
	DaysCount       int                `json:"days_count"`
	Reason          string             `json:"reason"`
	Status          models.LeaveStatus `gorm:"type:varchar(20);index" json:"status"`
	ManagerID       *string            `gorm:"type:varchar(36)" json:"manager_id"`
	ManagerComments *string            `json:"manager_comments"`
}

// GetDepartment отдел сотрудника, если профиль подгружен
func (r LeaveRequest) GetDepartment() string {
	if r.Employee == nil {
		return ""
	}
	return r.Employee.Department
}

func (r LeaveRequest) ToModel() leaveapimodels.LeaveRequestView {
	return leaveapimodels.LeaveRequestView{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Employee:        r.Employee.ToShortModel(),
		LeaveType:       string(r.LeaveType),
		StartDate:       r.StartDate.Format(time.DateOnly),
		EndDate:         r.EndDate.Format(time.DateOnly),
		DaysCount:       r.DaysCount,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ManagerID:       r.ManagerID,
		ManagerComments: r.ManagerComments,
		CreatedAt:       r.CreatedAt,
	}
}

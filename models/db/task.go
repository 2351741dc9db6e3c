package dbmodels

import (
	"staff-portal-backend/models"
	taskapimodels "staff-portal-backend/models/api/task"
	"time"
)

type Task struct {
	BaseModel
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	AssignedTo        string              `gorm:"type:varchar(36);index" json:"assigned_to"`
	AssignedToProfile *Profile            `gorm:"foreignKey:AssignedTo" json:"assigned_to_profile,omitempty"`
	AssignedBy        string              `gorm:"type:varchar(36);index" json:"assigned_by"`
	AssignedByProfile *Profile            `gorm:"foreignKey:AssignedBy" json:"assigned_by_profile,omitempty"`
	DueDate           *time.Time          `gorm:"type:date" json:"due_date"`
	Priority          models.TaskPriority `gorm:"type:varchar(20)" json:"priority"`
	Status            models.TaskStatus   `gorm:"type:varchar(20);index" json:"status"`
	Department        string              `gorm:"type:varchar(150);index" json:"department"`
}

func (r Task) ToModel() taskapimodels.TaskView {
	result := taskapimodels.TaskView{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		AssignedTo:        r.AssignedTo,
		AssignedToProfile: r.AssignedToProfile.ToShortModel(),
		AssignedBy:        r.AssignedBy,
		AssignedByProfile: r.AssignedByProfile.ToShortModel(),
		Priority:          string(r.Priority),
		Status:            string(r.Status),
		Department:        r.Department,
		CreatedAt:         r.CreatedAt,
	}
	if r.DueDate != nil {
		dueDate := r.DueDate.Format(time.DateOnly)
		result.DueDate = &dueDate
	}
	return result
}

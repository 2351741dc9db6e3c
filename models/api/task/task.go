package taskapimodels

import (
	"errors"
	"strings"
	"time"

	profileapimodels "staff-portal-backend/models/api/profile"
)

type TaskView struct {
	ID                string                         `json:"id"`
	Title             string                         `json:"title"`
	Description       string                         `json:"description"`
	AssignedTo        string                         `json:"assigned_to"`
	AssignedToProfile *profileapimodels.ProfileShort `json:"assigned_to_profile,omitempty"`
	AssignedBy        string                         `json:"assigned_by"`
	AssignedByProfile *profileapimodels.ProfileShort `json:"assigned_by_profile,omitempty"`
	DueDate           *string                        `json:"due_date"`
	Priority          string                         `json:"priority"`
	Status            string                         `json:"status"`
	Department        string                         `json:"department"`
	CreatedAt         time.Time                      `json:"created_at"`
}

type CreateTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD, необязательно
	Priority    string `json:"priority"`
}

func (r CreateTask) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("не указано название задачи")
	}
	if r.AssignedTo == "" {
		return errors.New("не указан исполнитель")
	}
	if r.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, r.DueDate); err != nil {
			return errors.New("некорректный срок выполнения")
		}
	}
	return nil
}

type TaskStatusUpdate struct {
	Status string `json:"status"`
}

func (r TaskStatusUpdate) Validate() error {
	if r.Status == "" {
		return errors.New("не указан статус")
	}
	return nil
}

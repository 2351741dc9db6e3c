package projectapimodels

import (
	"errors"
	"strings"
	"time"

	profileapimodels "staff-portal-backend/models/api/profile"
)

type ProjectUpdateView struct {
	ID           string                         `json:"id"`
	EmployeeID   string                         `json:"employee_id"`
	Employee     *profileapimodels.ProfileShort `json:"employee,omitempty"`
	Title        string                         `json:"title"`
	Description  string                         `json:"description"`
	WorkLocation string                         `json:"work_location"`
	Images       []string                       `json:"images"`
	Status       string                         `json:"status"`
	CreatedAt    time.Time                      `json:"created_at"`
}

type CreateProjectUpdate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	WorkLocation string   `json:"work_location"`
	Images       []string `json:"images"`
}

func (r CreateProjectUpdate) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("не указано название проекта")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("не указано описание")
	}
	if r.WorkLocation == "" {
		return errors.New("не указано место работы")
	}
	return nil
}

type ProjectUpdateReview struct {
	Status string `json:"status"` // approved/draft
}

func (r ProjectUpdateReview) Validate() error {
	if r.Status == "" {
		return errors.New("не указан статус")
	}
	return nil
}

type UploadedImage struct {
	URL string `json:"url"`
}

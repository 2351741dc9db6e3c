package dbmodels

import (
	"staff-portal-backend/models"
	profileapimodels "staff-portal-backend/models/api/profile"
	"time"
)

type Profile struct {
	BaseModel
	Email          string          `gorm:"type:varchar(255);index" json:"email"`
	FullName       string          `gorm:"type:varchar(255)" json:"full_name"`
	Role           models.UserRole `gorm:"type:varchar(20)" json:"role"`
	Department     string          `gorm:"type:varchar(150);index" json:"department"`
	JobTitle       string          `gorm:"type:varchar(150)" json:"job_title"`
	JoiningDate    time.Time       `gorm:"type:date" json:"joining_date"`
	Location       string          `gorm:"type:varchar(150)" json:"location"`
	Phone          *string         `gorm:"type:varchar(30)" json:"phone"`
	ReportingTo    *string         `gorm:"type:varchar(36)" json:"reporting_to"`
	ProfilePicture *string         `json:"profile_picture"`
	IsActive       bool            `gorm:"index" json:"is_active"`
}

func (r Profile) ToModel() profileapimodels.ProfileView {
	return profileapimodels.ProfileView{
		ID:             r.ID,
		Email:          r.Email,
		FullName:       r.FullName,
		Role:           string(r.Role),
		RoleName:       r.Role.ToHuman(),
		Department:     r.Department,
		JobTitle:       r.JobTitle,
		JoiningDate:    r.JoiningDate.Format(time.DateOnly),
		Location:       r.Location,
		Phone:          r.Phone,
		ProfilePicture: r.ProfilePicture,
		IsActive:       r.IsActive,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *Profile) ToShortModel() *profileapimodels.ProfileShort {
	if r == nil {
		return nil
	}
	return &profileapimodels.ProfileShort{
		ID:         r.ID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
		JobTitle:   r.JobTitle,
	}
}

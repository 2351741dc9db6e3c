package profileapimodels

import (
	"errors"
	"strings"
	"time"
)

type ProfileView struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	RoleName       string    `json:"role_name"` // Название роли
	Department     string    `json:"department"`
	JobTitle       string    `json:"job_title"`
	JoiningDate    string    `json:"joining_date"` // Дата выхода YYYY-MM-DD
	Location       string    `json:"location"`
	Phone          *string   `json:"phone"`
	ProfilePicture *string   `json:"profile_picture"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProfileShort данные профиля для связанных сущностей (задачи, отпуска)
type ProfileShort struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
}

// OwnProfileData данные, которые сотрудник может изменить сам
type OwnProfileData struct {
	FullName       string  `json:"full_name"`
	Phone          *string `json:"phone"`
	Location       string  `json:"location"`
	ProfilePicture *string `json:"profile_picture"`
}

func (r OwnProfileData) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("не указано имя")
	}
	return nil
}

// EmployeeData данные сотрудника для админки
type EmployeeData struct {
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	Department  string  `json:"department"`
	JobTitle    string  `json:"job_title"`
	Phone       *string `json:"phone"`
	Location    string  `json:"location"`
	JoiningDate string  `json:"joining_date"` // YYYY-MM-DD
}

func (r EmployeeData) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("не указан емайл")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("не указано имя")
	}
	if strings.TrimSpace(r.Department) == "" {
		return errors.New("не указан отдел")
	}
	if r.JoiningDate != "" {
		if _, err := time.Parse(time.DateOnly, r.JoiningDate); err != nil {
			return errors.New("некорректная дата выхода")
		}
	}
	return nil
}

type DirectoryFilter struct {
	Search     string `json:"search" query:"search"`         // Поиск по имени, почте, должности
	Department string `json:"department" query:"department"` // Отдел
	Location   string `json:"location" query:"location"`     // Локация
}

// Identity пользователь внешнего сервиса авторизации
type Identity struct {
	ID    string
	Email string
}

package dbmodels

import (
	"database/sql/driver"

	"staff-portal-backend/models"
	projectapimodels "staff-portal-backend/models/api/project"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type ProjectUpdate struct {
	BaseModel
	EmployeeID   string                     `gorm:"type:varchar(36);index" json:"employee_id"`
	Employee     *Profile                   `gorm:"foreignKey:EmployeeID" json:"profiles,omitempty"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	WorkLocation string                     `gorm:"type:varchar(150)" json:"work_location"`
	Images       ImageList                  `json:"images"`
	Status       models.ProjectUpdateStatus `gorm:"type:varchar(20);index" json:"status"`
}

func (r ProjectUpdate) GetDepartment() string {
	if r.Employee == nil {
		return ""
	}
	return r.Employee.Department
}

func (r ProjectUpdate) ToModel() projectapimodels.ProjectUpdateView {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return projectapimodels.ProjectUpdateView{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Employee:     r.Employee.ToShortModel(),
		Title:        r.Title,
		Description:  r.Description,
		WorkLocation: r.WorkLocation,
		Images:       images,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// ImageList упорядоченный список ссылок на изображения, в postgres хранится как text[]
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *ImageList) Scan(src interface{}) error {
	return (*pq.StringArray)(l).Scan(src)
}

// GormDataType тип поля для разбора схемы, без него gorm считает срез связью
func (ImageList) GormDataType() string {
	return "text[]"
}

func (ImageList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

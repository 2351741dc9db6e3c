package dbmodels

import (
	announcementapimodels "staff-portal-backend/models/api/announcement"
)

type Announcement struct {
	BaseModel
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	AuthorID      string   `gorm:"type:varchar(36)" json:"author_id"`
	Author        *Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Department    *string  `gorm:"type:varchar(150);index" json:"department"` // nil - для всей компании
	AttachmentURL *string  `json:"attachment_url"`
	IsPriority    bool     `json:"is_priority"`
}

func (r Announcement) IsCompanyWide() bool {
	return r.Department == nil || *r.Department == ""
}

func (r Announcement) ToModel() announcementapimodels.AnnouncementView {
	return announcementapimodels.AnnouncementView{
		ID:            r.ID,
		Title:         r.Title,
		Content:       r.Content,
		AuthorID:      r.AuthorID,
		Author:        r.Author.ToShortModel(),
		Department:    r.Department,
		AttachmentURL: r.AttachmentURL,
		IsPriority:    r.IsPriority,
		CreatedAt:     r.CreatedAt,
	}
}

package announcementapimodels

import (
	"errors"
	"strings"
	"time"

	profileapimodels "staff-portal-backend/models/api/profile"
)

type AnnouncementView struct {
	ID            string                         `json:"id"`
	Title         string                         `json:"title"`
	Content       string                         `json:"content"`
	AuthorID      string                         `json:"author_id"`
	Author        *profileapimodels.ProfileShort `json:"author,omitempty"`
	Department    *string                        `json:"department"`
	AttachmentURL *string                        `json:"attachment_url"`
	IsPriority    bool                           `json:"is_priority"`
	CreatedAt     time.Time                      `json:"created_at"`
}

type CreateAnnouncement struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Department    string  `json:"department"` // пусто - для всей компании
	AttachmentURL *string `json:"attachment_url"`
	IsPriority    bool    `json:"is_priority"`
}

func (r CreateAnnouncement) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("не указан заголовок")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("не указан текст объявления")
	}
	return nil
}

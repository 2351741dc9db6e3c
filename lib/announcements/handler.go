package announcements

import (
	"context"
	"strings"

	"staff-portal-backend/lib/dataservice"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/visibility"
	announcementapimodels "staff-portal-backend/models/api/announcement"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, user dbmodels.Profile, data announcementapimodels.CreateAnnouncement) (announcementapimodels.AnnouncementView, error)
	List(ctx context.Context, user dbmodels.Profile) ([]announcementapimodels.AnnouncementView, error)
}

var Instance Provider

func NewHandler(client remote.Client, data dataservice.Provider) {
	Instance = NewInstance(client, data)
}

func NewInstance(client remote.Client, data dataservice.Provider) Provider {
	return &impl{
		client: client,
		data:   data,
	}
}

type impl struct {
	client remote.Client
	data   dataservice.Provider
}

func (i impl) Create(ctx context.Context, user dbmodels.Profile, data announcementapimodels.CreateAnnouncement) (announcementapimodels.AnnouncementView, error) {
	if !visibility.CanPublishAnnouncement(visibility.FromProfile(user)) {
		return announcementapimodels.AnnouncementView{}, visibility.ErrForbidden
	}
	rec := dbmodels.Announcement{
		Title:         strings.TrimSpace(data.Title),
		Content:       strings.TrimSpace(data.Content),
		AuthorID:      user.ID,
		Department:    helpers.EmptyToNil(&data.Department),
		AttachmentURL: helpers.EmptyToNil(data.AttachmentURL),
		IsPriority:    data.IsPriority,
	}
	err := i.client.Insert(ctx, remote.AnnouncementsTable, &rec)
	if err != nil {
		return announcementapimodels.AnnouncementView{}, err
	}
	// счетчик объявлений есть в статистике каждого пользователя
	i.data.InvalidateCache(dataservice.GlobalScope, "")
	log.
		WithField("announcement_id", rec.ID).
		WithField("author_id", user.ID).
		Info("опубликовано объявление")

	rec.Author = &user
	return rec.ToModel(), nil
}

func (i impl) List(ctx context.Context, user dbmodels.Profile) ([]announcementapimodels.AnnouncementView, error) {
	viewer := visibility.FromProfile(user)
	q := remote.From(remote.AnnouncementsTable).
		Join("Author").
		OrderBy("created_at", true)
	q = visibility.AnnouncementScope(viewer, q)

	list := []dbmodels.Announcement{}
	if err := i.client.Find(ctx, q, &list); err != nil {
		log.
			WithField("user_id", user.ID).
			WithError(err).
			Error("ошибка получения объявлений")
		return nil, errors.Wrap(err, "ошибка получения объявлений")
	}
	list = visibility.FilterAnnouncements(viewer, list)
	result := make([]announcementapimodels.AnnouncementView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

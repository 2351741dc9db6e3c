package projectupdates

import (
	"context"
	"strings"

	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/models"
	projectapimodels "staff-portal-backend/models/api/project"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, user dbmodels.Profile, data projectapimodels.CreateProjectUpdate) (projectapimodels.ProjectUpdateView, error)
	List(ctx context.Context, user dbmodels.Profile) ([]projectapimodels.ProjectUpdateView, error)
	Review(ctx context.Context, user dbmodels.Profile, id string, data projectapimodels.ProjectUpdateReview) (view projectapimodels.ProjectUpdateView, hMsg string, err error)
}

var Instance Provider

func NewHandler(client remote.Client) {
	Instance = NewInstance(client)
}

func NewInstance(client remote.Client) Provider {
	return &impl{
		client: client,
	}
}

type impl struct {
	client remote.Client
}

func (i impl) Create(ctx context.Context, user dbmodels.Profile, data projectapimodels.CreateProjectUpdate) (projectapimodels.ProjectUpdateView, error) {
	images := make(dbmodels.ImageList, 0, len(data.Images))
	for _, url := range data.Images {
		if strings.TrimSpace(url) != "" {
			images = append(images, strings.TrimSpace(url))
		}
	}
	rec := dbmodels.ProjectUpdate{
		EmployeeID:   user.ID,
		Title:        strings.TrimSpace(data.Title),
		Description:  strings.TrimSpace(data.Description),
		WorkLocation: data.WorkLocation,
		Images:       images,
		Status:       models.ProjectSubmitted,
	}
	if err := i.client.Insert(ctx, remote.ProjectUpdatesTable, &rec); err != nil {
		return projectapimodels.ProjectUpdateView{}, err
	}
	log.
		WithField("project_update_id", rec.ID).
		WithField("user_id", user.ID).
		Info("отправлен отчет по проекту")
	rec.Employee = &user
	return rec.ToModel(), nil
}

func (i impl) List(ctx context.Context, user dbmodels.Profile) ([]projectapimodels.ProjectUpdateView, error) {
	viewer := visibility.FromProfile(user)
	q := remote.From(remote.ProjectUpdatesTable).
		Join("Employee").
		OrderBy("created_at", true)
	if !viewer.Role.IsManagerOrAdmin() {
		q = q.Eq("employee_id", user.ID)
	}
	list := []dbmodels.ProjectUpdate{}
	if err := i.client.Find(ctx, q, &list); err != nil {
		log.
			WithField("user_id", user.ID).
			WithError(err).
			Error("ошибка получения отчетов по проектам")
		return nil, errors.Wrap(err, "ошибка получения отчетов по проектам")
	}
	list = visibility.FilterProjectUpdates(viewer, list)
	result := make([]projectapimodels.ProjectUpdateView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Review(ctx context.Context, user dbmodels.Profile, id string, data projectapimodels.ProjectUpdateReview) (projectapimodels.ProjectUpdateView, string, error) {
	rec := dbmodels.ProjectUpdate{}
	q := remote.From(remote.ProjectUpdatesTable).
		Join("Employee").
		Eq("id", id)
	err := i.client.First(ctx, q, &rec)
	if err != nil {
		if remote.IsNotFound(err) {
			return projectapimodels.ProjectUpdateView{}, "отчет не найден", nil
		}
		return projectapimodels.ProjectUpdateView{}, "", err
	}
	if !visibility.CanReviewProjectUpdate(visibility.FromProfile(user), rec) {
		return projectapimodels.ProjectUpdateView{}, "", visibility.ErrForbidden
	}
	status := models.ProjectUpdateStatus(data.Status)
	if !rec.Status.CanMoveTo(status) {
		return projectapimodels.ProjectUpdateView{}, "недопустимая смена статуса отчета", nil
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	updated := dbmodels.ProjectUpdate{}
	if err = i.client.Update(ctx, q, updMap, &updated); err != nil {
		return projectapimodels.ProjectUpdateView{}, "", err
	}
	log.
		WithField("project_update_id", id).
		WithField("reviewer_id", user.ID).
		WithField("status", status).
		Info("отчет по проекту проверен")
	return updated.ToModel(), "", nil
}

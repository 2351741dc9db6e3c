package taskstore

import (
	"context"

	"staff-portal-backend/lib/remote"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Task) (id string, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	GetByID(ctx context.Context, id string) (rec *dbmodels.Task, err error)
}

func NewInstance(client remote.Client) Provider {
	return &impl{
		client: client,
	}
}

type impl struct {
	client remote.Client
}

func (i impl) Create(ctx context.Context, rec dbmodels.Task) (id string, err error) {
	rec.AssignedToProfile = nil
	rec.AssignedByProfile = nil
	err = i.client.Insert(ctx, remote.TasksTable, &rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	q := remote.From(remote.TasksTable).
		Eq("id", id)
	return i.client.Update(ctx, q, updMap, nil)
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	q := remote.From(remote.TasksTable).
		Join("AssignedToProfile").
		Join("AssignedByProfile").
		Eq("id", id)
	err := i.client.First(ctx, q, &rec)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка получения задачи")
	}
	return &rec, nil
}

package profilestore

import (
	"context"

	"staff-portal-backend/lib/remote"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Profile) (id string, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	GetByID(ctx context.Context, id string) (rec *dbmodels.Profile, err error)
	GetByEmail(ctx context.Context, email string) (rec *dbmodels.Profile, err error)
	List(ctx context.Context) ([]dbmodels.Profile, error)
}

func NewInstance(client remote.Client) Provider {
	return &impl{
		client: client,
	}
}

type impl struct {
	client remote.Client
}

func (i impl) Create(ctx context.Context, rec dbmodels.Profile) (id string, err error) {
	err = i.client.Insert(ctx, remote.ProfilesTable, &rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	q := remote.From(remote.ProfilesTable).
		Eq("id", id)
	return i.client.Update(ctx, q, updMap, nil)
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.Profile, error) {
	q := remote.From(remote.ProfilesTable).
		Eq("id", id)
	return i.first(ctx, q)
}

func (i impl) GetByEmail(ctx context.Context, email string) (*dbmodels.Profile, error) {
	q := remote.From(remote.ProfilesTable).
		Eq("email", email).
		OrderBy("created_at", false)
	return i.first(ctx, q)
}

// List все профили, включая неактивные, новые первыми
func (i impl) List(ctx context.Context) ([]dbmodels.Profile, error) {
	list := []dbmodels.Profile{}
	q := remote.From(remote.ProfilesTable).
		OrderBy("created_at", true)
	err := i.client.Find(ctx, q, &list)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) first(ctx context.Context, q remote.Query) (*dbmodels.Profile, error) {
	rec := dbmodels.Profile{}
	err := i.client.First(ctx, q, &rec)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка получения профиля")
	}
	return &rec, nil
}

package leavestore

import (
	"context"

	"staff-portal-backend/lib/remote"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.LeaveRequest) (id string, err error)
	Update(ctx context.Context, id string, updMap map[string]interface{}) error
	GetByID(ctx context.Context, id string) (rec *dbmodels.LeaveRequest, err error)
}

func NewInstance(client remote.Client) Provider {
	return &impl{
		client: client,
	}
}

type impl struct {
	client remote.Client
}

func (i impl) Create(ctx context.Context, rec dbmodels.LeaveRequest) (id string, err error) {
	rec.Employee = nil
	err = i.client.Insert(ctx, remote.LeaveRequestsTable, &rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(ctx context.Context, id string, updMap map[string]interface{}) error {
	q := remote.From(remote.LeaveRequestsTable).
		Eq("id", id)
	return i.client.Update(ctx, q, updMap, nil)
}

func (i impl) GetByID(ctx context.Context, id string) (*dbmodels.LeaveRequest, error) {
	rec := dbmodels.LeaveRequest{}
	q := remote.From(remote.LeaveRequestsTable).
		Join("Employee").
		Eq("id", id)
	err := i.client.First(ctx, q, &rec)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка получения заявки на отпуск")
	}
	return &rec, nil
}

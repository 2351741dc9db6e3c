package notify

import (
	"testing"
	"time"

	"staff-portal-backend/models"
	dbmodels "staff-portal-backend/models/db"

	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, message string
}

type fakeSender struct {
	sent []sentMail
}

func (f *fakeSender) SendEMail(to, subject, message string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

func TestLeaveDecided(t *testing.T) {
	sender := &fakeSender{}
	comments := "хорошего отдыха"
	NewInstance(sender, true).LeaveDecided(
		dbmodels.LeaveRequest{
			LeaveType:       models.VacationLeave,
			StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			Status:          models.LeaveApproved,
			ManagerComments: &comments,
		},
		dbmodels.Profile{FullName: "Ann", Email: "ann@corp.io"},
		dbmodels.Profile{FullName: "Bob"},
	)
	require.Len(t, sender.sent, 1)
	require.Equal(t, "ann@corp.io", sender.sent[0].to)
	require.Equal(t, leaveDecidedTitle, sender.sent[0].subject)
	require.Contains(t, sender.sent[0].message, "с 2024-06-01 по 2024-06-03 одобрена")
	require.Contains(t, sender.sent[0].message, "Комментарий руководителя: хорошего отдыха")
	require.Contains(t, sender.sent[0].message, "Решение принял(а): Bob")
}

func TestTaskAssigned(t *testing.T) {
	sender := &fakeSender{}
	provider := NewInstance(sender, true)
	provider.TaskAssigned(
		dbmodels.Task{Title: "Отчет", Priority: models.HighPriority},
		dbmodels.Profile{FullName: "Ann", Email: "ann@corp.io"},
		dbmodels.Profile{FullName: "Bob"},
	)
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0].message, `Bob назначил(а) вам задачу "Отчет"`)
	require.NotContains(t, sender.sent[0].message, "Срок")

	provider.TaskAssigned(dbmodels.Task{Title: "x"}, dbmodels.Profile{}, dbmodels.Profile{})
	require.Len(t, sender.sent, 1)
}

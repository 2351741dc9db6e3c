// Package notify письма сотрудникам о решениях по их заявкам и новых задачах
package notify

import (
	"bytes"
	"text/template"
	"time"

	"staff-portal-backend/lib/smtp"
	"staff-portal-backend/models"
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	leaveDecidedTitle = "Решение по заявке на отпуск"
	taskAssignedTitle = "Новая задача"
)

var (
	leaveDecidedTpl = template.Must(template.New("leave").Parse(
		`Здравствуйте, {{.EmployeeName}}!

Ваша заявка на отпуск ({{.LeaveType}}) с {{.StartDate}} по {{.EndDate}} {{.Decision}}.
{{- if .Comments}}
Комментарий руководителя: {{.Comments}}
{{- end}}
Решение принял(а): {{.ManagerName}}`))

	taskAssignedTpl = template.Must(template.New("task").Parse(
		`Здравствуйте, {{.AssigneeName}}!

{{.AssignerName}} назначил(а) вам задачу "{{.Title}}".
Приоритет: {{.Priority}}
{{- if .DueDate}}
Срок: {{.DueDate}}
{{- end}}
{{- if .Description}}

{{.Description}}
{{- end}}`))
)

type Provider interface {
	LeaveDecided(leave dbmodels.LeaveRequest, employee, manager dbmodels.Profile)
	TaskAssigned(task dbmodels.Task, assignee, assigner dbmodels.Profile)
}

var Instance Provider

func NewHandler(sender smtp.Provider) {
	Instance = NewInstance(sender, false)
}

// NewInstance sync == true - письма отправляются в вызывающей горутине
func NewInstance(sender smtp.Provider, sync bool) Provider {
	return &impl{
		sender: sender,
		sync:   sync,
	}
}

type impl struct {
	sender smtp.Provider
	sync   bool
}

type leaveData struct {
	EmployeeName string
	LeaveType    string
	StartDate    string
	EndDate      string
	Decision     string
	Comments     string
	ManagerName  string
}

type taskData struct {
	AssigneeName string
	AssignerName string
	Title        string
	Priority     string
	DueDate      string
	Description  string
}

func (i impl) LeaveDecided(leave dbmodels.LeaveRequest, employee, manager dbmodels.Profile) {
	data := leaveData{
		EmployeeName: employee.FullName,
		LeaveType:    string(leave.LeaveType),
		StartDate:    leave.StartDate.Format(time.DateOnly),
		EndDate:      leave.EndDate.Format(time.DateOnly),
		Decision:     "отклонена",
		ManagerName:  manager.FullName,
	}
	if leave.Status == models.LeaveApproved {
		data.Decision = "одобрена"
	}
	if leave.ManagerComments != nil {
		data.Comments = *leave.ManagerComments
	}
	i.send(employee.Email, leaveDecidedTitle, leaveDecidedTpl, data)
}

func (i impl) TaskAssigned(task dbmodels.Task, assignee, assigner dbmodels.Profile) {
	data := taskData{
		AssigneeName: assignee.FullName,
		AssignerName: assigner.FullName,
		Title:        task.Title,
		Priority:     string(task.Priority),
		Description:  task.Description,
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.Format(time.DateOnly)
	}
	i.send(assignee.Email, taskAssignedTitle, taskAssignedTpl, data)
}

func (i impl) send(to, subject string, tpl *template.Template, data interface{}) {
	logger := log.
		WithField("recipient", to).
		WithField("subject", subject)
	if to == "" || i.sender == nil {
		return
	}
	message, err := render(tpl, data)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования письма")
		return
	}
	if i.sync {
		_ = i.sender.SendEMail(to, subject, message)
		return
	}
	go func() {
		_ = i.sender.SendEMail(to, subject, message)
	}()
}

func render(tpl *template.Template, data interface{}) (string, error) {
	buf := new(bytes.Buffer)
	if err := tpl.Execute(buf, data); err != nil {
		return "", errors.Wrap(err, "ошибка заполнения шаблона")
	}
	return buf.String(), nil
}

package xlsexport

import (
	"bytes"
	"fmt"

	profileapimodels "staff-portal-backend/models/api/profile"
	reportapimodels "staff-portal-backend/models/api/report"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportReport(data reportapimodels.ReportData, filter reportapimodels.ReportFilter) (*bytes.Buffer, error)
	ExportEmployeeList(list []profileapimodels.ProfileView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var (
	metricHeaders   = []string{"Показатель", "Значение"}
	chartHeaders    = []string{"Наименование", "Количество"}
	employeeHeaders = []string{"ФИО", "Email", "Роль", "Отдел", "Должность", "Локация", "Телефон", "Дата выхода", "Статус"}
)

type reportSheet struct {
	name    string
	metrics [][]interface{}
	title   string
	chart   []reportapimodels.ChartItem
}

func (i impl) ExportReport(data reportapimodels.ReportData, filter reportapimodels.ReportFilter) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	department := filter.Department
	if department == "" {
		department = "Все отделы"
	}
	locations := make([]reportapimodels.ChartItem, 0, len(data.ProjectsByLocation))
	for _, item := range data.ProjectsByLocation {
		locations = append(locations, reportapimodels.ChartItem{Name: item.Name, Value: item.Value})
	}
	sheets := []reportSheet{
		{
			name: "Сотрудники",
			metrics: [][]interface{}{
				{"Период, дней", filter.GetDays()},
				{"Отдел", department},
				{"Всего сотрудников", data.TotalEmployees},
				{"Активных", data.ActiveEmployees},
				{"Новых в этом месяце", data.NewHiresThisMonth},
			},
			title: "По отделам",
			chart: data.EmployeesByDepartment,
		},
		{
			name: "Отпуска",
			metrics: [][]interface{}{
				{"Всего заявок", data.TotalLeaveRequests},
				{"Одобрено", data.ApprovedLeaves},
				{"На рассмотрении", data.PendingLeaves},
				{"Отклонено", data.RejectedLeaves},
				{"Средняя длительность, дней", fmt.Sprintf("%.1f", data.AverageLeaveDays)},
			},
			title: "По типу",
			chart: data.LeavesByType,
		},
		{
			name: "Задачи",
			metrics: [][]interface{}{
				{"Всего задач", data.TotalTasks},
				{"Выполнено", data.CompletedTasks},
				{"Ожидают", data.PendingTasks},
				{"Просрочено", data.OverdueTasks},
				{"Процент выполнения", fmt.Sprintf("%.1f%%", data.TaskCompletionRate)},
			},
			title: "По приоритету",
			chart: data.TasksByPriority,
		},
		{
			name: "Проекты",
			metrics: [][]interface{}{
				{"Всего отчетов", data.TotalProjects},
				{"Одобрено", data.ApprovedProjects},
				{"На проверке", data.SubmittedProjects},
				{"Черновики", data.DraftProjects},
			},
			title: "По месту работы",
			chart: locations,
		},
	}
	for idx, sheet := range sheets {
		if idx == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, errors.Wrap(err, "ошибка создания листа в xlsx")
		}
		if err := writeReportSheet(f, sheet); err != nil {
			return nil, errors.Wrapf(err, "ошибка формирования листа %v в xlsx", sheet.name)
		}
	}
	return f.WriteToBuffer()
}

func writeReportSheet(f *excelize.File, sheet reportSheet) error {
	row, err := writeHeader(f, sheet.name, 0, metricHeaders)
	if err != nil {
		return err
	}
	if row, err = writeRows(f, sheet.name, row, sheet.metrics); err != nil {
		return err
	}
	// пустая строка между разделами
	row++
	if row, err = writeTitle(f, sheet.name, row, sheet.title); err != nil {
		return err
	}
	if row, err = writeHeader(f, sheet.name, row, chartHeaders); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(sheet.chart))
	for _, item := range sheet.chart {
		rows = append(rows, []interface{}{item.Name, item.Value})
	}
	_, err = writeRows(f, sheet.name, row, rows)
	return err
}

func (i impl) ExportEmployeeList(list []profileapimodels.ProfileView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, employeeHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	rows := make([][]interface{}, 0, len(list))
	for _, item := range list {
		phone := ""
		if item.Phone != nil {
			phone = *item.Phone
		}
		status := "Активен"
		if !item.IsActive {
			status = "Отключен"
		}
		rows = append(rows, []interface{}{
			item.FullName,
			item.Email,
			item.RoleName,
			item.Department,
			item.JobTitle,
			item.Location,
			phone,
			item.JoiningDate,
			status,
		})
	}
	if _, err = writeRows(f, sheet, row, rows); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = f.SetSheetName(sheet, "Сотрудники"); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	return f.WriteToBuffer()
}

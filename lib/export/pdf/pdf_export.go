package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	reportapimodels "staff-portal-backend/models/api/report"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultFontDir = "static/font/"

	fontFamily  = "Arial"
	pageMargin  = 15.0
	nameWidth   = 110.0
	valueWidth  = 60.0
	lineHeight  = 8.0
	titleHeight = 12.0
)

type Provider interface {
	GenerateReport(data reportapimodels.ReportData, filter reportapimodels.ReportFilter, generatedAt time.Time) ([]byte, error)
}

var Instance Provider

func NewHandler(fontDir string) {
	Instance = NewInstance(fontDir)
}

// NewInstance при отсутствии Arial.ttf в fontDir используется встроенный Helvetica с транслитерацией
func NewInstance(fontDir string) Provider {
	if fontDir == "" {
		fontDir = DefaultFontDir
	}
	_, err := os.Stat(filepath.Join(fontDir, "Arial.ttf"))
	utf8Font := err == nil
	if !utf8Font {
		log.WithField("font_dir", fontDir).Warn("шрифт Arial не найден, в pdf будет использована транслитерация")
	}
	return &impl{
		fontDir:  fontDir,
		utf8Font: utf8Font,
	}
}

type impl struct {
	fontDir  string
	utf8Font bool
}

type section struct {
	title   string
	metrics [][2]string
	chart   []reportapimodels.ChartItem
}

func (i impl) GenerateReport(data reportapimodels.ReportData, filter reportapimodels.ReportFilter, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateReport panic recover: %v", r)
		}
	}()
	pdf, tr := i.newDocument()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.AddPage()

	department := filter.Department
	if department == "" {
		department = "Все отделы"
	}
	pdf.SetFont(i.family(), "B", 16)
	pdf.CellFormat(0, titleHeight, tr("Отчет по персоналу"), "", 1, "L", false, 0, "")
	pdf.SetFont(i.family(), "", 11)
	pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("Период: последние %v дн., отдел: %v", filter.GetDays(), department)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("Сформирован: %v", generatedAt.Format("02.01.2006 15:04"))), "", 1, "L", false, 0, "")

	for _, s := range reportSections(data) {
		writeSection(pdf, i.family(), tr, s)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (i impl) newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", i.fontDir)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	if !i.utf8Font {
		return pdf, transliterate
	}
	pdf.AddUTF8Font(fontFamily, "", "Arial.ttf")
	pdf.AddUTF8Font(fontFamily, "B", "Arial Bold.ttf")
	return pdf, func(s string) string { return s }
}

func (i impl) family() string {
	if i.utf8Font {
		return fontFamily
	}
	return "Helvetica"
}

func reportSections(data reportapimodels.ReportData) []section {
	locations := make([]reportapimodels.ChartItem, 0, len(data.ProjectsByLocation))
	for _, item := range data.ProjectsByLocation {
		locations = append(locations, reportapimodels.ChartItem{Name: item.Name, Value: item.Value})
	}
	return []section{
		{
			title: "Сотрудники",
			metrics: [][2]string{
				{"Всего сотрудников", fmt.Sprint(data.TotalEmployees)},
				{"Активных", fmt.Sprint(data.ActiveEmployees)},
				{"Новых в этом месяце", fmt.Sprint(data.NewHiresThisMonth)},
			},
			chart: data.EmployeesByDepartment,
		},
		{
			title: "Отпуска",
			metrics: [][2]string{
				{"Всего заявок", fmt.Sprint(data.TotalLeaveRequests)},
				{"Одобрено", fmt.Sprint(data.ApprovedLeaves)},
				{"На рассмотрении", fmt.Sprint(data.PendingLeaves)},
				{"Отклонено", fmt.Sprint(data.RejectedLeaves)},
				{"Средняя длительность, дней", fmt.Sprintf("%.1f", data.AverageLeaveDays)},
			},
			chart: data.LeavesByType,
		},
		{
			title: "Задачи",
			metrics: [][2]string{
				{"Всего задач", fmt.Sprint(data.TotalTasks)},
				{"Выполнено", fmt.Sprint(data.CompletedTasks)},
				{"Ожидают", fmt.Sprint(data.PendingTasks)},
				{"Просрочено", fmt.Sprint(data.OverdueTasks)},
				{"Процент выполнения", fmt.Sprintf("%.1f%%", data.TaskCompletionRate)},
			},
			chart: data.TasksByPriority,
		},
		{
			title: "Проекты",
			metrics: [][2]string{
				{"Всего отчетов", fmt.Sprint(data.TotalProjects)},
				{"Одобрено", fmt.Sprint(data.ApprovedProjects)},
				{"На проверке", fmt.Sprint(data.SubmittedProjects)},
				{"Черновики", fmt.Sprint(data.DraftProjects)},
			},
			chart: locations,
		},
	}
}

func writeSection(pdf *fpdf.Fpdf, family string, tr func(string) string, s section) {
	pdf.Ln(4)
	pdf.SetFont(family, "B", 13)
	pdf.CellFormat(0, titleHeight, tr(s.title), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	for _, metric := range s.metrics {
		pdf.CellFormat(nameWidth, lineHeight, tr(metric[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, lineHeight, tr(metric[1]), "1", 1, "R", false, 0, "")
	}
	if len(s.chart) == 0 {
		return
	}
	pdf.Ln(2)
	pdf.SetFillColor(220, 230, 241)
	for _, item := range s.chart {
		pdf.CellFormat(nameWidth, lineHeight, tr(item.Name), "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueWidth, lineHeight, fmt.Sprint(item.Value), "1", 1, "R", true, 0, "")
	}
}

var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

// transliterate кириллица в латиницу, остальные символы вне latin1 заменяются на '?'
func transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		lower := []rune(strings.ToLower(string(r)))[0]
		if latin, ok := translitTable[lower]; ok {
			if lower != r && latin != "" {
				latin = strings.ToUpper(latin[:1]) + latin[1:]
			}
			b.WriteString(latin)
			continue
		}
		if r > 0x7f {
			b.WriteRune('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

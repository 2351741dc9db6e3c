package apiv1

import (
	"bytes"
	"fmt"
	"time"

	"staff-portal-backend/controllers"
	pdfexport "staff-portal-backend/lib/export/pdf"
	xlsexport "staff-portal-backend/lib/export/xls"
	"staff-portal-backend/lib/reports"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	reportapimodels "staff-portal-backend/models/api/report"

	"github.com/gofiber/fiber/v2"
)

type reportsApiController struct {
	controllers.BaseAPIController
}

func InitReportsApiRouters(app *fiber.App) {
	controller := reportsApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Get("xlsx", controller.exportXlsx)
		router.Get("pdf", controller.exportPdf)
	})
}

// @Summary Отчет по персоналу
// @Tags Отчеты
// @Description Сотрудники, отпуска, задачи и отчеты по проектам за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   days				query		int		false	"Период в днях (по умолчанию 30)"
// @Param   department			query		string	false	"Отдел"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportData}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports [get]
func (c *reportsApiController) get(ctx *fiber.Ctx) error {
	_, data, err := c.build(ctx)
	if err != nil || data == nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Выгрузить отчет в Excel
// @Tags Отчеты
// @Description Выгрузить отчет по персоналу в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   days				query		int		false	"Период в днях (по умолчанию 30)"
// @Param   department			query		string	false	"Отдел"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/xlsx [get]
func (c *reportsApiController) exportXlsx(ctx *fiber.Ctx) error {
	filter, data, err := c.build(ctx)
	if err != nil || data == nil {
		return err
	}
	file, err := xlsexport.Instance.ExportReport(*data, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета в Excel")
	}
	fileName := fmt.Sprintf("report-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(file)
}

// @Summary Выгрузить отчет в PDF
// @Tags Отчеты
// @Description Выгрузить отчет по персоналу в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   days				query		int		false	"Период в днях (по умолчанию 30)"
// @Param   department			query		string	false	"Отдел"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/pdf [get]
func (c *reportsApiController) exportPdf(ctx *fiber.Ctx) error {
	filter, data, err := c.build(ctx)
	if err != nil || data == nil {
		return err
	}
	now := time.Now()
	file, err := pdfexport.Instance.GenerateReport(*data, filter, now)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета в PDF")
	}
	fileName := fmt.Sprintf("report-%v.pdf", now.Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(bytes.NewReader(file))
}

// build при ошибке ответ уже отправлен, data == nil
func (c *reportsApiController) build(ctx *fiber.Ctx) (reportapimodels.ReportFilter, *reportapimodels.ReportData, error) {
	var filter reportapimodels.ReportFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return filter, nil, ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := reports.Instance.Build(ctx.UserContext(), middleware.GetUser(ctx), filter)
	if err != nil {
		return filter, nil, c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка построения отчета")
	}
	return filter, &data, nil
}

package apiv1

import (
	"fmt"
	"time"

	"staff-portal-backend/controllers"
	"staff-portal-backend/lib/dataservice"
	xlsexport "staff-portal-backend/lib/export/xls"
	"staff-portal-backend/lib/profiles"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	profileapimodels "staff-portal-backend/models/api/profile"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type employeesApiController struct {
	controllers.BaseAPIController
}

func InitEmployeesApiRouters(app *fiber.App) {
	controller := employeesApiController{}
	app.Route("admin", func(adminRoute fiber.Router) {
		adminRoute.Delete("cache", controller.resetCache)
		adminRoute.Route("employees", func(router fiber.Router) {
			router.Get("", controller.list)
			router.Post("", controller.create)
			router.Get("xlsx", controller.export)
			router.Route(":id", func(idRoute fiber.Router) {
				idRoute.Put("", controller.update)
				idRoute.Put("toggle_active", controller.toggleActive)
			})
		})
	})
}

// @Summary Список сотрудников
// @Tags Администрирование
// @Description Все профили, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]profileapimodels.ProfileView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employees [get]
func (c *employeesApiController) list(ctx *fiber.Ctx) error {
	list, err := profiles.Instance.ListAll(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Добавить сотрудника
// @Tags Администрирование
// @Description Добавить сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		profileapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employees [post]
func (c *employeesApiController) create(ctx *fiber.Ctx) error {
	var payload profileapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := profiles.Instance.AddEmployee(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления сотрудника")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменить сотрудника
// @Tags Администрирование
// @Description Изменить данные сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 					path 		string  true 	"profile ID"
// @Param	body				body		profileapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employees/{id} [put]
func (c *employeesApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload profileapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := profiles.Instance.EditEmployee(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения сотрудника")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Включить/отключить сотрудника
// @Tags Администрирование
// @Description Переключить признак активности сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 					path 		string  true 	"profile ID"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employees/{id}/toggle_active [put]
func (c *employeesApiController) toggleActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if id == middleware.GetUser(ctx).ID {
		return c.SendHumanError(ctx, "нельзя отключить собственную учетную запись")
	}
	resp, hMsg, err := profiles.Instance.ToggleActive(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения активности сотрудника")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузить сотрудников в Excel
// @Tags Администрирование
// @Description Выгрузить всех сотрудников в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employees/xlsx [get]
func (c *employeesApiController) export(ctx *fiber.Ctx) error {
	list, err := profiles.Instance.ListAll(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	data, err := xlsexport.Instance.ExportEmployeeList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки сотрудников в Excel")
	}
	fileName := fmt.Sprintf("employees-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Сбросить кеш
// @Tags Администрирование
// @Description Сбросить общие кешированные данные (справочник сотрудников)
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 403
// @router /api/v1/admin/cache [delete]
func (c *employeesApiController) resetCache(ctx *fiber.Ctx) error {
	dataservice.Instance.InvalidateCache(dataservice.GlobalScope, "")
	log.WithField("user_id", middleware.GetUser(ctx).ID).Info("общий кеш сброшен")
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

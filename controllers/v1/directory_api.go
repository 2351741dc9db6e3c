package apiv1

import (
	"staff-portal-backend/controllers"
	"staff-portal-backend/lib/profiles"
	apimodels "staff-portal-backend/models/api"
	profileapimodels "staff-portal-backend/models/api/profile"

	"github.com/gofiber/fiber/v2"
)

type directoryApiController struct {
	controllers.BaseAPIController
}

func InitDirectoryApiRouters(app *fiber.App) {
	controller := directoryApiController{}
	app.Route("directory", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("departments", controller.departments)
	})
}

// @Summary Справочник сотрудников
// @Tags Справочник сотрудников
// @Description Активные сотрудники с фильтром по имени/почте/должности, отделу и локации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search				query		string	false	"Поиск"
// @Param   department			query		string	false	"Отдел"
// @Param   location			query		string	false	"Локация"
// @Success 200 {object} apimodels.ListResponse{data=[]profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/directory [get]
func (c *directoryApiController) list(ctx *fiber.Ctx) error {
	var filter profileapimodels.DirectoryFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := profiles.Instance.Directory(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения справочника сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Список отделов
// @Tags Справочник сотрудников
// @Description Отделы активных сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/directory/departments [get]
func (c *directoryApiController) departments(ctx *fiber.Ctx) error {
	list, err := profiles.Instance.Departments(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка отделов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

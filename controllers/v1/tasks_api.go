package apiv1

import (
	"staff-portal-backend/controllers"
	taskshandler "staff-portal-backend/lib/tasks"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	taskapimodels "staff-portal-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type tasksApiController struct {
	controllers.BaseAPIController
}

func InitTasksApiRouters(app *fiber.App) {
	controller := tasksApiController{}
	app.Route("tasks", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Put(":id/status", controller.updateStatus)
	})
}

// @Summary Задачи
// @Tags Задачи
// @Description Задачи с учетом роли: свои, назначенные или задачи отдела
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]taskapimodels.TaskView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks [get]
func (c *tasksApiController) list(ctx *fiber.Ctx) error {
	list, err := taskshandler.Instance.List(ctx.UserContext(), middleware.GetUser(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Создать задачу
// @Tags Задачи
// @Description Назначить задачу сотруднику
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		taskapimodels.CreateTask	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks [post]
func (c *tasksApiController) create(ctx *fiber.Ctx) error {
	var payload taskapimodels.CreateTask
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := taskshandler.Instance.Create(ctx.UserContext(), middleware.GetUser(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задачи")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменить статус задачи
// @Tags Задачи
// @Description pending -> in_progress -> completed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 					path 		string  true 	"task ID"
// @Param	body				body		taskapimodels.TaskStatusUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/status [put]
func (c *tasksApiController) updateStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.TaskStatusUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := taskshandler.Instance.UpdateStatus(ctx.UserContext(), middleware.GetUser(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения статуса задачи")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

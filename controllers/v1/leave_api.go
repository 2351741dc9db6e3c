package apiv1

import (
	"staff-portal-backend/controllers"
	leavehandler "staff-portal-backend/lib/leave"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	leaveapimodels "staff-portal-backend/models/api/leave"

	"github.com/gofiber/fiber/v2"
)

type leaveApiController struct {
	controllers.BaseAPIController
}

func InitLeaveApiRouters(app *fiber.App) {
	controller := leaveApiController{}
	app.Route("leave", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Put(":id/decide", controller.decide)
	})
}

// @Summary Заявки на отпуск
// @Tags Отпуска
// @Description Сотрудник видит свои заявки, руководитель - заявки своего отдела, суперадмин - все
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]leaveapimodels.LeaveRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave [get]
func (c *leaveApiController) list(ctx *fiber.Ctx) error {
	list, err := leavehandler.Instance.List(ctx.UserContext(), middleware.GetUser(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Подать заявку на отпуск
// @Tags Отпуска
// @Description Подать заявку на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		leaveapimodels.CreateLeaveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave [post]
func (c *leaveApiController) create(ctx *fiber.Ctx) error {
	var payload leaveapimodels.CreateLeaveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := leavehandler.Instance.Create(ctx.UserContext(), middleware.GetUser(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Решение по заявке на отпуск
// @Tags Отпуска
// @Description Одобрить или отклонить заявку на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 					path 		string  true 	"leave request ID"
// @Param	body				body		leaveapimodels.LeaveDecision	true	"request body"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leave/{id}/decide [put]
func (c *leaveApiController) decide(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload leaveapimodels.LeaveDecision
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := leavehandler.Instance.Decide(ctx.UserContext(), middleware.GetUser(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения заявки на отпуск")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

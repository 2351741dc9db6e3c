package apiv1

import (
	"staff-portal-backend/controllers"
	"staff-portal-backend/lib/announcements"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	announcementapimodels "staff-portal-backend/models/api/announcement"

	"github.com/gofiber/fiber/v2"
)

type announcementsApiController struct {
	controllers.BaseAPIController
}

func InitAnnouncementsApiRouters(app *fiber.App) {
	controller := announcementsApiController{}
	app.Route("announcements", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
	})
}

// @Summary Объявления
// @Tags Объявления
// @Description Общие объявления и объявления отдела пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]announcementapimodels.AnnouncementView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/announcements [get]
func (c *announcementsApiController) list(ctx *fiber.Ctx) error {
	list, err := announcements.Instance.List(ctx.UserContext(), middleware.GetUser(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения объявлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Опубликовать объявление
// @Tags Объявления
// @Description Опубликовать объявление, без отдела - для всей компании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		announcementapimodels.CreateAnnouncement	true	"request body"
// @Success 200 {object} apimodels.Response{data=announcementapimodels.AnnouncementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/announcements [post]
func (c *announcementsApiController) create(ctx *fiber.Ctx) error {
	var payload announcementapimodels.CreateAnnouncement
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := announcements.Instance.Create(ctx.UserContext(), middleware.GetUser(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка публикации объявления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

package apiv1

import (
	"staff-portal-backend/controllers"
	filestorage "staff-portal-backend/lib/file-storage"
	projectupdates "staff-portal-backend/lib/project-updates"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	projectapimodels "staff-portal-backend/models/api/project"

	"github.com/gofiber/fiber/v2"
)

type projectUpdatesApiController struct {
	controllers.BaseAPIController
}

func InitProjectUpdatesApiRouters(app *fiber.App) {
	controller := projectUpdatesApiController{}
	app.Route("project_updates", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Post("images", controller.uploadImage)
		router.Put(":id/review", controller.review)
	})
}

// @Summary Отчеты по проектам
// @Tags Отчеты по проектам
// @Description Сотрудник видит свои отчеты, руководитель - отчеты своего отдела, суперадмин - все
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ListResponse{data=[]projectapimodels.ProjectUpdateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project_updates [get]
func (c *projectUpdatesApiController) list(ctx *fiber.Ctx) error {
	list, err := projectupdates.Instance.List(ctx.UserContext(), middleware.GetUser(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отчетов по проектам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, len(list)))
}

// @Summary Отправить отчет по проекту
// @Tags Отчеты по проектам
// @Description Отправить отчет по проекту с изображениями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		projectapimodels.CreateProjectUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectUpdateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project_updates [post]
func (c *projectUpdatesApiController) create(ctx *fiber.Ctx) error {
	var payload projectapimodels.CreateProjectUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := projectupdates.Instance.Create(ctx.UserContext(), middleware.GetUser(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения отчета по проекту")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузить изображение к отчету
// @Tags Отчеты по проектам
// @Description Загрузить изображение (только изображения, не более 10 МБ), возвращает публичную ссылку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   image				formData	file 	true 	"Изображение"
// @Success 200 {object} apimodels.Response{data=projectapimodels.UploadedImage}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project_updates/images [post]
func (c *projectUpdatesApiController) uploadImage(ctx *fiber.Ctx) error {
	url, hMsg, err := c.UploadImage(ctx, "image", filestorage.ProjectImage, middleware.GetUser(ctx).ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки изображения")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(projectapimodels.UploadedImage{URL: url}))
}

// @Summary Проверить отчет по проекту
// @Tags Отчеты по проектам
// @Description Одобрить отчет или вернуть в черновики
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	id 					path 		string  true 	"project update ID"
// @Param	body				body		projectapimodels.ProjectUpdateReview	true	"request body"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectUpdateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project_updates/{id}/review [put]
func (c *projectUpdatesApiController) review(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.ProjectUpdateReview
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := projectupdates.Instance.Review(ctx.UserContext(), middleware.GetUser(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки отчета по проекту")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

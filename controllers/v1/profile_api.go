package apiv1

import (
	"staff-portal-backend/controllers"
	filestorage "staff-portal-backend/lib/file-storage"
	"staff-portal-backend/lib/profiles"
	"staff-portal-backend/lib/rbac"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"
	profileapimodels "staff-portal-backend/models/api/profile"
	projectapimodels "staff-portal-backend/models/api/project"

	"github.com/gofiber/fiber/v2"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", controller.update)
		router.Get("permissions", controller.permissions)
		router.Post("picture", controller.uploadPicture)
	})
}

// @Summary Профиль текущего пользователя
// @Tags Профиль
// @Description Профиль текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [get]
func (c *profileApiController) get(ctx *fiber.Ctx) error {
	user := middleware.GetUser(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(user.ToModel()))
}

// @Summary Изменить свой профиль
// @Tags Профиль
// @Description Изменить имя, телефон, локацию и фото
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		profileapimodels.OwnProfileData	true	"request body"
// @Success 200 {object} apimodels.Response{data=profileapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [put]
func (c *profileApiController) update(ctx *fiber.Ctx) error {
	var payload profileapimodels.OwnProfileData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	user := middleware.GetUser(ctx)
	resp, err := profiles.Instance.UpdateOwn(ctx.UserContext(), user.ID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Права текущего пользователя
// @Tags Профиль
// @Description Доступные разделы и действия для роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @router /api/v1/profile/permissions [get]
func (c *profileApiController) permissions(ctx *fiber.Ctx) error {
	user := middleware.GetUser(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rbac.Instance.GetPermissions(user.Role)))
}

// @Summary Загрузить фото профиля
// @Tags Профиль
// @Description Загрузить фото профиля (только изображения, не более 5 МБ)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   picture				formData	file 	true 	"Фото"
// @Success 200 {object} apimodels.Response{data=projectapimodels.UploadedImage}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/picture [post]
func (c *profileApiController) uploadPicture(ctx *fiber.Ctx) error {
	user := middleware.GetUser(ctx)
	url, hMsg, err := c.UploadImage(ctx, "picture", filestorage.ProfileImage, user.ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки фото профиля")
	}
	if hMsg != "" {
		return c.SendHumanError(ctx, hMsg)
	}
	if err = profiles.Instance.SetProfilePicture(ctx.UserContext(), user.ID, url); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения фото профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(projectapimodels.UploadedImage{URL: url}))
}

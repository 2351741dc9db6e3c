package apiv1

import (
	"staff-portal-backend/controllers"
	"staff-portal-backend/lib/dataservice"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("stats", controller.stats)
		router.Get("activity", controller.activity)
	})
}

// @Summary Статистика главной страницы
// @Tags Главная
// @Description Статистика главной страницы с учетом роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardStats}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/stats [get]
func (c *dashboardApiController) stats(ctx *fiber.Ctx) error {
	user := middleware.GetUser(ctx)
	resp, err := dataservice.Instance.GetDashboardStats(ctx.UserContext(), user.ID, user.Role, user.Department)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Последние события
// @Tags Главная
// @Description Последние события: задачи, отпуска, объявления (не более 5)
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dashboardapimodels.RecentActivity}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/activity [get]
func (c *dashboardApiController) activity(ctx *fiber.Ctx) error {
	user := middleware.GetUser(ctx)
	resp, err := dataservice.Instance.GetRecentActivity(ctx.UserContext(), user.ID, user.Department)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения последних событий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

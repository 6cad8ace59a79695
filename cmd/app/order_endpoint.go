package main

import (
	"net/http"

	"StorefrontAPI/internal/repository"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// Dashboard reads over the order/subscription stores. Statistics are
// recomputed on each request.
func registerDashboardRoutes(
	g *echo.Group,
	orders repository.OrderRepository,
	subs repository.SubscriptionRepository,
	stats *services.StatsService,
) {
	d := g.Group("/dashboard")

	d.GET("/orders", func(c echo.Context) error {
		list, err := orders.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": list})
	})

	d.GET("/orders/stats", func(c echo.Context) error {
		s, err := stats.OrderStats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		return c.JSON(http.StatusOK, s)
	})

	d.GET("/subscriptions", func(c echo.Context) error {
		list, err := subs.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"subscriptions": list})
	})

	d.GET("/subscriptions/stats", func(c echo.Context) error {
		s, err := stats.SubscriptionStats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		return c.JSON(http.StatusOK, s)
	})
}

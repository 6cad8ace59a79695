package main

import (
	"net/http"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type portalRequest struct {
	Email     string `json:"email"`
	ReturnURL string `json:"returnUrl"`
}

func registerBillingRoutes(g *echo.Group, bs *services.BillingService, limit echo.MiddlewareFunc) {
	p := g.Group("/billing")

	p.POST("/portal", func(c echo.Context) error {
		req := new(portalRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		url, err := bs.CreatePortalSession(c.Request().Context(), req.Email, req.ReturnURL)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"url": url})
	}, limit)
}

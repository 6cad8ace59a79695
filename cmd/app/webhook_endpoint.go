package main

import (
	"io"
	"net/http"

	stripeclient "StorefrontAPI/external/stripe"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerWebhookRoutes(g *echo.Group, sc *stripeclient.Client, ws *services.WebhookService) {
	// ============================
	// STRIPE WEBHOOK
	// (public; signature-verified over the raw body)
	// ============================
	g.POST("/webhooks/stripe", func(c echo.Context) error {
		payload, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable payload"})
		}

		event, err := sc.ParseWebhookEvent(payload, c.Request().Header.Get("Stripe-Signature"))
		if err != nil {
			// No retry guidance: Stripe retries non-2xx on its own schedule.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "signature verification failed"})
		}

		// Dispatch never fails the webhook; recording errors are logged
		// and swallowed inside the service.
		ws.HandleEvent(c.Request().Context(), event)

		return c.JSON(http.StatusOK, echo.Map{"received": true})
	})
}

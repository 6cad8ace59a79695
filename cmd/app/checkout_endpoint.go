package main

import (
	"errors"
	"net/http"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createCheckoutRequest struct {
	Items      []services.CheckoutItemInput `json:"items"`
	SuccessURL string                       `json:"successUrl"`
	CancelURL  string                       `json:"cancelUrl"`
}

func registerCheckoutRoutes(g *echo.Group, cs *services.CheckoutService, limit echo.MiddlewareFunc) {
	p := g.Group("/checkout")

	// CREATE checkout session
	p.POST("", func(c echo.Context) error {
		req := new(createCheckoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		result, err := cs.CreateSession(
			c.Request().Context(),
			req.Items,
			req.SuccessURL,
			req.CancelURL,
		)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}, limit)

	// VERIFY paid session
	p.GET("/verify", func(c echo.Context) error {
		result, err := cs.VerifySession(c.Request().Context(), c.QueryParam("session_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	})
}

// writeServiceError maps the service error taxonomy to status codes.
// Anything outside the taxonomy gets a generic message so internals never
// leak to the client.
func writeServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Message})
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundErr.Error()})
	}

	var providerErr *services.ProviderError
	if errors.As(err, &providerErr) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": providerErr.Error()})
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
}

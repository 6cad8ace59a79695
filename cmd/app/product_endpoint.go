package main

import (
	"net/http"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProductRoutes(g *echo.Group, cs *services.CatalogService) {
	p := g.Group("/products")

	// LIST active, listed products
	p.GET("", func(c echo.Context) error {
		products, err := cs.GetActiveProducts(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"products": products})
	})

	p.GET("/categories", func(c echo.Context) error {
		categories, err := cs.GetProductCategories(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		if categories == nil {
			categories = []string{}
		}
		return c.JSON(http.StatusOK, echo.Map{"categories": categories})
	})

	// Unlisted products stay fetchable by exact slug.
	p.GET("/:slug", func(c echo.Context) error {
		product, err := cs.GetProduct(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		if product == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, product)
	})

	// ============================
	// ACCESS-CODE LOOKUP
	// (code == slug; unlisted + active only)
	// ============================
	g.GET("/access-code", func(c echo.Context) error {
		code := c.QueryParam("code")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing code"})
		}

		product, err := cs.GetByAccessCode(c.Request().Context(), code)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected error"})
		}
		if product == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid access code"})
		}
		return c.JSON(http.StatusOK, product)
	})
}

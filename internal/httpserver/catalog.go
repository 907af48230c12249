package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/util"
)

type CatalogHTTP struct {
	Svc        *service.CatalogService
	Categories *service.CategoryService
}

func (h *CatalogHTTP) ActiveProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.active")

	items, err := h.Svc.ActiveProducts(ctx)
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) AllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.all")

	items, err := h.Svc.AllProducts(ctx)
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "get_product_failed", "id is not a positive integer", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) ByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_category")

	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return badRequest(l, "get_products_error", "categoryId is not a positive integer", err)
	}

	items, err := h.Svc.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Search takes a zero-based page.
func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 0)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.SearchProducts(ctx, c.QueryParam("keyword"), page, size)
	if err != nil {
		return fail(l, "search_error", err)
	}

	l.Debug("search_success", "keyword", c.QueryParam("keyword"), "total", res.TotalElements)
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) Count(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.count")

	n, err := h.Svc.CountProducts(ctx)
	if err != nil {
		return fail(l, "count_products_error", err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *CatalogHTTP) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "Product API is working!")
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Categories.List(ctx)
	if err != nil {
		return fail(l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "get_category_error", "id is not a positive integer", err)
	}

	cat, err := h.Categories.Get(ctx, id)
	if err != nil {
		return fail(l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

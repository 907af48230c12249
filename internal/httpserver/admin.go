package httpserver

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
)

type AdminHTTP struct {
	Svc        *service.AdminService
	Categories *service.CategoryService
}

func (h *AdminHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dashboard")

	d, err := h.Svc.Dashboard(ctx)
	if err != nil {
		return fail(l, "dashboard_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "dashboard": d})
}

// productForm reads the multipart fields of a product upload.
func productForm(c echo.Context) (transport.CreateProductRequest, error) {
	var req transport.CreateProductRequest

	for _, f := range []string{"name", "price", "stockQuantity", "categoryId"} {
		if strings.TrimSpace(c.FormValue(f)) == "" {
			return req, fmt.Errorf("%s is required", f)
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return req, errors.New("price is not a number")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stockQuantity")))
	if err != nil {
		return req, errors.New("stockQuantity is not an integer")
	}
	categoryID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("categoryId")), 10, 64)
	if err != nil {
		return req, errors.New("categoryId is not an integer")
	}

	req.Name = c.FormValue("name")
	req.Description = c.FormValue("description")
	req.Price = price
	req.StockQuantity = stock
	req.CategoryID = uint(categoryID)
	req.Brand = c.FormValue("brand")
	return req, nil
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	req, err := productForm(c)
	if err != nil {
		return badRequest(l, "product_create_error", err.Error(), err)
	}

	var image *multipart.FileHeader
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		image = fh
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return badRequest(l, "product_create_error", "cannot read image", err)
	}

	prod, err := h.Svc.CreateProduct(ctx, req, image)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "product_update_error", "id is not a positive integer", err)
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_update_error", "invalid body", err)
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(l, "product_update_error", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, prod)
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "product_delete_error", "id is not a positive integer", err)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted"})
}

func (h *AdminHTTP) DeleteAllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_all_products")

	res, err := h.Svc.DeleteAllProducts(ctx)
	if err != nil {
		return fail(l, "delete_all_products_error", err)
	}

	msg := "All products deleted successfully"
	switch {
	case res.Count() == 0 && len(res.Failed) == 0:
		msg = "No products found to delete"
	case len(res.Failed) > 0:
		msg = fmt.Sprintf("Deleted %d products, %d failed", res.Count(), len(res.Failed))
	}

	l.Info("delete_all_products_done", "deleted", res.Count(), "failed", len(res.Failed))
	return c.JSON(http.StatusOK, echo.Map{
		"success":           true,
		"message":           msg,
		"deletedCount":      res.Count(),
		"failedCount":       len(res.Failed),
		"failed":            res.Failed,
		"categoryBreakdown": res.CategoryBreakdown,
	})
}

func (h *AdminHTTP) DeleteProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_products_by_category")

	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return badRequest(l, "delete_by_category_error", "categoryId is not a positive integer", err)
	}

	res, name, err := h.Svc.DeleteProductsByCategory(ctx, categoryID)
	if err != nil {
		return fail(l, "delete_by_category_error", err)
	}

	l.Info("delete_by_category_done", "category_id", categoryID, "deleted", res.Count(), "failed", len(res.Failed))
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      fmt.Sprintf("Deleted %d products from %s", res.Count(), name),
		"deletedCount": res.Count(),
		"failedCount":  len(res.Failed),
		"failed":       res.Failed,
		"categoryName": name,
	})
}

func (h *AdminHTTP) FixProductImages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.fix_product_images")

	res, err := h.Svc.FixProductImages(ctx)
	if err != nil {
		return fail(l, "fix_product_images_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    fmt.Sprintf("Fixed image URLs for %d products", res.Count()),
		"fixedCount": res.Count(),
		"fixed":      res.Succeeded,
		"failed":     res.Failed,
	})
}

func (h *AdminHTTP) ProductsCount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.products_count")

	pc, err := h.Svc.ProductsCount(ctx)
	if err != nil {
		return fail(l, "products_count_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"totalProducts":   pc.TotalProducts,
		"totalCategories": pc.TotalCategories,
		"categoryCount":   pc.CategoryCount,
		"byCategory":      pc.ByCategory,
	})
}

func (h *AdminHTTP) DebugProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.debug_products")

	items, err := h.Svc.DebugProducts(ctx)
	if err != nil {
		return fail(l, "debug_products_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"products":      items,
		"totalProducts": len(items),
	})
}

func (h *AdminHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "category_create_error", "invalid body", err)
	}

	cat, err := h.Categories.Create(ctx, req.Name, req.Description)
	if err != nil {
		return fail(l, "category_create_error", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

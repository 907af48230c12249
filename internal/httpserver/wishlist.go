package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "list_wishlist_error", "userId is not a positive integer", err)
	}

	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return fail(l, "list_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	var req transport.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_wishlist_error", "invalid body", err)
	}
	if req.UserID == 0 || req.ProductID == 0 {
		return badRequest(l, "add_wishlist_error", "userId and productId are required", nil)
	}

	item, err := h.Svc.Add(ctx, req.UserID, req.ProductID)
	if err != nil {
		return fail(l, "add_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "item": item})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "remove_wishlist_error", "userId is not a positive integer", err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return badRequest(l, "remove_wishlist_error", "productId is not a positive integer", err)
	}

	if err := h.Svc.Remove(ctx, userID, productID); err != nil {
		return fail(l, "remove_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product removed from wishlist"})
}

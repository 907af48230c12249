package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "get_cart_error", "userId is not a positive integer", err)
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_error", "invalid body", err)
	}
	if req.UserID == 0 || req.ProductID == 0 {
		return badRequest(l, "add_to_cart_error", "userId and productId are required", nil)
	}

	cart, err := h.Svc.AddToCart(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "user_id", req.UserID, "product_id", req.ProductID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product added to cart",
		"cart":    transport.NewCartView(cart),
	})
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	itemID, err := paramID(c, "itemId")
	if err != nil {
		return badRequest(l, "update_cart_item_error", "itemId is not a positive integer", err)
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_cart_item_error", "invalid body", err)
	}
	if req.Quantity == nil {
		return badRequest(l, "update_cart_item_error", "invalid quantity", nil)
	}

	item, err := h.Svc.UpdateItemQuantity(ctx, itemID, *req.Quantity)
	if err != nil {
		return fail(l, "update_cart_item_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Cart item updated",
		"cartItem": item,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "remove_from_cart_error", "userId is not a positive integer", err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return badRequest(l, "remove_from_cart_error", "productId is not a positive integer", err)
	}

	cart, err := h.Svc.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		return fail(l, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product removed from cart",
		"cart":    transport.NewCartView(cart),
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "clear_cart_error", "userId is not a positive integer", err)
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return fail(l, "clear_cart_error", err)
	}

	l.Info("cart successfully cleared", "user_id", userID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Cart cleared",
	})
}

func (h *CartHTTP) Probe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.probe")

	userID, err := paramID(c, "userId")
	if err != nil {
		return badRequest(l, "cart_probe_error", "userId is not a positive integer", err)
	}

	probe, err := h.Svc.Probe(ctx, userID)
	if err != nil {
		return fail(l, "cart_probe_error", err)
	}
	return c.JSON(http.StatusOK, probe)
}

// DebugAdd echoes the body back and reports which add-to-cart fields are
// missing. Nothing is written.
func (h *CartHTTP) DebugAdd(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.debug_add")

	req := map[string]any{}
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "debug_add_error", "invalid body", err)
	}
	l.Debug("debug_add_received", "body", req)

	resp := echo.Map{
		"success":      true,
		"message":      "Debug endpoint working",
		"receivedData": req,
	}
	for _, field := range []string{"userId", "productId", "quantity"} {
		if _, ok := req[field]; !ok {
			resp["success"] = false
			resp["error"] = "Missing " + field
		}
	}
	return c.JSON(http.StatusOK, resp)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	authmw "github.com/secondecom/eshop/internal/middleware/auth"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
	"github.com/secondecom/eshop/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func currentUser(c echo.Context) (uint, error) {
	id, ok := authmw.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "place_order_error", "invalid body", err)
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req.ShippingAddress)
	if err != nil {
		return fail(l, "place_order_error", err)
	}

	l.Info("place_order_success", "user_id", userID, "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 0)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.ListOrders(ctx, userID, page, size)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(l, "get_order_error", "id is not a positive integer", err)
	}

	order, err := h.Svc.GetOrder(ctx, userID, id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

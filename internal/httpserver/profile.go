package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return fail(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewUserView(user))
}

func (h *ProfileHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_profile_error", "invalid body", err)
	}

	user, err := h.Svc.Update(ctx, userID, req)
	if err != nil {
		return fail(l, "update_profile_error", err)
	}

	l.Info("update_profile_success", "user_id", userID)
	return c.JSON(http.StatusOK, transport.NewUserView(user))
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondecom/eshop/internal/logging"
	authmw "github.com/secondecom/eshop/internal/middleware/auth"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "signup_error", "invalid body", err)
	}

	user, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return fail(l, "signup_error", err)
	}

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    transport.NewUserView(user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	c.SetCookie(authmw.CreateCookie(authmw.AccessCookie, res.AccessToken, "/", res.AccessExp))

	l.Info("login_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Login successful",
		"token":     res.AccessToken,
		"tokenType": "Bearer",
		"expiresAt": res.AccessExp.UTC(),
		"user":      transport.NewUserView(res.User),
	})
}

// Logout only drops the cookie; access tokens are not tracked server side.
func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(authmw.DeleteCookie(authmw.AccessCookie, "/"))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logout successful",
	})
}

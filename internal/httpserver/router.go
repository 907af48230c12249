package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	authmw "github.com/secondecom/eshop/internal/middleware/auth"
	"github.com/secondecom/eshop/internal/middleware/csrf"
	loggingmw "github.com/secondecom/eshop/internal/middleware/logging"
)

type Deps struct {
	Health   *HealthHTTP
	Auth     *AuthHTTP
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Admin    *AdminHTTP
	Orders   *OrderHTTP
	Profile  *ProfileHTTP
	Wishlist *WishlistHTTP

	JWTSecret []byte
	ImageDir  string
}

// New builds the echo instance with the middleware every route shares.
func New(log *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("10M"))
	return e
}

type routeKey struct {
	method string
	path   string
}

// registry refuses to bind a (method, path) pair twice, so every route has
// exactly one handler.
type registry struct {
	e    *echo.Echo
	seen map[routeKey]struct{}
}

func newRegistry(e *echo.Echo) *registry {
	return &registry{e: e, seen: make(map[routeKey]struct{})}
}

func (r *registry) add(method, p string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
	k := routeKey{method: method, path: p}
	if _, dup := r.seen[k]; dup {
		panic(fmt.Sprintf("httpserver: route %s %s registered twice", method, p))
	}
	r.seen[k] = struct{}{}
	r.e.Add(method, p, h, mw...)
}

func (r *registry) get(p string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
	r.add(http.MethodGet, p, h, mw...)
}

func (r *registry) post(p string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
	r.add(http.MethodPost, p, h, mw...)
}

func (r *registry) put(p string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
	r.add(http.MethodPut, p, h, mw...)
}

func (r *registry) delete(p string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
	r.add(http.MethodDelete, p, h, mw...)
}

func Register(e *echo.Echo, d *Deps) {
	r := newRegistry(e)
	authMW := authmw.New(d.JWTSecret)

	r.get("/health/live", d.Health.Live)
	r.get("/health/ready", d.Health.Ready)
	r.get("/api/health", d.Health.Ready)

	r.post("/api/auth/signup", d.Auth.Signup)
	r.post("/api/auth/login", d.Auth.Login)
	r.post("/api/auth/logout", d.Auth.Logout)

	r.get("/api/products", d.Catalog.ActiveProducts)
	r.get("/api/products/all", d.Catalog.AllProducts)
	r.get("/api/products/search", d.Catalog.Search)
	r.get("/api/products/count", d.Catalog.Count)
	r.get("/api/products/test", d.Catalog.Ping)
	r.get("/api/products/category/:categoryId", d.Catalog.ByCategory)
	r.get("/api/products/:id", d.Catalog.GetProduct)
	r.get("/api/categories", d.Catalog.ListCategories)
	r.get("/api/categories/:id", d.Catalog.GetCategory)

	r.get("/api/cart/:userId", d.Cart.GetCart)
	r.post("/api/cart/add", d.Cart.AddToCart)
	r.put("/api/cart/update/:itemId", d.Cart.UpdateItem)
	r.delete("/api/cart/remove/:userId/:productId", d.Cart.RemoveFromCart)
	r.delete("/api/cart/clear/:userId", d.Cart.ClearCart)
	r.get("/api/cart/test/:userId", d.Cart.Probe)
	r.post("/api/cart/debug-add", d.Cart.DebugAdd)

	// Cookie-authenticated writes must echo the CSRF token.
	guard := csrf.Middleware(csrf.DefaultConfig())
	admin := []echo.MiddlewareFunc{authMW.RequireAdmin, guard}
	user := []echo.MiddlewareFunc{authMW.RequireAuth, guard}

	r.get("/api/admin/dashboard", d.Admin.Dashboard, admin...)
	r.post("/api/admin/products", d.Admin.CreateProduct, admin...)
	r.put("/api/admin/products/:id", d.Admin.UpdateProduct, admin...)
	r.delete("/api/admin/products/:id", d.Admin.DeleteProduct, admin...)
	r.delete("/api/admin/delete-all-products", d.Admin.DeleteAllProducts, admin...)
	r.delete("/api/admin/delete-products-by-category/:categoryId", d.Admin.DeleteProductsByCategory, admin...)
	r.post("/api/admin/fix-product-images", d.Admin.FixProductImages, admin...)
	r.get("/api/admin/products-count", d.Admin.ProductsCount, admin...)
	r.get("/api/admin/debug-products", d.Admin.DebugProducts, admin...)
	r.post("/api/admin/categories", d.Admin.CreateCategory, admin...)

	r.post("/api/orders", d.Orders.PlaceOrder, user...)
	r.get("/api/orders", d.Orders.ListOrders, user...)
	r.get("/api/orders/:id", d.Orders.GetOrder, user...)

	r.get("/api/users/profile", d.Profile.Get, user...)
	r.put("/api/users/profile", d.Profile.Update, user...)

	r.get("/api/wishlist/:userId", d.Wishlist.List)
	r.post("/api/wishlist/add", d.Wishlist.Add)
	r.delete("/api/wishlist/remove/:userId/:productId", d.Wishlist.Remove)

	if d.ImageDir != "" {
		r.get("/images/products/*", serveDir(d.ImageDir))
	}
}

// serveDir serves files from dir; the cleaned name cannot climb out of it.
func serveDir(dir string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := path.Clean("/" + c.Param("*"))
		return c.File(filepath.Join(dir, filepath.FromSlash(name)))
	}
}

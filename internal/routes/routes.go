package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/auth"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/docs"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Cart     *handlers.CartHandler
	Health   *handlers.HealthHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *auth.TokenService,
	users middleware.UserResolver,
	h Handlers,
) {
	api := app.Group(cfg.APIPrefix)
	// Host stays empty so the explorer targets whichever host served it.
	docs.SwaggerInfo.BasePath = cfg.APIPrefix

	// General API rate limit per IP
	if cfg.APIRateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.APIRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	requireAuth := middleware.RequireAuth(tokens, users)
	optionalAuth := middleware.OptionalAuth(tokens, users)
	admin := middleware.AdminRequired(cfg)

	api.Get("", h.Health.Info)
	api.Get("/health", h.Health.Check)
	api.Get("/docs/*", fiberSwagger.WrapHandler)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/logout", requireAuth, h.Auth.Logout)
	authGroup.Get("/verify", requireAuth, h.Auth.Verify)
	authGroup.Get("/profile", requireAuth, h.Auth.Profile)
	authGroup.Put("/profile", requireAuth, h.Auth.UpdateProfile)
	authGroup.Put("/change-password", requireAuth, h.Auth.ChangePassword)
	authGroup.Delete("/account", requireAuth, h.Auth.Deactivate)

	// Products: fixed paths are registered before /:id
	products := api.Group("/products")
	products.Get("/", h.Product.List)
	products.Get("/featured", h.Product.Featured)
	products.Get("/offers", h.Product.Offers)
	products.Get("/best-sellers", h.Product.BestSellers)
	products.Get("/search", h.Product.Search)
	products.Get("/brands", h.Product.Brands)
	products.Get("/:id", h.Product.Get)
	products.Post("/", optionalAuth, admin, h.Product.Create)
	products.Put("/:id", optionalAuth, admin, h.Product.Update)
	products.Delete("/:id", optionalAuth, admin, h.Product.Delete)

	// Categories
	categories := api.Group("/categories")
	categories.Get("/", h.Category.List)
	categories.Get("/:slug", h.Category.Get)
	categories.Get("/:slug/products", h.Category.Products)

	// Cart: a user when a valid token is present, otherwise the session
	cart := api.Group("/cart", optionalAuth, middleware.Session())
	cart.Get("/", h.Cart.Get)
	cart.Get("/count", h.Cart.Count)
	cart.Post("/", h.Cart.Add)
	cart.Put("/:id", h.Cart.Update)
	cart.Delete("/:id", h.Cart.Remove)
	cart.Delete("/", h.Cart.Clear)
}

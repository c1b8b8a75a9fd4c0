package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/blog-escritores/publishing-api/docs"
	"github.com/blog-escritores/publishing-api/internal/api/handler"
	"github.com/blog-escritores/publishing-api/internal/api/middleware"
	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// Deps bundles everything the router needs. Services arrive fully
// constructed; the router only builds handlers and wires routes.
type Deps struct {
	Auth         ports.AuthService
	Articles     ports.ArticleService
	Profiles     ports.ProfileService
	Provisioning ports.ProvisioningService
	Verifier     middleware.TokenVerifier
	Resolver     ports.RoleResolver
	ObjectStore  ports.ObjectStore
	Contact      handler.ContactEnqueuer

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("publishing"))

	// --- Route guards ---
	auth := middleware.Auth(d.Verifier)
	writer := middleware.RequireRole(d.Resolver, domain.RoleWriter)
	admin := middleware.RequireRole(d.Resolver, domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	articleHandler := handler.NewArticleHandler(d.Articles)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	provisioningHandler := handler.NewProvisioningHandler(d.Provisioning)
	contactHandler := handler.NewContactHandler(d.Contact)
	mediaHandler := handler.NewMediaHandler(d.ObjectStore)

	// --- Auth ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/reset", authHandler.RequestReset)
	e.POST("/v1/auth/reset/confirm", authHandler.ConfirmReset)
	e.GET("/v1/auth/me", authHandler.Me, auth)

	// --- Public read surface ---
	e.GET("/v1/articles", articleHandler.ListPublic)
	e.GET("/v1/articles/:id", articleHandler.Get)
	e.GET("/v1/writers", profileHandler.ListWriters)
	e.GET("/v1/writers/:id", profileHandler.GetWriter)
	e.POST("/v1/contact", contactHandler.Send)

	// --- Profiles ---
	e.GET("/v1/profiles/me", profileHandler.GetMe, auth)
	e.PUT("/v1/profiles/me", profileHandler.UpdateMe, auth)

	// --- Dashboard ---
	e.GET("/v1/dashboard/articles", articleHandler.ListOwn, auth)

	// --- Content mutation (role re-checked per article in the service) ---
	e.POST("/v1/articles", articleHandler.Create, auth, writer)
	e.PUT("/v1/articles/:id", articleHandler.Update, auth, writer)
	e.DELETE("/v1/articles/:id", articleHandler.Delete, auth, writer)
	e.POST("/v1/media", mediaHandler.Upload, auth, writer)

	// --- Admin surface ---
	adminGroup := e.Group("/v1/admin", auth, admin)
	adminGroup.GET("/users", profileHandler.ListUsers)
	adminGroup.PUT("/users/:id/role", profileHandler.SetRole)
	adminGroup.GET("/articles", articleHandler.ListAll)
	adminGroup.POST("/writers", provisioningHandler.CreateWriter)

	// --- Operational ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

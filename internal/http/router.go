package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/cache"
	"github.com/lojaweb/catalog/internal/config"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/http/handlers"
	"github.com/lojaweb/catalog/internal/http/middlewares"
	"github.com/lojaweb/catalog/internal/notifications"
	"github.com/lojaweb/catalog/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// UserStore covers registration, login lookup and role checks.
type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByLogin(ctx context.Context, login string) (user.User, error)
	GetRoles(ctx context.Context, userID int64) (user.Roles, error)
}

type Deps struct {
	Config   config.Config
	Products handlers.ProductStore
	Users    UserStore
	Tokens   *auth.Manager

	// optional
	Cache    cache.Cache
	Prom     *observability.Prom
	Notifier notifications.Notifier
	Ping     func(ctx context.Context) error
	Tracing  bool
}

func NewRouter(log *slog.Logger, deps Deps) *gin.Engine {
	cfg := deps.Config

	if !cfg.IsDevOrTest() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetHTMLTemplate(handlers.Templates())

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if deps.Tracing {
		r.Use(otelgin.Middleware(cfg.OTELServiceName))
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}

	health := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	home := handlers.NewHomeHandler("Catálogo de produtos")
	r.GET("/", home.Index)
	r.GET("/hello", handlers.Hello)
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	authMW := middlewares.NewAuthMiddleware(deps.Tokens, deps.Users, log, deps.Prom)

	// credentials
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewLogNotifier(log)
	}
	authHandler := handlers.NewAuthHandler(deps.Users, auth.NewIssuer(deps.Users, deps.Tokens), notifier, log, deps.Prom)
	limiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, time.Minute)

	seguranca := r.Group("/seguranca", limiter.Middleware(middlewares.KeyByIP), middlewares.RequireJSON())
	seguranca.POST("/registrar", authHandler.Register)
	seguranca.POST("/login", authHandler.Login)

	// catalog
	productsHandler := handlers.NewProductsHandlerWithCache(deps.Products, deps.Cache, deps.Prom)

	reads := r.Group("/produtos")
	if cfg.ProtectReads {
		reads.Use(authMW.RequireAuth())
	}
	reads.GET("", productsHandler.ListProducts)
	reads.GET("/:id", productsHandler.GetProductByID)

	writes := r.Group("/produtos", authMW.RequireAuth(), authMW.RequireRole(user.RoleAdmin))
	writes.POST("", middlewares.RequireJSON(), productsHandler.CreateProduct)
	writes.PUT("/:id", middlewares.RequireJSON(), productsHandler.UpdateProduct)
	writes.DELETE("/:id", productsHandler.DeleteProduct)

	return r
}

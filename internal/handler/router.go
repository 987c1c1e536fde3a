package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/api"
	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every API handler so the router takes a single dependency.
type Handlers struct {
	fx.In

	Auth     *api.AuthHandler
	Mechanic *api.MechanicHandler
	Booking  *api.BookingHandler
	Proposal *api.ProposalHandler
	Admin    *api.AdminHandler
	Webhook  *api.WebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.POST("/webhooks/payments", h.Webhook.Payments)
	engine.Static("/files", cfg.Storage.Dir)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	buyer := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleBuyer)}
	mechanic := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleMechanic)}
	participant := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleBuyer, user.RoleMechanic)}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/availability", Handler: h.Mechanic.CreateSlot, Mw: mechanic},
			{Method: http.MethodGet, Path: "/mechanics/:id/availability", Handler: h.Mechanic.ListAvailability},
			{Method: http.MethodPost, Path: "/mechanics/me/payout-account", Handler: h.Mechanic.StartPayoutOnboarding, Mw: mechanic},
			{Method: http.MethodGet, Path: "/mechanics/me/payout-dashboard", Handler: h.Mechanic.PayoutDashboard, Mw: mechanic},
			{Method: http.MethodPut, Path: "/mechanics/me/profile", Handler: h.Mechanic.UpsertProfile, Mw: mechanic},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: buyer},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept, Mw: mechanic},
				{Method: http.MethodPost, Path: "/:id/refuse", Handler: h.Booking.Refuse, Mw: mechanic},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: buyer},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: h.Booking.CheckIn, Mw: buyer},
				{Method: http.MethodPost, Path: "/:id/code", Handler: h.Booking.EnterCode, Mw: mechanic},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: h.Booking.CheckOut, Mw: mechanic},
				{Method: http.MethodPost, Path: "/:id/validate", Handler: h.Booking.Validate, Mw: buyer},
			})
		}

		proposals := apiGroup.Group("/proposals")
		proposals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(proposals, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Proposal.Propose, Mw: buyer},
				{Method: http.MethodGet, Path: "", Handler: h.Proposal.List, Mw: participant},
				{Method: http.MethodPost, Path: "/:id/counter", Handler: h.Proposal.Counter, Mw: participant},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Proposal.Accept, Mw: participant},
				{Method: http.MethodPost, Path: "/:id/refuse", Handler: h.Proposal.Refuse, Mw: participant},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Proposal.Cancel, Mw: participant},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/disputes", Handler: h.Admin.ListDisputes},
				{Method: http.MethodPost, Path: "/disputes/:id/resolve", Handler: h.Admin.ResolveDispute},
				{Method: http.MethodPost, Path: "/users/:id/verify-email", Handler: h.Admin.VerifyEmail},
				{Method: http.MethodPost, Path: "/mechanics/:id/verify-identity", Handler: h.Admin.VerifyIdentity},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

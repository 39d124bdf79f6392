package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/stayhub/hotel-saas/internal/api/handler"
	"github.com/stayhub/hotel-saas/internal/api/middleware"
	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/service"
	"github.com/stayhub/hotel-saas/internal/core/token"
	mongodb "github.com/stayhub/hotel-saas/internal/infrastructure/db/mongo"
)

// Dependencies carries the externally constructed pieces the router needs.
// Repositories and services are wired inside NewRouter.
type Dependencies struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Tokens *token.Issuer
	Mailer ports.Mailer

	Messenger  ports.Messenger
	Dispatcher ports.NotificationDispatcher
	Deduper    ports.EventDeduper

	ZaloAppID     string
	ZaloAppSecret string
	ZaloTenantID  string

	ResetTicketTTL time.Duration
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hotel_saas"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	tenantRepo := mongodb.NewTenantRepository(deps.DB)
	hotelRepo := mongodb.NewHotelRepository(deps.DB)
	roomTypeRepo := mongodb.NewRoomTypeRepository(deps.DB)
	roomRepo := mongodb.NewRoomRepository(deps.DB)
	bookingRepo := mongodb.NewBookingRepository(deps.DB)
	paymentRepo := mongodb.NewPaymentRepository(deps.DB)
	customerRepo := mongodb.NewCustomerRepository(deps.DB)
	followerRepo := mongodb.NewFollowerRepository(deps.DB)
	messageRepo := mongodb.NewMessageRepository(deps.DB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Tokens, deps.Mailer, deps.ResetTicketTTL, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Mailer, deps.Logger)
	tenantService := service.NewTenantService(tenantRepo, deps.Logger)
	hotelService := service.NewHotelService(hotelRepo, deps.Logger)
	roomService := service.NewRoomService(hotelRepo, roomTypeRepo, roomRepo, deps.Logger)
	bookingService := service.NewBookingService(bookingRepo, hotelRepo, customerRepo, deps.Dispatcher, deps.Logger)
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, deps.Logger)
	customerService := service.NewCustomerService(customerRepo, deps.Logger)
	zaloService := service.NewZaloService(followerRepo, messageRepo, customerRepo,
		deps.Messenger, deps.Deduper, deps.ZaloAppID, parseTenantID(deps.ZaloTenantID), deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	hotelHandler := handler.NewHotelHandler(hotelService)
	roomHandler := handler.NewRoomHandler(roomService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	customerHandler := handler.NewCustomerHandler(customerService)
	zaloHandler := handler.NewZaloHandler(zaloService, deps.ZaloAppSecret)

	gate := access.NewGate(deps.Tokens, userRepo)
	authRequired := middleware.Auth(gate)
	adminOnly := middleware.RequireRoles(domain.RoleSuperAdmin)
	managesTenant := middleware.RequireRoles(domain.RoleTenantAdmin, domain.RoleHotelAdmin)
	managesHotel := middleware.RequireRoles(domain.RoleTenantAdmin, domain.RoleHotelAdmin, domain.RoleStaff)
	loginLimit := middleware.RateLimit(rate.Limit(5), 10)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login, loginLimit)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword, loginLimit)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.POST("/change-password", authHandler.ChangePassword, authRequired)

	// --- Webhook (MAC-verified, no bearer token) ---
	v1.POST("/zalo/webhook", zaloHandler.Webhook)

	// --- Authenticated routes ---
	authed := v1.Group("", authRequired)

	tenants := authed.Group("/tenants")
	tenants.GET("", tenantHandler.List, adminOnly)
	tenants.POST("", tenantHandler.Create, adminOnly)
	tenants.GET("/:id", tenantHandler.Get)
	tenants.PUT("/:id", tenantHandler.Update, adminOnly)
	tenants.DELETE("/:id", tenantHandler.Delete, adminOnly)

	users := authed.Group("/users")
	users.GET("", userHandler.List, managesTenant)
	users.POST("", userHandler.Create, managesTenant)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, managesTenant)
	users.DELETE("/:id", userHandler.Delete, managesTenant)

	hotels := authed.Group("/hotels")
	hotels.GET("", hotelHandler.List)
	hotels.POST("", hotelHandler.Create, managesTenant)
	hotels.GET("/:id", hotelHandler.Get)
	hotels.PUT("/:id", hotelHandler.Update, managesTenant)
	hotels.DELETE("/:id", hotelHandler.Delete, managesTenant)
	hotels.GET("/:hotel_id/room-types", roomHandler.ListRoomTypes)

	roomTypes := authed.Group("/room-types", managesTenant)
	roomTypes.POST("", roomHandler.CreateRoomType)
	roomTypes.PUT("/:id", roomHandler.UpdateRoomType)
	roomTypes.DELETE("/:id", roomHandler.DeleteRoomType)

	rooms := authed.Group("/rooms")
	rooms.GET("", roomHandler.ListRooms)
	rooms.POST("", roomHandler.CreateRoom, managesTenant)
	rooms.PUT("/:id/status", roomHandler.SetRoomStatus, managesHotel)
	rooms.DELETE("/:id", roomHandler.DeleteRoom, managesTenant)

	bookings := authed.Group("/bookings")
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create, managesHotel)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update, managesHotel)
	bookings.PUT("/:id/status", bookingHandler.Transition, managesHotel)
	bookings.DELETE("/:id", bookingHandler.Delete, managesTenant)
	bookings.GET("/:booking_id/payments", paymentHandler.ListByBooking)

	payments := authed.Group("/payments", managesHotel)
	payments.POST("", paymentHandler.Create)
	payments.PUT("/:id/complete", paymentHandler.Complete)
	payments.PUT("/:id/refund", paymentHandler.Refund)

	customers := authed.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create, managesHotel)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update, managesHotel)
	customers.DELETE("/:id", customerHandler.Delete, managesTenant)

	zalo := authed.Group("/zalo")
	zalo.GET("/followers", zaloHandler.ListFollowers, managesHotel)
	zalo.POST("/messages", zaloHandler.SendMessage, managesHotel)

	return e
}

// parseTenantID accepts an empty value during local development; the zero
// UUID disables webhook-to-tenant binding until configured.
func parseTenantID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

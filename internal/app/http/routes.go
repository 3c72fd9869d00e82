package routes

import (
	"booking-app/config"
	adminapi "booking-app/internal/api/admin"
	authapi "booking-app/internal/api/auth"
	"booking-app/internal/api/bookingsapi"
	"booking-app/internal/api/checkout"
	connectapi "booking-app/internal/api/connect"
	"booking-app/internal/api/listingsapi"
	stripewebhooks "booking-app/internal/api/stripewebhook"
	"booking-app/internal/api/usersapi"
	"booking-app/internal/app/http/middleware"
	"booking-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Webhook  *stripewebhooks.Handler
	Connect  *connectapi.Handler
	Checkout *checkout.Handler
	Bookings *bookingsapi.Handler
	Listings *listingsapi.Handler
	Admin    *adminapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// The webhook body must reach the handler byte-for-byte for signature
	// verification, so it stays outside the sanitizer group.
	r.POST("/webhook", h.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/listings", h.Listings.ListListings)
	r.GET("/listings/:id", h.Listings.GetListing)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	if config.GOOGLE_CLIENT_ID != "" {
		public.GET("/auth/google", authapi.GoogleStart)
		public.GET("/auth/google/callback", authapi.GoogleCallback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/create-checkout-session", h.Checkout.CreateCheckoutSession)
	auth.GET("/bookings", h.Bookings.ListMyBookings)
	auth.GET("/bookings/:id", h.Bookings.GetBooking)

	// Artists
	artist := auth.Group("/")
	artist.Use(middleware.RequireRole(users.RoleArtist))
	artist.POST("/listings", h.Listings.CreateListing)
	artist.POST("/connect/onboarding-link", h.Connect.CreateOnboardingLink)
	artist.GET("/connect/status", h.Connect.Status)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/reconciliation-gaps", h.Admin.ListReconciliationGaps)
}

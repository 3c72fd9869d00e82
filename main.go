package main

import (
	"time"

	"booking-app/config"
	"booking-app/database"
	adminapi "booking-app/internal/api/admin"
	"booking-app/internal/api/bookingsapi"
	"booking-app/internal/api/checkout"
	connectapi "booking-app/internal/api/connect"
	"booking-app/internal/api/listingsapi"
	stripewebhooks "booking-app/internal/api/stripewebhook"
	routes "booking-app/internal/app/http"
	"booking-app/internal/escrow"
	"booking-app/internal/infra/stripepay"
	"booking-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	accountStore := store.NewAccountStore(database.DB)
	listingStore := store.NewListingStore(database.DB)
	bookingStore := store.NewBookingStore(database.DB)
	gapStore := store.NewGapStore(database.DB)

	provider := stripepay.New(config.STRIPE_SECRET_KEY, config.APP_URL, config.PLATFORM_CURRENCY)

	connectSvc := escrow.NewConnectService(accountStore, provider)
	checkoutSvc := escrow.NewCheckoutService(listingStore, bookingStore, provider)
	reconciler := escrow.NewReconciler(accountStore, bookingStore, gapStore)

	h := routes.Handlers{
		Webhook:  stripewebhooks.NewHandler(reconciler, config.STRIPE_WEBHOOK_SECRET),
		Connect:  connectapi.NewHandler(connectSvc),
		Checkout: checkout.NewHandler(checkoutSvc),
		Bookings: bookingsapi.NewHandler(bookingStore),
		Listings: listingsapi.NewHandler(listingStore, accountStore),
		Admin:    adminapi.NewHandler(gapStore),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, h)

	r.Run(":" + config.PORT)
}

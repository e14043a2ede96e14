package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"salonbook/internal/booking"
	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/events"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/auth"
	bookinghttp "salonbook/internal/modules/booking"
	"salonbook/internal/modules/catalog"
	schedulehttp "salonbook/internal/modules/schedule"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	salonRepo := repository.NewSalonRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	exclusionRepo := repository.NewExclusionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := events.NewHub()
	wsHandler := events.NewWSHandler(hub, j)

	bookingService := booking.NewService(
		salonRepo,
		staffRepo,
		serviceRepo,
		appointmentRepo,
		exclusionRepo,
		hub,
	)
	bookingHandler := bookinghttp.NewHandler(bookingService)
	scheduleHandler := schedulehttp.NewHandler(bookingService)

	authService := auth.NewService(staffRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(salonRepo, staffRepo, serviceRepo, exclusionRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/ws/events", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public: browsing, availability, staff login
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterRoutes(v1)

		// booking is open to walk-in clients; a staff token changes the
		// initial status policy
		clientGroup := v1.Group("/")
		clientGroup.Use(middleware.OptionalJWT(j))
		{
			bookingHandler.RegisterClientRoutes(clientGroup)
		}

		// staff: appointment management
		staffGroup := v1.Group("/")
		staffGroup.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(staffGroup)
			bookingHandler.RegisterStaffRoutes(staffGroup)
		}

		// owner: catalog administration
		ownerGroup := v1.Group("/")
		ownerGroup.Use(middleware.JWTAuth(j), middleware.OwnerOnly())
		{
			catalogHandler.RegisterOwnerRoutes(ownerGroup)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

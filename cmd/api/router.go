package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bioscrap/internal/config"
	"bioscrap/internal/domain/booking"
	"bioscrap/internal/domain/catalog"
	"bioscrap/internal/domain/contact"
	"bioscrap/internal/geocoding"
	"bioscrap/internal/metrics"
	"bioscrap/internal/middleware"
	jwtsvc "bioscrap/internal/pkg/jwt"
	"bioscrap/internal/pkg/resilience"
	"bioscrap/internal/relay"
)

type app struct {
	router  *gin.Engine
	booking *booking.Service
	limiter *middleware.RateLimiter
}

func newApp(cfg *config.Config, db *gorm.DB, lg *zap.Logger) *app {
	m := metrics.New()
	tokens := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)

	mailRelay := relay.NewFormSubmitClient(cfg.FormSubmitURL, relay.Options{
		Timeout: cfg.HTTPClientTimeout,
		Logger:  lg.Named("mail-relay"),
		Breaker: resilience.NewCircuitBreaker(relay.BreakerConfig("mail-relay"), lg),
	})
	formsAPI := relay.NewWeb3FormsClient(cfg.Web3FormsURL, cfg.Web3FormsAccessKey, relay.Options{
		Timeout: cfg.HTTPClientTimeout,
		Logger:  lg.Named("forms-api"),
		Breaker: resilience.NewCircuitBreaker(relay.BreakerConfig("forms-api"), lg),
	})
	geocoder := geocoding.NewClient(cfg.NominatimURL, geocoding.Options{
		Country: cfg.NominatimCountry,
		Timeout: cfg.HTTPClientTimeout,
		Logger:  lg.Named("geocoding"),
		Breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("nominatim"), lg),
	})

	bookingService := booking.NewService(booking.ServiceConfig{
		Repo:      booking.NewSessionRepository(db),
		Transport: mailRelay,
		Geocoder:  geocoder,
		Validator: booking.NewStepValidator(cfg.Location, time.Now),
		Metrics:   m,
		Logger:    lg.Named("booking"),
		TTL:       cfg.SessionTTL,
	})
	contactService := contact.NewService(formsAPI, m, lg.Named("contact"))

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, lg)

	r := gin.New()
	r.Use(middleware.ErrorLogger(lg))
	r.Use(middleware.RequestLogger(lg))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(m.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := r.Group("/api/v1")
	{
		catalog.NewHandler().RegisterRoutes(v1)
		booking.NewHandler(bookingService, tokens).RegisterRoutes(v1, middleware.SessionAuth(tokens), limiter.Middleware())
		contact.RegisterPublicRoutes(v1, contact.NewHandler(contactService), limiter.Middleware())
	}

	return &app{router: r, booking: bookingService, limiter: limiter}
}

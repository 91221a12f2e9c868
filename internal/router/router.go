// Package router wires handlers, middleware and routes onto the Echo
// instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ThomasMorgana/Webservice/internal/config"
	"github.com/ThomasMorgana/Webservice/internal/handler"
	"github.com/ThomasMorgana/Webservice/internal/middleware"
	"github.com/ThomasMorgana/Webservice/internal/model"
)

// Handlers groups everything RegisterRoutes needs so main stays a
// plain construction site.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Cars          *handler.CarHandler
	Garages       *handler.GarageHandler
	Subscriptions *handler.SubscriptionHandler
}

// RegisterRoutes registers every route of the service.  Reads are
// public and response-cached; mutations require a bearer access token.
// The Stripe webhook is public but verified by provider signature
// inside the handler.
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.Validator = handler.NewValidator()

	// Admission policy first: every route shares the token bucket.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Response cache applied per-route on the public read endpoints so
	// operational endpoints stay uncached.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.AccessSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	a := e.Group("/auth")
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)
	a.POST("/refresh-token", h.Auth.Refresh)
	a.POST("/reset-token", h.Auth.RequestReset)
	a.POST("/reset-password", h.Auth.ResetPassword)

	e.GET("/users", h.Users.List, cache)
	e.GET("/users/activate", h.Users.Activate)
	e.GET("/users/:id", h.Users.Get, cache)
	e.POST("/users", h.Users.Create, auth)
	e.POST("/users/admin", h.Users.CreateAdmin, auth, admin)
	e.PATCH("/users/:id", h.Users.Update, auth)
	e.DELETE("/users/:id", h.Users.Delete, auth)

	e.GET("/cars", h.Cars.List, cache)
	e.GET("/cars/:id", h.Cars.Get, cache)
	e.POST("/cars", h.Cars.Create, auth)
	e.PATCH("/cars/:id", h.Cars.Update, auth)
	e.DELETE("/cars/:id", h.Cars.Delete, auth)

	e.GET("/garages", h.Garages.List, cache)
	e.GET("/garages/:id", h.Garages.Get, cache)
	e.POST("/garages", h.Garages.Create, auth)
	e.PATCH("/garages/:id", h.Garages.Update, auth)
	e.DELETE("/garages/:id", h.Garages.Delete, auth)

	e.GET("/subscriptions", h.Subscriptions.List, cache)
	e.GET("/subscriptions/:id", h.Subscriptions.Get, cache)
	e.POST("/subscriptions", h.Subscriptions.Create, auth)
	e.DELETE("/subscriptions/:id", h.Subscriptions.Delete, auth)
	e.POST("/subscriptions/stripe-hook", h.Subscriptions.StripeHook)
}

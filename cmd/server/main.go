package main // Entry point package

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ThomasMorgana/Webservice/internal/config"
	"github.com/ThomasMorgana/Webservice/internal/database"
	"github.com/ThomasMorgana/Webservice/internal/handler"
	"github.com/ThomasMorgana/Webservice/internal/mail"
	"github.com/ThomasMorgana/Webservice/internal/payment"
	"github.com/ThomasMorgana/Webservice/internal/queue"
	"github.com/ThomasMorgana/Webservice/internal/repository"
	"github.com/ThomasMorgana/Webservice/internal/router"
	queue_publisher "github.com/ThomasMorgana/Webservice/internal/service"
)

func main() {
	cfg := config.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "webservice").Logger()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	resets := repository.NewResetTokenRepo(db)
	cars := repository.NewCarRepo(db)
	garages := repository.NewGarageRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	outbox := queue_publisher.NewPublisher(log)
	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeHookSecret)

	// Outbox consumer delivers the queued mail in the background.
	go queue.StartMailConsumer(mail.NewMailer(cfg), log)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, resets, outbox, log),
		Users:         handler.NewUserHandler(cfg, users),
		Cars:          handler.NewCarHandler(cars),
		Garages:       handler.NewGarageHandler(garages),
		Subscriptions: handler.NewSubscriptionHandler(cfg, subs, provider, log),
	}, rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

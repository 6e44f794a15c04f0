package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/gesielr/guiasMEIlast/docs"
	"github.com/gesielr/guiasMEIlast/internal/application/auth"
	"github.com/gesielr/guiasMEIlast/internal/application/emission"
	"github.com/gesielr/guiasMEIlast/internal/domain/inss"
	infraalert "github.com/gesielr/guiasMEIlast/internal/infrastructure/alert"
	infrapdf "github.com/gesielr/guiasMEIlast/internal/infrastructure/pdf"
	"github.com/gesielr/guiasMEIlast/internal/infrastructure/postgres"
	infrasal "github.com/gesielr/guiasMEIlast/internal/infrastructure/sal"
	httpRouter "github.com/gesielr/guiasMEIlast/internal/interfaces/http"
	"github.com/gesielr/guiasMEIlast/pkg/config"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	emissionRepo := postgres.NewEmissionRepository(pool)
	divergenceRepo := postgres.NewDivergenceRepository(pool)

	// Canais de alerta: só entram os que têm credencial configurada.
	var channels []emission.AlertChannel
	if cfg.Alert.SMTPHost != "" && cfg.Alert.EmailTo != "" {
		channels = append(channels, infraalert.NewEmailChannel(
			cfg.Alert.SMTPHost, cfg.Alert.SMTPPort,
			cfg.Alert.SMTPUser, cfg.Alert.SMTPPassword,
			cfg.Alert.EmailFrom, cfg.Alert.EmailTo,
		))
	}
	if cfg.Alert.SlackWebhookURL != "" {
		channels = append(channels, infraalert.NewSlackChannel(cfg.Alert.SlackWebhookURL))
	}
	if cfg.Alert.WebhookURL != "" {
		channels = append(channels, infraalert.NewWebhookChannel(cfg.Alert.WebhookURL))
	}
	if len(channels) == 0 {
		log.Warn().Msg("nenhum canal de alerta configurado; divergências serão apenas registradas")
	}
	dispatcher := emission.NewAlertDispatcher(channels, 0, log)

	salClient := infrasal.NewClient(cfg.SAL.AppEnv, cfg.SAL.BaseURL, log)

	reconciler := emission.NewReconciler(
		salClient, emissionRepo, divergenceRepo, dispatcher,
		cfg.GPS.ReconcileQueueSize, log,
	)
	reconciler.Start(cfg.GPS.ReconcileWorkers)

	strategy := emission.NewStrategy(cfg.GPS.ValidationRate, emission.CryptoSampler{}, log)
	renderer := infrapdf.NewGuideRenderer()
	calculator := inss.NewCalculator2025()

	emissionUC := emission.NewUseCase(
		profileRepo, emissionRepo, divergenceRepo,
		strategy, salClient, reconciler, renderer, calculator, log,
	)
	authUC := auth.NewUseCase(profileRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GuiasMEI GPS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmissionUC: emissionUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	// Drena a fila de conferência antes de sair.
	reconciler.Stop()

	log.Info().Msg("aplicação encerrada")
}

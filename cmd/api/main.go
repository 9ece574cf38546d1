package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pagpro/fianca-api/internal/application/analysis"
	"github.com/pagpro/fianca-api/internal/application/analytics"
	"github.com/pagpro/fianca-api/internal/application/applications"
	"github.com/pagpro/fianca-api/internal/application/auth"
	"github.com/pagpro/fianca-api/internal/application/commissions"
	"github.com/pagpro/fianca-api/internal/application/properties"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
	infraai "github.com/pagpro/fianca-api/internal/infrastructure/ai"
	"github.com/pagpro/fianca-api/internal/infrastructure/postgres"
	httpRouter "github.com/pagpro/fianca-api/internal/interfaces/http"
	"github.com/pagpro/fianca-api/pkg/config"
	"github.com/pagpro/fianca-api/pkg/logger"
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
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	analysisRepo := postgres.NewCreditAnalysisRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	scheduleRepo := postgres.NewPaymentScheduleRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	rateRepo := postgres.NewCommissionRateRepository(pool)
	payoutRepo := postgres.NewPayoutRuleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de scoring: fórmula determinística sempre; oráculo LLM quando há
	// API key, com fallback transparente.
	scoringParams := scoring.Params{
		CoverageMultiplier: cfg.Scoring.CoverageMultiplier,
		MonthlyPremiumRate: cfg.Scoring.MonthlyPremiumRate,
		AdhesionFeeRate:    cfg.Scoring.AdhesionFeeRate,
	}
	ruleBased := analysis.NewRuleBased(scoringParams)

	var preferred analysis.Strategy
	oracleSvc := infraai.NewOpenAIService(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.TimeoutSeconds, scoringParams)
	if oracleSvc.IsAvailable() {
		preferred = analysis.NewOracle(oracleSvc)
		log.Info().Str("model", cfg.AI.Model).Msg("oráculo de análise habilitado")
	} else {
		log.Info().Msg("oráculo de análise desabilitado; usando só a fórmula determinística")
	}
	engine := analysis.NewEngine(preferred, ruleBased, log)

	distributor := commissions.NewDistributor(userRepo, payoutRepo, commissionRepo, log)
	if err := distributor.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("semear regras de repasse")
	}

	applicationUC := applications.NewUseCase(
		applicationRepo, propertyRepo, userRepo, analysisRepo, policyRepo,
		scheduleRepo, documentRepo, engine, ruleBased, txRunner, distributor, log,
	)
	commissionUC := commissions.NewUseCase(commissionRepo, rateRepo, payoutRepo, distributor)
	propertyUC := properties.NewUseCase(propertyRepo)
	analyticsUC := analytics.NewUseCase(analyticsRepo)
	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		PropertyUC:    propertyUC,
		ApplicationUC: applicationUC,
		CommissionUC:  commissionUC,
		AnalyticsUC:   analyticsUC,
		JWTSecret:     cfg.JWT.Secret,
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

	log.Info().Msg("aplicação encerrada")
}

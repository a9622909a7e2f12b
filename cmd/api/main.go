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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/customs-receipts/internal/application/auth"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/backend"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/declxml"
	infrapdf "github.com/jhoicas/customs-receipts/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/customs-receipts/internal/interfaces/http"
	"github.com/jhoicas/customs-receipts/pkg/config"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	// montos como números JSON, igual que los envía el backend
	decimal.MarshalJSONWithoutQuotes = true

	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	policy := usecase.UploadPolicy{MaxBytes: cfg.Upload.MaxBytes, AllowedTypes: cfg.Upload.AllowedTypes}

	authUC := auth.NewAuthUseCase(gateway, nil, cfg.JWT.Secret)
	clerkUC := usecase.NewClerkUseCase(gateway, policy, log)
	accountantUC := usecase.NewAccountantUseCase(gateway, policy, log)
	ownerUC := usecase.NewOwnerUseCase(gateway, log)
	documentUC := usecase.NewDocumentUseCase(gateway, log)

	// PDF: hoja resumen de la declaración con huella del XML canónico
	renderUC := usecase.NewRenderUseCase(infrapdf.NewMarotoDeclarationPDF(), declxml.NewCodec())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// margen para los campos del multipart además del archivo
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Customs Receipts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ClerkUC:      clerkUC,
		AccountantUC: accountantUC,
		OwnerUC:      ownerUC,
		DocumentUC:   documentUC,
		RenderUC:     renderUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

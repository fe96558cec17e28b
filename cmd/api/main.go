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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/auth"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/application/sales"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/stockpro-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/stockpro-api/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/stockpro-api/internal/infrastructure/redis"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/store"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/stockpro-api/internal/interfaces/http"
	"github.com/jhoicas/stockpro-api/pkg/config"
	"github.com/jhoicas/stockpro-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.Close()

	// Caché de informes: opcional, sin Redis se recalcula siempre.
	var cache ports.ReportCache = ports.NopReportCache{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, infraredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché deshabilitada")
		} else {
			defer client.Close()
			cache = infraredis.NewReportCache(client, cfg.Redis.TTL)
		}
	}

	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.Kafka.Enabled() {
		p, err := infrakafka.Dial(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		if err != nil {
			log.Warn().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("kafka no disponible, eventos deshabilitados")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, nil)
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear cuenta admin")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("cuenta admin creada")
		}
	}

	repos := appanalytics.Repos{Sales: st.Sales, Products: st.Products, Customers: st.Customers}
	deps := httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(st.Users, nil),
		ProductUC:  usecase.NewProductUseCase(st.Products, st.Users, cache, nil, log.Component("products")),
		CustomerUC: usecase.NewCustomerUseCase(st.Customers, st.Users, cache, nil, log.Component("customers")),
		SaleUC: sales.NewSaleUseCase(sales.Deps{
			TxRunner:     st.Tx,
			SaleRepo:     st.Sales,
			ProductRepo:  st.Products,
			CustomerRepo: st.Customers,
			Cache:        cache,
			Publisher:    publisher,
			Log:          log.Component("sales"),
		}),
		ReportUC: appanalytics.NewReportUseCase(appanalytics.ReportDeps{
			Repos:    repos,
			UserRepo: st.Users,
			Cache:    cache,
			PDF:      infrapdf.NewMarotoReportGenerator(),
			XML:      xmlexport.NewReportExporter(),
			Log:      log.Component("reports"),
		}),
		DashboardUC: appanalytics.NewDashboardUseCase(repos, nil),
		JWTSecret:   cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": st.Driver})
	})

	httpRouter.Router(app, deps)

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

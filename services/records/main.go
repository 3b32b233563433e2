package main

import (
	"context"
	"embed"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/middleware"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/records/internal/mongo"
	"github.com/appetiteclub/frontdesk/services/records/internal/records"
)

//go:embed seed.yaml
var seedFS embed.FS

const (
	appNamespace = "RECORDS"
	appName      = "records"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup with error: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	lifecycle := []interface{}{}

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		log.Fatalf("%s(%s) cannot start records repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		err := errors.New("cannot get records database")
		log.Fatalf("%s(%s) cannot initialize database: %v", appName, appVersion, err)
	}
	lifecycle = append(lifecycle, apt.LifecycleHooks{OnStop: baseRepo.Stop})

	tableRepo := mongo.NewTableRepo(db)
	menuRepo := mongo.NewMenuRepo(db)
	orderRepo := mongo.NewOrderRepo(db)
	invoiceRepo := mongo.NewInvoiceRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")
	restaurantID := config.GetStringOrDef("restaurant.id", "main")

	var publisher events.Publisher
	if config.GetStringOrDef("nats.stream.enabled", "false") == "true" {
		maxAge, err := time.ParseDuration(config.GetStringOrDef("nats.stream.max_age", "24h"))
		if err != nil {
			logger.Info("invalid nats.stream.max_age, using 24h", "error", err)
			maxAge = 24 * time.Hour
		}
		stream, err := pkg.NewNATSStream(ctx, pkg.NATSStreamConfig{
			URL:        natsURL,
			StreamName: "RESTAURANT_" + restaurantID,
			Subjects:   []string{event.RestaurantSubjects(restaurantID)},
			MaxAge:     maxAge,
		}, logger)
		if err != nil {
			log.Fatalf("%s(%s) cannot create NATS stream: %v", appName, appVersion, err)
		}
		lifecycle = append(lifecycle, apt.LifecycleHooks{
			OnStop: func(context.Context) error {
				return stream.Close()
			},
		})
		publisher = stream
	} else {
		natsPublisher, err := pkg.NewNATSPublisher(natsURL)
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
		}
		lifecycle = append(lifecycle, apt.LifecycleHooks{
			OnStop: func(context.Context) error {
				return natsPublisher.Close()
			},
		})
		publisher = natsPublisher
	}

	repos := records.Repos{
		TableRepo:   tableRepo,
		MenuRepo:    menuRepo,
		OrderRepo:   orderRepo,
		InvoiceRepo: invoiceRepo,
	}

	hd := records.HandlerDeps{
		Repos:     repos,
		Publisher: publisher,
	}

	handler := records.NewHandler(hd, config, logger)

	if config.GetStringOrDef("seeding.enabled", "true") == "true" {
		lifecycle = append(lifecycle, apt.LifecycleHooks{
			OnStart: records.SeedingFunc(seedCtx, baseRepo, tableRepo, menuRepo, seedFS, logger),
			OnStop:  records.StopFunc(cancelSeeds),
		})
	}

	health := pkg.NewHealthService(appName)
	lifecycle = append(lifecycle, health)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true,
	})
	stack = append(stack, middleware.InternalOnly())

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithGRPCServerModules("grpc.port", health),
		apt.WithLifecycle(lifecycle...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

package main

import (
	"context"
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
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/billing"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/frontdesk"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/kitchen"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/mongo"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/remote"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/session"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/submission"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/tableregistry"
)

const (
	appNamespace = "FRONTDESK"
	appName      = "frontdesk"
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

	lifecycle := []interface{}{}

	recordsURL := config.GetStringOrDef("services.records.url", "http://localhost:8085")
	recordsClient := apt.NewServiceClient(recordsURL)

	tablesDA := remote.NewTableDataAccess(recordsClient)
	menuDA := remote.NewMenuDataAccess(recordsClient)
	ordersDA := remote.NewOrderDataAccess(recordsClient)
	invoicesDA := remote.NewInvoiceDataAccess(recordsClient)

	sessionTTL := durationOrDef(config, logger, "session.ttl", 12*time.Hour)
	pollInterval := durationOrDef(config, logger, "kitchen.poll_interval", kitchen.DefaultPollInterval)
	resetDelay := durationOrDef(config, logger, "billing.reset_delay", billing.DefaultResetDelay)

	var store session.StateStore
	switch config.GetStringOrDef("session.store", "memory") {
	case "mongo":
		mongoStore := mongo.NewSessionStore(config, sessionTTL, logger)
		lifecycle = append(lifecycle, mongoStore)
		store = mongoStore
	default:
		memoryStore := session.NewMemoryStore(sessionTTL)
		lifecycle = append(lifecycle, memoryStore)
		store = memoryStore
	}

	notices := frontdesk.NewNoticeBoard(frontdesk.DefaultNoticeCapacity)

	registry := tableregistry.NewRegistry(tablesDA, logger)
	sessions := session.NewManager(store, registry, sessionTTL, logger)
	gateway := submission.NewGateway(ordersDA, sessions, notices, logger)
	engine := kitchen.NewEngine(ordersDA, notices, pollInterval, logger)
	desk := billing.NewDesk(ordersDA, invoicesDA, registry, notices, resetDelay, logger)
	lifecycle = append(lifecycle, registry, engine, desk)

	restaurantID := config.GetStringOrDef("restaurant.id", "main")
	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	tableEvents, orderEvents, replay, closers := subscribers(ctx, config, logger, natsURL, restaurantID)
	if replay != nil {
		engine.UseReplay(replay)
	}
	for _, closer := range closers {
		closeFn := closer
		lifecycle = append(lifecycle, apt.LifecycleHooks{
			OnStop: func(context.Context) error {
				return closeFn()
			},
		})
	}

	lifecycle = append(lifecycle,
		tableregistry.NewSubscriber(tableEvents, registry, restaurantID, logger),
		kitchen.NewSubscriber(orderEvents, engine, restaurantID, logger),
	)

	hd := frontdesk.HandlerDeps{
		Services: frontdesk.Services{
			Sessions: sessions,
			Tables:   registry,
			Gateway:  gateway,
			Kitchen:  engine,
			Billing:  desk,
		},
		Menu:    menuDA,
		Notices: notices,
	}

	handler := frontdesk.NewHandler(hd, config, logger)

	health := pkg.NewHealthService(appName)
	lifecycle = append(lifecycle, health)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

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
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

// subscribers connects the event feeds for tables and orders. With the
// stream enabled each feed gets its own durable consumer so a restart
// replays what was missed, and the orders consumer also warms the kitchen
// board at start. Without NATS the components fall back to polling.
func subscribers(ctx context.Context, config *apt.Config, logger apt.Logger, natsURL, restaurantID string) (events.Subscriber, events.Subscriber, kitchen.Replayer, []func() error) {
	if config.GetStringOrDef("nats.stream.enabled", "false") == "true" {
		maxAge := durationOrDef(config, logger, "nats.stream.max_age", 24*time.Hour)

		feed := func(consumer, filter string) *pkg.NATSStream {
			stream, err := pkg.NewNATSStream(ctx, pkg.NATSStreamConfig{
				URL:          natsURL,
				StreamName:   "RESTAURANT_" + restaurantID,
				Subjects:     []string{event.RestaurantSubjects(restaurantID)},
				ConsumerName: consumer,
				Filter:       filter,
				MaxAge:       maxAge,
			}, logger)
			if err != nil {
				log.Fatalf("%s(%s) cannot create NATS stream consumer %s: %v", appName, appVersion, consumer, err)
			}
			return stream
		}

		tables := feed("frontdesk-tables", pkg.TablesTopic(restaurantID))
		orders := feed("frontdesk-kitchen", event.OrdersTopic(restaurantID))
		return tables, orders, orders, []func() error{tables.Close, orders.Close}
	}

	subscriber, err := pkg.NewNATSSubscriber(natsURL, logger)
	if err != nil {
		logger.Error("NATS unavailable, relying on polling", "error", err)
		return nil, nil, nil, nil
	}
	return subscriber, subscriber, nil, []func() error{subscriber.Close}
}

func durationOrDef(config *apt.Config, logger apt.Logger, key string, def time.Duration) time.Duration {
	raw, ok := config.GetString(key)
	if !ok || raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Info("invalid duration, using default", "key", key, "value", raw, "default", def.String())
		return def
	}
	return d
}

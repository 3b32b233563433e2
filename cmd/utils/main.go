package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/commands"
)

const (
	appName    = "frontdesk-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	config, err := apt.LoadConfig("UTILS", os.Args[2:])
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logger := apt.NewLogger(config.GetStringOrDef("log.level", "info"))

	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "seed-demo":
		if err := commands.SeedDemo(ctx, config, logger); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		logger.Info("Demo seeding completed successfully")

	case "clear-demo":
		if err := commands.ClearDemo(ctx, config, logger); err != nil {
			log.Fatalf("Clear demo data failed: %v", err)
		}
		logger.Info("Demo data cleared successfully")

	case "reconcile-tables":
		if err := commands.ReconcileTables(ctx, config, logger); err != nil {
			log.Fatalf("Table reconciliation failed: %v", err)
		}
		logger.Info("Table reconciliation completed")

	case "reset-db":
		if err := commands.ResetDB(ctx, config, logger); err != nil {
			log.Fatalf("Database reset failed: %v", err)
		}
		logger.Info("Database reset completed successfully")

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Frontdesk utility commands

Usage:
  %s <command> [options]

Commands:
  seed-demo         Create demo orders in every status (needs the records bootstrap seed)
  clear-demo        Remove demo orders and free the tables they occupied
  reconcile-tables  Release occupied tables that hold no active order
  reset-db          Drop the records and session databases (USE WITH CAUTION)
  version           Print version information
  help              Show this help message

Environment Variables:
  UTILS_MONGO_URL         MongoDB connection URL (default: mongodb://localhost:27017)
  UTILS_RECORDS_DB        Records database (default: frontdesk_records)
  UTILS_SESSIONS_DB       Session database (default: frontdesk_sessions)
  UTILS_DRY_RUN           reconcile-tables only reports when true
  UTILS_RECONCILE_GRACE   Skip tables occupied more recently than this (default: 15m)
  UTILS_LOG_LEVEL         Log level: debug, info, warn, error (default: info)

Examples:
  %s seed-demo
  UTILS_DRY_RUN=true %s reconcile-tables
  UTILS_MONGO_URL=mongodb://localhost:27017 %s reset-db

`, appName, appName, appName, appName, appName)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expenis/internal/bot"
	"expenis/internal/bot/screens"
	"expenis/internal/config"
	"expenis/internal/database"
	"expenis/internal/logger"
	"expenis/internal/services"
)

func main() {
	logger.Init(os.Getenv("EXPENIS_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.BotToken == "" {
		return fmt.Errorf("bot token is not configured")
	}

	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()

	b, err := bot.New(appConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	deps := screens.Deps{
		Accounts:     services.NewAccountService(db),
		Categories:   services.NewCategoryService(db),
		Transactions: services.NewTransactionService(db),
		Sessions:     services.NewSessionService(db),
		Notify:       b.Notify,
	}

	runtime := b.Runtime()
	runtime.Bind("start", screens.NewDailyGroup(deps))
	runtime.Bind("accounts", screens.NewAccountsGroup(deps))
	runtime.Bind("categories", screens.NewCategoriesGroup(deps))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)
	return nil
}

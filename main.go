package main

import (
	"StaffGate/internal/config"
	repository "StaffGate/internal/database"
	"StaffGate/internal/http-server/api"
	"StaffGate/internal/lib/logger"
	"StaffGate/internal/lib/sl"
	"StaffGate/internal/service/approval"
	"StaffGate/internal/service/catalog"
	"StaffGate/internal/service/mailer"
	"StaffGate/internal/service/notify"
	"StaffGate/internal/service/registration"
	"StaffGate/internal/service/telegram"
	"context"
	"flag"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting staffgate", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	if !conf.Telegram.Enabled {
		lg.Error("telegram is disabled, nothing to serve")
		return
	}

	botApi, err := tgbotapi.NewBot(conf.Telegram.ApiKey, nil)
	if err != nil {
		lg.Error("creating bot api instance", sl.Err(err))
		return
	}
	gateway := telegram.NewGateway(botApi, conf.Telegram.ApiKey, lg)
	lg.With(
		sl.Secret("api_key", conf.Telegram.ApiKey),
	).Info("telegram gateway initialized")

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		return
	}
	if db == nil {
		lg.Error("mongo is disabled, nothing to store to")
		return
	}
	if err := db.EnsureIndexes(context.Background()); err != nil {
		lg.Error("ensure indexes", sl.Err(err))
		return
	}
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	mailService := mailer.NewMailerService(conf, lg)
	dispatcher := notify.NewDispatcher(gateway, lg)

	registrationService := registration.NewService(db, gateway, mailService, dispatcher, lg)
	approvalService := approval.NewService(db, gateway, lg)
	catalogService := catalog.NewService(db, lg)

	// *** blocking start with http server ***
	err = api.New(conf, lg, api.Handlers{
		Registration: registrationService,
		Approval:     approvalService,
		Catalog:      catalogService,
		Files:        db,
	})
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

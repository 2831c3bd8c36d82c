package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"PromoPilot/bot"
	"PromoPilot/bot/chat"
	"PromoPilot/bot/workflows/content"
	"PromoPilot/bot/workflows/mainmenu"
	"PromoPilot/bot/workflows/push"
	"PromoPilot/internal/adapter"
	"PromoPilot/internal/assets"
	"PromoPilot/internal/catalog"
	"PromoPilot/internal/config"
	repository "PromoPilot/internal/database"
	"PromoPilot/internal/feed"
	"PromoPilot/internal/http-server/api"
	"PromoPilot/internal/lib/logger"
	"PromoPilot/internal/lib/sl"
	"PromoPilot/internal/pushgen"
	"PromoPilot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting promopilot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	var storage chat.Storage = chat.NewMemoryStorage()
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
	}
	if db != nil {
		storage = chat.NewMongoStorage(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo state storage initialized")
	}

	sheetsCatalog := catalog.NewSheetsCatalog(conf, lg)
	lg.With(
		slog.String("sheet_id", conf.Google.SheetID),
	).Info("catalog client initialized")

	resolver := assets.NewDriveResolver(conf, lg)

	generator := pushgen.NewGenerator(conf, lg)
	lg.With(
		sl.Secret("deepseek_key", conf.DeepSeek.ApiKey),
		slog.String("model", conf.DeepSeek.Model),
	).Info("push generator initialized")

	engine := chat.NewEngine(storage, lg)
	engine.RegisterWorkflow(mainmenu.NewWorkflow())
	engine.RegisterWorkflow(content.NewWorkflow(sheetsCatalog, resolver, lg))
	engine.RegisterWorkflow(push.NewWorkflow(generator, lg))
	engine.SetEntryWorkflow(mainmenu.WorkflowID)

	tgBot, err := bot.NewTgBot(conf.Telegram.ApiKey, engine, lg)
	if err != nil {
		lg.Error("failed to initialize telegram bot", sl.Err(err))
		return
	}
	lg.With(
		slog.String("bot_name", conf.Telegram.BotName),
	).Info("telegram bot initialized")

	hub := ws.NewHub(lg)
	go hub.Run()

	var repo feed.MessageRepo
	if db != nil {
		repo = db
	}
	tgBot.SetListener(feed.NewRecorder(repo, hub, lg))

	// Serverless mode: one update per invocation through the entry adapter.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(adapter.New(tgBot, lg).Handle)
		return
	}

	if conf.Telegram.Polling {
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot error", sl.Err(err))
			}
		}()
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, tgBot, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"arvr-research-backend/internal/documents"
	"arvr-research-backend/internal/llm"
	"arvr-research-backend/internal/llm/gemini"
	"arvr-research-backend/internal/sheets"
	googlesheets "arvr-research-backend/internal/sheets/google"
	"arvr-research-backend/internal/shared/config"
	"arvr-research-backend/internal/shared/server"
	"arvr-research-backend/internal/shared/storage/db"
	"arvr-research-backend/internal/shared/storage/object"
	localstore "arvr-research-backend/internal/shared/storage/object/local"
	"arvr-research-backend/internal/summaries"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo    documents.DocumentsRepo
	SummariesRepo    summaries.Repo
	LLM              llm.Client
	Sheet            sheets.Appender
	DocumentsService *documents.Service
	SummariesService *summaries.Service
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
}

// Build prepares shared dependencies and wires the router. Credential
// problems surface here, before the server starts accepting requests.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		SummariesHandler: app.SummariesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(ctx context.Context, app *App) error {
	var docRepo documents.DocumentsRepo
	var sumRepo summaries.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		sumRepo = &summaries.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		sumRepo = summaries.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(ctx, app.Config.GeminiAPIKey, app.Config.GeminiModel)
		if err != nil {
			return err
		}
		llmClient = client
	}

	appender := sheets.Appender(sheets.PlaceholderAppender{})
	creds, err := app.Config.ServiceAccount()
	if err == nil {
		client, err := googlesheets.NewClient(ctx, creds, app.Config.SpreadsheetName)
		if err != nil {
			return err
		}
		appender = client
	} else if !isDevLike(app.Config.Env) {
		return err
	}

	docSvc := &documents.Service{
		Store: app.Store,
		Repo:  docRepo,
	}
	sumSvc := &summaries.Service{
		Repo:             sumRepo,
		DocRepo:          docRepo,
		Store:            app.Store,
		LLM:              llmClient,
		Sheet:            appender,
		DocumentBaseLink: app.Config.DocumentBaseLink,
	}

	app.DocumentsRepo = docRepo
	app.SummariesRepo = sumRepo
	app.LLM = llmClient
	app.Sheet = appender
	app.DocumentsService = docSvc
	app.SummariesService = sumSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.SummariesHandler = summaries.NewHandler(sumSvc)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

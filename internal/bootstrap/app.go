package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/coach"
	"careercraft-backend/internal/interviews"
	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/llm/gemini"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/server"
	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/storage/db"
	"careercraft-backend/internal/shared/storage/object"
	localstore "careercraft-backend/internal/shared/storage/object/local"
	s3store "careercraft-backend/internal/shared/storage/object/s3"
	"careercraft-backend/internal/sweeper"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	ResumeRepo       resumes.Repo
	InterviewRepo    interviews.Repo
	ResumeService    *resumes.Service
	CoachService     *coach.Service
	InterviewService *interviews.Service
	Sweeper          *sweeper.Sweeper
	ResumeHandler    *resumes.Handler
	CoachHandler     *coach.Handler
	InterviewHandler *interviews.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		ResumeHandler:    app.ResumeHandler,
		CoachHandler:     app.CoachHandler,
		InterviewHandler: app.InterviewHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
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
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; ai features disabled")
		return llm.Disabled{}
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("bootstrap: gemini client init failed; ai features disabled: %v", err)
		return llm.Disabled{}
	}
	return client
}

func buildServices(ctx context.Context, app *App) error {
	var resumeRepo resumes.Repo
	var interviewRepo interviews.Repo

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		interviewRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		interviewRepo = interviews.NewMemoryRepo()
	}

	coachSvc := &coach.Service{LLM: buildLLM(ctx, app.Config)}
	resumeSvc := resumes.NewService(resumeRepo, app.Store, app.Config.ResumeTTL)
	interviewSvc := interviews.NewService(interviewRepo, resumeSvc, coachSvc, app.Config.InterviewTTL)

	app.ResumeRepo = resumeRepo
	app.InterviewRepo = interviewRepo
	app.ResumeService = resumeSvc
	app.CoachService = coachSvc
	app.InterviewService = interviewSvc
	app.Sweeper = sweeper.New(resumeSvc, interviewSvc, app.Config.SweepInterval)
	app.ResumeHandler = resumes.NewHandler(resumeSvc, coachSvc.Enabled)
	app.CoachHandler = coach.NewHandler(coachSvc, resumeSvc)
	app.InterviewHandler = interviews.NewHandler(interviewSvc)

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

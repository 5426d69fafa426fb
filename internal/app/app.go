package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/config"
	"github.com/shelfmark/shelfmark/internal/db"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	ProfileService      *service.ProfileService
	BookService         *service.BookService
	SessionService      *service.SessionService
	GoalService         *service.GoalService
	ProgressService     *service.ProgressService
	GamificationService *service.GamificationService
	AchievementService  *service.AchievementService
	QuoteService        *service.QuoteService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	profileRepository := repository.NewProfileRepository(database)
	bookRepository := repository.NewBookRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)
	quoteRepository := repository.NewQuoteRepository(database)

	// Services
	clock := service.SystemClock
	profileService := service.NewProfileService(profileRepository, clock)
	progressService := service.NewProgressService(sessionRepository, bookRepository, clock)
	gamificationService := service.NewGamificationService(sessionRepository, bookRepository, clock)
	achievementService := service.NewAchievementService(achievementRepository, sessionRepository, bookRepository, clock)
	goalService := service.NewGoalService(goalRepository, progressService, profileService, clock)
	bookService := service.NewBookService(bookRepository, profileService, goalService, achievementService, clock)
	sessionService := service.NewSessionService(
		sessionRepository,
		bookRepository,
		profileService,
		gamificationService,
		goalService,
		achievementService,
		clock,
	)
	quoteService := service.NewQuoteService(quoteRepository, bookRepository, clock)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		ProfileService:      profileService,
		BookService:         bookService,
		SessionService:      sessionService,
		GoalService:         goalService,
		ProgressService:     progressService,
		GamificationService: gamificationService,
		AchievementService:  achievementService,
		QuoteService:        quoteService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

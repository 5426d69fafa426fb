package routes

import (
	"net/http"

	"github.com/shelfmark/shelfmark/internal/app"
	"github.com/shelfmark/shelfmark/internal/handler"
	"github.com/shelfmark/shelfmark/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	book := handler.NewBookHandler(app.BookService)
	session := handler.NewSessionHandler(app.SessionService)
	goal := handler.NewGoalHandler(app.GoalService, app.ProfileService)
	profile := handler.NewProfileHandler(app.ProfileService, app.GamificationService)
	achievement := handler.NewAchievementHandler(app.AchievementService, app.ProfileService)
	quote := handler.NewQuoteHandler(app.QuoteService)

	mux := http.NewServeMux()

	// Writes are rate limited per IP
	limited := middleware.RateLimitWrites(app.Cfg.WriteRateLimit, app.Cfg.WriteRateWindow)

	// Books
	mux.HandleFunc("GET /api/books", book.List)
	mux.HandleFunc("GET /api/books/{id}", book.Get)
	mux.HandleFunc("POST /api/books", limited(book.Create))
	mux.HandleFunc("PUT /api/books/{id}", limited(book.Update))
	mux.HandleFunc("POST /api/books/{id}/finish", limited(book.Finish))
	mux.HandleFunc("DELETE /api/books/{id}", limited(book.Delete))

	// Reading sessions (the activity ledger)
	mux.HandleFunc("GET /api/books/{id}/sessions", session.ListByBook)
	mux.HandleFunc("POST /api/sessions", limited(session.Log))
	mux.HandleFunc("DELETE /api/sessions/{id}", limited(session.Delete))

	// Quotes
	mux.HandleFunc("GET /api/quotes", quote.List)
	mux.HandleFunc("GET /api/books/{id}/quotes", quote.ListByBook)
	mux.HandleFunc("POST /api/quotes", limited(quote.Create))
	mux.HandleFunc("DELETE /api/quotes/{id}", limited(quote.Delete))

	// Goals
	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("GET /api/goals/types", goal.AvailableTypes)
	mux.HandleFunc("GET /api/goals/{id}", goal.Get)
	mux.HandleFunc("POST /api/goals", limited(goal.Create))
	mux.HandleFunc("PUT /api/goals/{id}", limited(goal.Update))
	mux.HandleFunc("PATCH /api/goals/{id}/progress", limited(goal.SetProgress))
	mux.HandleFunc("PATCH /api/goals/{id}/completed", limited(goal.SetCompleted))
	mux.HandleFunc("DELETE /api/goals/{id}", limited(goal.Delete))

	// Profile & gamification
	mux.HandleFunc("GET /api/profile", profile.Get)
	mux.HandleFunc("GET /api/profile/stats", profile.Stats)
	mux.HandleFunc("PATCH /api/profile/streaks-paused", limited(profile.SetStreaksPaused))

	// Achievements
	mux.HandleFunc("GET /api/achievements", achievement.List)
	mux.HandleFunc("POST /api/achievements/seen", limited(achievement.MarkSeen))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}

package service

import (
	"sort"
	"time"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// fixedClock pins "now" so tests can cross day boundaries deterministically.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeSessionRepo struct {
	sessions []*model.ReadingSession
}

func (r *fakeSessionRepo) Create(s *model.ReadingSession) error {
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *fakeSessionRepo) ByID(id string) (*model.ReadingSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) ByBook(bookID string) ([]*model.ReadingSession, error) {
	var out []*model.ReadingSession
	for _, s := range r.sessions {
		if s.BookID == bookID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) SessionsInRange(start, end time.Time) ([]*model.ReadingSession, error) {
	var out []*model.ReadingSession
	for _, s := range r.sessions {
		if !s.Date.Before(start) && s.Date.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) AllSessionDates() ([]time.Time, error) {
	seen := map[time.Time]bool{}
	for _, s := range r.sessions {
		seen[dayStart(s.Date)] = true
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (r *fakeSessionRepo) TotalPagesRead() (int, error) {
	total := 0
	for _, s := range r.sessions {
		total += s.PagesRead
	}
	return total, nil
}

func (r *fakeSessionRepo) TotalMinutesRead() (int, error) {
	total := 0
	for _, s := range r.sessions {
		total += s.MinutesRead
	}
	return total, nil
}

func (r *fakeSessionRepo) MaxPagesInDay() (int, error) {
	byDay := map[time.Time]int{}
	for _, s := range r.sessions {
		byDay[dayStart(s.Date)] += s.PagesRead
	}
	max := 0
	for _, total := range byDay {
		if total > max {
			max = total
		}
	}
	return max, nil
}

func (r *fakeSessionRepo) MaxSessionMinutes() (int, error) {
	max := 0
	for _, s := range r.sessions {
		if s.MinutesRead > max {
			max = s.MinutesRead
		}
	}
	return max, nil
}

func (r *fakeSessionRepo) Delete(id string) error {
	for i, s := range r.sessions {
		if s.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrSessionNotFound
}

type fakeBookRepo struct {
	books []*model.Book
}

func (r *fakeBookRepo) Create(b *model.Book) error {
	r.books = append(r.books, b)
	return nil
}

func (r *fakeBookRepo) ByID(id string) (*model.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, repository.ErrBookNotFound
}

func (r *fakeBookRepo) Books(status model.BookStatus, sortBy string) ([]*model.Book, error) {
	if status == "" {
		return r.books, nil
	}
	var out []*model.Book
	for _, b := range r.books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Update(b *model.Book) error {
	for i, existing := range r.books {
		if existing.ID == b.ID {
			r.books[i] = b
			return nil
		}
	}
	return repository.ErrBookNotFound
}

func (r *fakeBookRepo) Delete(id string) error {
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return repository.ErrBookNotFound
}

func (r *fakeBookRepo) CountFinished() (int, error) {
	count := 0
	for _, b := range r.books {
		if b.Status == model.BookStatusFinished {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookRepo) CompletionEventsInRange(start, end time.Time) ([]*model.CompletionEvent, error) {
	var events []*model.CompletionEvent
	for _, b := range r.books {
		if b.Status != model.BookStatusFinished || b.CompletedAt == nil {
			continue
		}
		if !b.CompletedAt.Before(start) && b.CompletedAt.Before(end) {
			events = append(events, &model.CompletionEvent{BookID: b.ID, CompletedAt: *b.CompletedAt})
		}
	}
	return events, nil
}

type fakeProfileRepo struct {
	profile *model.UserProfile
}

func (r *fakeProfileRepo) Get() (*model.UserProfile, error) {
	if r.profile == nil {
		return nil, repository.ErrProfileNotFound
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) Create(p *model.UserProfile) error {
	r.profile = p
	return nil
}

func (r *fakeProfileRepo) Update(p *model.UserProfile) error {
	if r.profile == nil {
		return repository.ErrProfileNotFound
	}
	r.profile = p
	return nil
}

type fakeGoalRepo struct {
	goals []*model.ReadingGoal
}

func (r *fakeGoalRepo) Create(g *model.ReadingGoal) error {
	r.goals = append(r.goals, g)
	return nil
}

func (r *fakeGoalRepo) ByID(id string) (*model.ReadingGoal, error) {
	for _, g := range r.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, repository.ErrGoalNotFound
}

func (r *fakeGoalRepo) Goals(profileID string) ([]*model.ReadingGoal, error) {
	var out []*model.ReadingGoal
	for _, g := range r.goals {
		if g.ProfileID == profileID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(g *model.ReadingGoal) error {
	for i, existing := range r.goals {
		if existing.ID == g.ID {
			r.goals[i] = g
			return nil
		}
	}
	return repository.ErrGoalNotFound
}

func (r *fakeGoalRepo) Delete(id string) error {
	for i, g := range r.goals {
		if g.ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return repository.ErrGoalNotFound
}

type fakeAchievementRepo struct {
	achievements []*model.Achievement
}

func (r *fakeAchievementRepo) Create(a *model.Achievement) error {
	r.achievements = append(r.achievements, a)
	return nil
}

func (r *fakeAchievementRepo) ByProfile(profileID string) ([]*model.Achievement, error) {
	var out []*model.Achievement
	for _, a := range r.achievements {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) UnlockedTypes(profileID string) (map[model.AchievementType]bool, error) {
	unlocked := map[model.AchievementType]bool{}
	for _, a := range r.achievements {
		if a.ProfileID == profileID {
			unlocked[a.Type] = true
		}
	}
	return unlocked, nil
}

func (r *fakeAchievementRepo) MarkSeen(profileID string) error {
	for _, a := range r.achievements {
		if a.ProfileID == profileID {
			a.IsNew = false
		}
	}
	return nil
}

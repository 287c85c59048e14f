package messcut

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"messcut/internal/dates"
	"messcut/internal/logs"
)

// Stats summarises one month.
type Stats struct {
	Count         int
	LongestStreak int
}

// Service is the operation surface used by the TUI and the CLI.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) MarkMessCut(date time.Time, note string) {
	logs.Logger.Printf("Service: mark %s", dates.DayKey(date))
	s.store.Mark(date, note)
}

func (s *Service) UnmarkMessCut(date time.Time) {
	logs.Logger.Printf("Service: unmark %s", dates.DayKey(date))
	s.store.Unmark(date)
}

// GetMessCutData returns the mark for date or nil.
func (s *Service) GetMessCutData(date time.Time) *Mark {
	m, ok := s.store.Get(date)
	if !ok {
		return nil
	}
	return &m
}

func (s *Service) MonthlyStats(year int, month time.Month) Stats {
	return Stats{
		Count:         s.store.MonthlyCount(year, month),
		LongestStreak: s.LongestStreak(year, month),
	}
}

// LongestStreak returns the longest run of consecutive marked days within
// the month.
func (s *Service) LongestStreak(year int, month time.Month) int {
	longest, run := 0, 0
	for day := 1; day <= dates.DaysInMonth(year, month); day++ {
		if s.store.IsMarked(time.Date(year, month, day, 0, 0, 0, 0, time.Local)) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

type entrySource []Entry

func (e entrySource) String(i int) string { return e[i].String() }
func (e entrySource) Len() int            { return len(e) }

// Search fuzzy-matches query against "<day key> <note>" of every mark, best
// match first. An empty query returns all marks, newest first.
func (s *Service) Search(query string) []Entry {
	all := s.store.All()
	query = strings.TrimSpace(query)
	if query == "" {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
		return all
	}

	matches := fuzzy.FindFrom(query, entrySource(all))
	results := make([]Entry, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}
	return results
}

package messcut

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"messcut/internal/dates"
	"messcut/internal/logs"
	"messcut/internal/storage"
)

// DefaultStorageKey is the storage item holding the whole document.
const DefaultStorageKey = "messcut_data"

// Mark records that a day was cut. Timestamp is Unix milliseconds of the
// last save.
type Mark struct {
	Note      string `json:"note" yaml:"note"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Time returns the save time of the mark.
func (m Mark) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// MonthBucket maps day keys (YYYY-MM-DD) to marks.
type MonthBucket map[string]Mark

// Document maps month keys (YYYY-MM) to their buckets. It is the persisted
// shape of the store.
type Document map[string]MonthBucket

// Entry is a mark together with the day it belongs to.
type Entry struct {
	Date   time.Time
	DayKey string
	Mark
}

// Store owns the marks and persists the full document on every mutation.
type Store struct {
	mu      sync.RWMutex
	storage storage.Storage
	key     string
	data    Document
	now     func() time.Time
	lastErr error
}

// NewStore loads the document under key from s. A missing or unreadable
// document yields an empty store; the cause is logged, not returned.
func NewStore(s storage.Storage, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	st := &Store{
		storage: s,
		key:     key,
		now:     time.Now,
	}
	st.data = st.load()
	return st
}

func (s *Store) load() Document {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		logs.Logger.Printf("Error loading data: %v", err)
		return Document{}
	}
	if !ok || raw == "" {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logs.Logger.Printf("Error loading data: %v", err)
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc
}

// save rewrites the whole document. Caller must hold the write lock.
func (s *Store) save() {
	data, err := json.Marshal(s.data)
	if err == nil {
		err = s.storage.SetItem(s.key, string(data))
	}
	if err != nil {
		logs.Logger.Printf("Error saving data: %v", err)
		s.lastErr = err
		return
	}
	s.lastErr = nil
}

// Mark inserts or replaces the mark for date and persists the document.
func (s *Store) Mark(date time.Time, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	monthKey := dates.MonthKey(date)
	dayKey := dates.DayKey(date)

	if s.data[monthKey] == nil {
		s.data[monthKey] = MonthBucket{}
	}
	s.data[monthKey][dayKey] = Mark{Note: note, Timestamp: s.now().UnixMilli()}
	s.save()
}

// Unmark removes the mark for date. Nothing is written if date is unmarked.
func (s *Store) Unmark(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.data[dates.MonthKey(date)]
	if !ok {
		return
	}
	dayKey := dates.DayKey(date)
	if _, ok := bucket[dayKey]; !ok {
		return
	}
	delete(bucket, dayKey)
	s.save()
}

// Get returns the mark for date, if any.
func (s *Store) Get(date time.Time) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[dates.MonthKey(date)][dates.DayKey(date)]
	return m, ok
}

// IsMarked reports whether date has a mark.
func (s *Store) IsMarked(date time.Time) bool {
	_, ok := s.Get(date)
	return ok
}

// MonthlyCount returns the number of marked days in the month.
func (s *Store) MonthlyCount(year int, month time.Month) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[dates.MonthKeyFor(year, month)])
}

// Marks returns the month's entries ordered by day.
func (s *Store) Marks(year int, month time.Month) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entriesOf(s.data[dates.MonthKeyFor(year, month)])
}

// All returns every entry ordered by day.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []Entry
	for _, bucket := range s.data {
		entries = append(entries, entriesOf(bucket)...)
	}
	sortEntries(entries)
	return entries
}

// Snapshot returns a deep copy of the document.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := make(Document, len(s.data))
	for monthKey, bucket := range s.data {
		copied := make(MonthBucket, len(bucket))
		for dayKey, m := range bucket {
			copied[dayKey] = m
		}
		doc[monthKey] = copied
	}
	return doc
}

// Import merges doc into the store and persists once. Day keys that do not
// parse or do not belong to their month key are skipped.
func (s *Store) Import(doc Document) (imported, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for monthKey, bucket := range doc {
		for dayKey, m := range bucket {
			day, err := time.ParseInLocation(dates.DayLayout, dayKey, time.Local)
			if err != nil || dates.MonthKey(day) != monthKey {
				logs.Logger.Printf("Skipping imported mark %s under %s", dayKey, monthKey)
				skipped++
				continue
			}
			if s.data[monthKey] == nil {
				s.data[monthKey] = MonthBucket{}
			}
			s.data[monthKey][dayKey] = m
			imported++
		}
	}
	if imported > 0 {
		s.save()
	}
	return imported, skipped
}

// Err returns the error of the most recent failed write, cleared by the next
// successful one.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Key returns the storage key the document lives under.
func (s *Store) Key() string {
	return s.key
}

func entriesOf(bucket MonthBucket) []Entry {
	entries := make([]Entry, 0, len(bucket))
	for dayKey, m := range bucket {
		day, err := time.ParseInLocation(dates.DayLayout, dayKey, time.Local)
		if err != nil {
			logs.Logger.Printf("Ignoring malformed day key %q", dayKey)
			continue
		}
		entries = append(entries, Entry{Date: day, DayKey: dayKey, Mark: m})
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DayKey < entries[j].DayKey
	})
}

func (e Entry) String() string {
	if e.Note == "" {
		return e.DayKey
	}
	return fmt.Sprintf("%s %s", e.DayKey, e.Note)
}

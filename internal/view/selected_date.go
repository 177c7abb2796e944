package view

import (
	"sync"
	"time"
)

// SelectedDate is the shared calendar selection. Every screen that cares
// about "which day am I looking at" reads the same instance.
type SelectedDate struct {
	mu  sync.Mutex
	t   time.Time
	now func() time.Time
}

// NewSelectedDate creates a SelectedDate that falls back to the current time.
func NewSelectedDate() *SelectedDate {
	return &SelectedDate{now: time.Now}
}

// Get returns the selected date. It never fails: when nothing has been
// selected yet, or the stored value is the zero time, it returns now.
func (s *SelectedDate) Get() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.t.IsZero() {
		return s.now()
	}
	return s.t
}

// Set replaces the selected date. No validation: the zero time simply makes
// Get fall back to now again.
func (s *SelectedDate) Set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
}

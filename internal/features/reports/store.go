package reports

import (
	"strings"
	"sync"
	"time"

	errs "github.com/tribunal-app/tribunal/pkg/errors"
)

// Store owns every Report for its in-process lifetime. It holds two
// ordered collections, pending and actioned, and a report lives in
// exactly one of them at any time. Nothing is persisted: a restart
// discards all state by design.
type Store struct {
	mu       sync.Mutex
	pending  []*Report
	actioned []*Report
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add creates a pending report and appends it to the pending collection.
// Insertion order is the iteration order readers observe. Returns a copy
// of the stored report.
func (s *Store) Add(target, reporter int64, context, reason, sourceAddress string) Report {
	report := &Report{
		ID:            newReportID(),
		Target:        target,
		Reporter:      reporter,
		Context:       strings.TrimSpace(context),
		Reason:        strings.TrimSpace(reason),
		Timestamp:     time.Now(),
		SourceAddress: sourceAddress,
		Status:        StatusPending,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, report)
	return *report
}

// Action moves the report with the given id out of pending into actioned
// with the chosen terminal status. Lookup is against pending only, so an
// already-actioned id is indistinguishable from an unknown one: both are
// ErrNotFound, which is what makes double-processing impossible. The
// lookup and move are one critical section; concurrent calls on the same
// id yield exactly one success.
func (s *Store) Action(id string, decision Status) (Report, error) {
	if decision != StatusApproved && decision != StatusDenied {
		return Report{}, errs.ErrInvalidAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, report := range s.pending {
		if report.ID != id {
			continue
		}

		now := time.Now()
		report.Status = decision
		report.ActionedAt = &now

		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.actioned = append(s.actioned, report)
		return *report, nil
	}

	return Report{}, errs.ErrNotFound
}

// Pending returns a snapshot of the pending collection in insertion order.
func (s *Store) Pending() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.pending)
}

// Actioned returns a snapshot of the actioned collection in action order.
func (s *Store) Actioned() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.actioned)
}

// PendingCount returns the number of reports awaiting review.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// snapshot copies report values so readers never race a later Action call.
// Always non-nil so the collections serialize as [] rather than null.
func snapshot(reports []*Report) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, *r)
	}
	return out
}

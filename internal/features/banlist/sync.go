package banlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tribunal-app/tribunal/internal/features/reports"
	"github.com/tribunal-app/tribunal/internal/pkg/docstore"
	"github.com/tribunal-app/tribunal/internal/pkg/logger"
)

const syncTimeout = 30 * time.Second

// Synchronizer appends a BanEntry to the external versioned ban-list
// document whenever a report is approved. It is a best-effort secondary
// projection: a single read-modify-write attempt per approval, with every
// failure logged and none surfaced to the operation that approved the
// report. A precondition rejection is not retried.
type Synchronizer struct {
	store   docstore.Store
	path    string
	enabled bool
	log     *logger.Logger
	wg      sync.WaitGroup
}

// New builds a synchronizer. Pass a nil store when the external backend
// is unconfigured; Sync then degrades to a logged no-op.
func New(store docstore.Store, path string, enabled bool, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		store:   store,
		path:    path,
		enabled: enabled,
		log:     log,
	}
}

// Sync schedules a background ban-list update for an approved report and
// returns immediately. Implements reports.BanSyncer.
func (s *Synchronizer) Sync(report reports.Report) {
	if !s.enabled {
		s.log.Info("ban-list sync disabled, skipping report %s", report.ID)
		return
	}
	if s.store == nil {
		s.log.Warn("ban-list sync enabled but no store credential configured, skipping report %s", report.ID)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if err := s.syncOnce(ctx, report); err != nil {
			// The approval already happened and stays; this projection
			// simply missed an update.
			s.log.Error("ban-list sync failed for report %s: %v", report.ID, err)
			return
		}
		s.log.Info("ban-list updated: user %d banned (report %s)", report.Target, report.ID)
	}()
}

// Wait blocks until scheduled syncs finish. Shutdown and tests only.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

func (s *Synchronizer) syncOnce(ctx context.Context, report reports.Report) error {
	list := BanList{}
	version := ""

	doc, err := s.store.Get(ctx, s.path)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		// First ban: start from an empty list with no precondition.
	case err != nil:
		return fmt.Errorf("fetch ban list: %w", err)
	default:
		version = doc.Version
		if err := json.Unmarshal(doc.Content, &list); err != nil {
			s.log.Warn("ban list at %s is not valid JSON, starting from empty: %v", s.path, err)
			list = BanList{}
		}
	}

	list.BannedUsers = append(list.BannedUsers, BanEntry{
		TargetID:       report.Target,
		ReporterID:     report.Reporter,
		Reason:         report.Reason,
		Context:        report.Context,
		DateAdded:      time.Now().UTC(),
		SourceReportID: report.ID,
	})
	list.LastUpdated = time.Now().UTC()

	content, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ban list: %w", err)
	}

	message := fmt.Sprintf("Ban user %d (report %s)", report.Target, report.ID)
	if _, err := s.store.Put(ctx, s.path, content, version, message); err != nil {
		if errors.Is(err, docstore.ErrPreconditionFailed) {
			return fmt.Errorf("ban list changed under us, entry for report %s dropped: %w", report.ID, err)
		}
		return fmt.Errorf("commit ban list: %w", err)
	}

	return nil
}

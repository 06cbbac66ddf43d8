package reports

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/tribunal-app/tribunal/pkg/errors"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestAddCreatesPendingReport(t *testing.T) {
	s := NewStore()

	report := s.Add(42, 7, "  spam  ", " scamming ", "203.0.113.7")

	require.Regexp(t, idPattern, report.ID)
	require.Equal(t, int64(42), report.Target)
	require.Equal(t, int64(7), report.Reporter)
	require.Equal(t, "spam", report.Context, "context should be trimmed")
	require.Equal(t, "scamming", report.Reason, "reason should be trimmed")
	require.Equal(t, "203.0.113.7", report.SourceAddress)
	require.Equal(t, StatusPending, report.Status)
	require.Nil(t, report.ActionedAt)
	require.False(t, report.Timestamp.IsZero())

	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, report.ID, pending[0].ID)
	require.Empty(t, s.Actioned())
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := NewStore()

	var ids []string
	for i := 0; i < 10; i++ {
		r := s.Add(int64(i), 1, fmt.Sprintf("report %d", i), "", "1.2.3.4")
		ids = append(ids, r.ID)
	}

	pending := s.Pending()
	require.Len(t, pending, 10)
	for i, r := range pending {
		require.Equal(t, ids[i], r.ID)
	}
}

func TestIDsUniqueWithinRun(t *testing.T) {
	s := NewStore()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r := s.Add(1, 2, "c", "", "1.2.3.4")
		require.Regexp(t, idPattern, r.ID)
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestActionMovesReport(t *testing.T) {
	for _, decision := range []Status{StatusApproved, StatusDenied} {
		t.Run(string(decision), func(t *testing.T) {
			s := NewStore()
			created := s.Add(42, 7, "spam", "scamming", "1.2.3.4")

			actioned, err := s.Action(created.ID, decision)
			require.NoError(t, err)
			require.Equal(t, decision, actioned.Status)
			require.NotNil(t, actioned.ActionedAt)

			require.Empty(t, s.Pending())
			list := s.Actioned()
			require.Len(t, list, 1)
			require.Equal(t, created.ID, list[0].ID)
			require.Equal(t, decision, list[0].Status)
		})
	}
}

func TestActionUnknownID(t *testing.T) {
	s := NewStore()
	s.Add(42, 7, "spam", "", "1.2.3.4")

	_, err := s.Action("deadbeef00000000", StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestActionIsTerminal(t *testing.T) {
	s := NewStore()
	created := s.Add(42, 7, "spam", "", "1.2.3.4")

	_, err := s.Action(created.ID, StatusDenied)
	require.NoError(t, err)

	// The id now lives in actioned, so a second decision finds nothing.
	_, err = s.Action(created.ID, StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)

	list := s.Actioned()
	require.Len(t, list, 1)
	require.Equal(t, StatusDenied, list[0].Status)
}

func TestStoreActionInvalidDecision(t *testing.T) {
	s := NewStore()
	created := s.Add(42, 7, "spam", "", "1.2.3.4")

	_, err := s.Action(created.ID, Status("escalated"))
	require.ErrorIs(t, err, errs.ErrInvalidAction)

	require.Len(t, s.Pending(), 1, "invalid decision must not move the report")
}

func TestConcurrentActionSingleSuccess(t *testing.T) {
	s := NewStore()
	created := s.Add(42, 7, "spam", "", "1.2.3.4")

	const workers = 16
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Action(created.ID, StatusApproved)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, errs.ErrNotFound)
		}
	}
	require.Equal(t, 1, successes)
}

func TestConcurrentReadsNeverLoseReports(t *testing.T) {
	s := NewStore()

	const total = 50
	ids := make([]string, 0, total)
	for i := 0; i < total; i++ {
		ids = append(ids, s.Add(int64(i), 1, "c", "", "1.2.3.4").ID)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				// A report mid-transition must still be visible in
				// exactly one collection.
				count := len(s.Pending()) + len(s.Actioned())
				if count != total {
					t.Errorf("observed %d reports, want %d", count, total)
					return
				}
			}
		}
	}()

	for _, id := range ids {
		_, err := s.Action(id, StatusDenied)
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()
}

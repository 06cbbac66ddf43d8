package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tribunal-app/tribunal/internal/pkg/logger"
	"github.com/tribunal-app/tribunal/internal/pkg/notify"
	"github.com/tribunal-app/tribunal/internal/pkg/ratelimit"
)

type fakeSyncer struct {
	synced []Report
}

func (f *fakeSyncer) Sync(report Report) {
	f.synced = append(f.synced, report)
}

type testEnv struct {
	router     *gin.Engine
	store      *Store
	syncer     *fakeSyncer
	dispatcher *notify.Dispatcher
}

func newTestEnv(t *testing.T, submitWebhook, actionWebhook string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore()
	syncer := &fakeSyncer{}
	dispatcher := notify.New(submitWebhook, actionWebhook, logger.New("test", logger.ERROR))
	handler := NewHandler(store, dispatcher, syncer, "https://www.roblox.com/users")

	router := gin.New()
	api := router.Group("/api/v1")
	RegisterRoutes(api, handler, ratelimit.New(100, time.Minute))

	return &testEnv{router: router, store: store, syncer: syncer, dispatcher: dispatcher}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitReport(t *testing.T) {
	env := newTestEnv(t, "", "")

	w := env.do("POST", "/api/v1/reports", `{"target":42,"reporter":7,"context":"spam","reason":"scamming"}`)
	require.Equal(t, 201, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Regexp(t, `^[0-9a-f]{16}$`, body["report_id"])

	pending := env.store.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, body["report_id"], pending[0].ID)
	require.Equal(t, StatusPending, pending[0].Status)
}

func TestSubmitReportMissingTarget(t *testing.T) {
	env := newTestEnv(t, "", "")

	w := env.do("POST", "/api/v1/reports", `{"reporter":7,"context":"spam"}`)
	require.Equal(t, 400, w.Code)

	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "target")
	require.Empty(t, env.store.Pending())
}

func TestSubmitReportNonNumericTarget(t *testing.T) {
	env := newTestEnv(t, "", "")

	w := env.do("POST", "/api/v1/reports", `{"target":"abc","reporter":7,"context":"spam"}`)
	require.Equal(t, 400, w.Code)
	require.Empty(t, env.store.Pending())
}

func TestSubmitReportEmptyContext(t *testing.T) {
	env := newTestEnv(t, "", "")

	w := env.do("POST", "/api/v1/reports", `{"target":42,"reporter":7,"context":"  "}`)
	require.Equal(t, 400, w.Code)
	require.Contains(t, decode(t, w)["message"], "context")
}

func TestListReports(t *testing.T) {
	env := newTestEnv(t, "", "")

	// Empty collections must serialize as arrays, not null.
	w := env.do("GET", "/api/v1/reports", "")
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, `{"pending":[],"actioned":[]}`, w.Body.String())

	env.do("POST", "/api/v1/reports", `{"target":42,"reporter":7,"context":"spam"}`)

	w = env.do("GET", "/api/v1/reports", "")
	body := decode(t, w)
	require.Len(t, body["pending"], 1)
	require.Len(t, body["actioned"], 0)
}

func TestActionUnknownReport(t *testing.T) {
	env := newTestEnv(t, "", "")

	w := env.do("POST", "/api/v1/reports/action", `{"reportId":"deadbeef00000000","action":"approved"}`)
	require.Equal(t, 404, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestActionInvalidDecision(t *testing.T) {
	env := newTestEnv(t, "", "")
	report := env.store.Add(42, 7, "spam", "", "1.2.3.4")

	w := env.do("POST", "/api/v1/reports/action", fmt.Sprintf(`{"reportId":%q,"action":"escalated"}`, report.ID))
	require.Equal(t, 400, w.Code)
	require.Len(t, env.store.Pending(), 1)
}

func TestApproveSchedulesBanSync(t *testing.T) {
	env := newTestEnv(t, "", "")
	report := env.store.Add(42, 7, "spam", "scamming", "1.2.3.4")

	w := env.do("POST", "/api/v1/reports/action", fmt.Sprintf(`{"reportId":%q,"action":"approved"}`, report.ID))
	require.Equal(t, 200, w.Code)

	actioned := env.store.Actioned()
	require.Len(t, actioned, 1)
	require.Equal(t, StatusApproved, actioned[0].Status)
	require.NotNil(t, actioned[0].ActionedAt)

	require.Len(t, env.syncer.synced, 1, "ban sync attempted exactly once")
	require.Equal(t, report.ID, env.syncer.synced[0].ID)
}

func TestDenySkipsBanSync(t *testing.T) {
	env := newTestEnv(t, "", "")
	report := env.store.Add(42, 7, "spam", "", "1.2.3.4")

	w := env.do("POST", "/api/v1/reports/action", fmt.Sprintf(`{"reportId":%q,"action":"denied"}`, report.ID))
	require.Equal(t, 200, w.Code)

	actioned := env.store.Actioned()
	require.Len(t, actioned, 1)
	require.Equal(t, StatusDenied, actioned[0].Status)
	require.Empty(t, env.syncer.synced, "denied reports must not touch the ban list")
}

func TestActionNotificationDistinguishesDecision(t *testing.T) {
	messages := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]string
		json.NewDecoder(r.Body).Decode(&p)
		messages <- p["content"]
	}))
	defer srv.Close()

	env := newTestEnv(t, "", srv.URL)
	approved := env.store.Add(42, 7, "spam", "", "1.2.3.4")
	denied := env.store.Add(43, 7, "spam", "", "1.2.3.4")

	env.do("POST", "/api/v1/reports/action", fmt.Sprintf(`{"reportId":%q,"action":"approved"}`, approved.ID))
	env.dispatcher.Wait()
	approvedMsg := <-messages

	env.do("POST", "/api/v1/reports/action", fmt.Sprintf(`{"reportId":%q,"action":"denied"}`, denied.ID))
	env.dispatcher.Wait()
	deniedMsg := <-messages

	require.Contains(t, approvedMsg, "approved")
	require.Contains(t, deniedMsg, "denied")
	require.NotEqual(t, approvedMsg, deniedMsg)

	// Both carry the full report context and profile links.
	for _, msg := range []string{approvedMsg, deniedMsg} {
		require.Contains(t, msg, "roblox.com/users/7/profile")
		require.Contains(t, msg, "spam")
	}
}

func TestSlowWebhookDoesNotBlockSubmission(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL, "")

	// The webhook is stuck until released; the response must not be.
	w := env.do("POST", "/api/v1/reports", `{"target":42,"reporter":7,"context":"spam"}`)
	require.Equal(t, 201, w.Code)
	require.Equal(t, true, decode(t, w)["success"])

	close(release)
	env.dispatcher.Wait()
}

func TestFailingWebhookDoesNotAffectSubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	env := newTestEnv(t, srv.URL, srv.URL)

	w := env.do("POST", "/api/v1/reports", `{"target":42,"reporter":7,"context":"spam"}`)
	require.Equal(t, 201, w.Code)
	env.dispatcher.Wait()
}

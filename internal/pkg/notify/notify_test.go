package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tribunal-app/tribunal/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("notify-test", logger.ERROR)
}

func TestSendDeliversContentPayload(t *testing.T) {
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := New(srv.URL, "", testLogger())
	d.Send(ChannelSubmissions, "new report filed")
	d.Wait()

	var p map[string]string
	require.NoError(t, json.Unmarshal([]byte(<-received), &p))
	require.Equal(t, "new report filed", p["content"])
}

func TestSendRoutesByChannel(t *testing.T) {
	var submits, actions atomic.Int32
	submitSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submits.Add(1)
	}))
	defer submitSrv.Close()
	actionSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actions.Add(1)
	}))
	defer actionSrv.Close()

	d := New(submitSrv.URL, actionSrv.URL, testLogger())
	d.Send(ChannelSubmissions, "a")
	d.Send(ChannelActions, "b")
	d.Send(ChannelActions, "c")
	d.Wait()

	require.Equal(t, int32(1), submits.Load())
	require.Equal(t, int32(2), actions.Load())
}

func TestSendNoopWhenURLUnset(t *testing.T) {
	d := New("", "", testLogger())

	// Must not panic or block.
	d.Send(ChannelSubmissions, "a")
	d.Send(ChannelActions, "b")
	d.Wait()
}

func TestSendAtMostOnceOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := New(srv.URL, "", testLogger())
	d.Send(ChannelSubmissions, "a")
	d.Wait()

	require.Equal(t, int32(1), calls.Load(), "non-2xx must not be retried")
}

func TestSendSwallowsConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	d := New(srv.URL, "", testLogger())
	d.Send(ChannelSubmissions, "a")
	d.Wait()
}

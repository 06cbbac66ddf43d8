package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/tribunal-app/tribunal/internal/pkg/logger"
)

// Channel selects which configured webhook receives a message.
type Channel string

const (
	// ChannelSubmissions carries new-report events.
	ChannelSubmissions Channel = "submissions"
	// ChannelActions carries approve/deny decisions.
	ChannelActions Channel = "actions"
)

// payload is the chat-webhook body: the message text under a content key.
type payload struct {
	Content string `json:"content"`
}

// Dispatcher delivers messages to chat webhooks, at most once each, fully
// detached from the request path. Send never surfaces an error; delivery
// failures are classified and logged only.
type Dispatcher struct {
	urls   map[Channel]string
	client *http.Client
	log    *logger.Logger
	wg     sync.WaitGroup
}

// New builds a dispatcher. Channels with empty URLs are silently dropped
// at send time.
func New(submitURL, actionURL string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		urls: map[Channel]string{
			ChannelSubmissions: submitURL,
			ChannelActions:     actionURL,
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Send schedules delivery of text to the channel's webhook and returns
// immediately. The caller's response must never depend on the outcome.
func (d *Dispatcher) Send(channel Channel, text string) {
	url := d.urls[channel]
	if url == "" {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(channel, url, text)
	}()
}

// Wait blocks until all scheduled deliveries have finished. Used on
// shutdown and in tests; request handlers never call it.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(channel Channel, url, text string) {
	body, err := json.Marshal(payload{Content: text})
	if err != nil {
		d.log.Error("%s webhook: marshal failed: %v", channel, err)
		return
	}

	resp, err := d.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		// DNS failure, connection refused, timeout: all terminal, no retry.
		d.log.Error("%s webhook unreachable: %v", channel, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.log.Warn("%s webhook rejected message: status %d", channel, resp.StatusCode)
		return
	}

	d.log.Debug("%s webhook delivered", channel)
}

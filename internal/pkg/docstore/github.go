package docstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GitHub stores documents as files in a repository via the contents API.
// The blob sha doubles as the version token: a PUT carrying a stale sha is
// rejected by GitHub, which is surfaced as ErrPreconditionFailed.
type GitHub struct {
	baseURL string
	token   string
	owner   string
	repo    string
	branch  string
	client  *http.Client
}

// NewGitHub builds a GitHub-backed store committing to owner/repo on branch.
func NewGitHub(token, owner, repo, branch string) *GitHub {
	return &GitHub{
		baseURL: "https://api.github.com",
		token:   token,
		owner:   owner,
		repo:    repo,
		branch:  branch,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithBaseURL points the store at a different API host (tests, GHE).
func (g *GitHub) WithBaseURL(url string) *GitHub {
	g.baseURL = strings.TrimRight(url, "/")
	return g
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

func (g *GitHub) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, g.owner, g.repo, path)
}

func (g *GitHub) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+g.token)
	return g.client.Do(req)
}

func (g *GitHub) Get(ctx context.Context, path string) (*Document, error) {
	url := g.contentsURL(path)
	if g.branch != "" {
		url += "?ref=" + g.branch
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch %s: decode response: %w", path, err)
	}

	// The API wraps base64 content across lines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: decode content: %w", path, err)
	}

	return &Document{Content: raw, Version: body.SHA}, nil
}

func (g *GitHub) Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (string, error) {
	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     expectedVersion,
		Branch:  g.branch,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.do(req)
	if err != nil {
		return "", fmt.Errorf("commit %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// fall through to decode the new sha
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// GitHub rejects writes whose sha no longer matches HEAD.
		return "", ErrPreconditionFailed
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("commit %s: unexpected status %d: %s", path, resp.StatusCode, snippet)
	}

	var body putResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("commit %s: decode response: %w", path, err)
	}
	return body.Content.SHA, nil
}

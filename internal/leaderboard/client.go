package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hardest-game/internal/world"
)

// DefaultTimeout bounds every client request.
const DefaultTimeout = 5 * time.Second

// Client talks to a leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a client for the server at baseURL
// (e.g. "http://localhost:3000").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchWorld downloads and decodes the world document. The server may
// send the object itself or a JSON string holding it.
func (c *Client) FetchWorld(ctx context.Context) (world.Document, error) {
	body, err := c.get(ctx, "/world")
	if err != nil {
		return world.Document{}, err
	}
	doc, err := world.Decode(body, world.FormatJSON)
	if err != nil {
		return world.Document{}, fmt.Errorf("leaderboard: world: %w", err)
	}
	return doc, nil
}

// FetchLeaderboard downloads the full board, best first.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]Score, error) {
	body, err := c.get(ctx, "/leaderboard")
	if err != nil {
		return nil, err
	}
	var scores []Score
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("leaderboard: decode scores: %w", err)
	}
	return scores, nil
}

// SubmitScore posts s and fails unless the server answers 200.
func (c *Client) SubmitScore(ctx context.Context, s Score) error {
	if err := s.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("leaderboard: encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: submit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leaderboard: submit: server answered %s", resp.Status)
	}
	return nil
}

// SubmitAsync submits s in the background. The returned channel receives
// the result once and is then closed; callers may ignore it.
func (c *Client) SubmitAsync(s Score, logger *log.Logger) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		err := c.SubmitScore(ctx, s)
		if logger != nil {
			if err != nil {
				logger.Warn("score submission failed", "player", s.Player, "score", s.Score, "error", err)
			} else {
				logger.Info("score submitted", "player", s.Player, "score", s.Score)
			}
		}
		done <- err
	}()
	return done
}

// Watch connects to the live feed and calls fn with every board snapshot
// until ctx is cancelled or the connection drops.
func (c *Client) Watch(ctx context.Context, fn func([]Score)) error {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("leaderboard: watch: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}()

	for {
		var upd Update
		if err := conn.ReadJSON(&upd); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("leaderboard: watch: %w", err)
		}
		if upd.Type == UpdateTypeLeaderboard {
			fn(upd.Scores)
		}
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard: GET %s: server answered %s", path, resp.Status)
	}
	return body, nil
}

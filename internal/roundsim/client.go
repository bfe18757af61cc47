package roundsim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/golfbet/internal/domain/types"
)

// ErrUnexpectedStatus is returned when the service answers with an error status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Rate limited requests are retried after the server's Retry-After delay.
const (
	maxAttempts       = 10
	defaultRetryAfter = 500 * time.Millisecond
)

// Client drives the golfbet HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type createGameRequest struct {
	PlayerCount  int          `json:"player_count"`
	HoleCount    int          `json:"hole_count"`
	Mode         string       `json:"mode"`
	Scoring      string       `json:"scoring"`
	BuchiEnabled bool         `json:"buchi_enabled"`
	VoorEnabled  bool         `json:"voor_enabled"`
	Players      []string     `json:"players"`
	Voor         []types.Voor `json:"voor"`
}

// Health checks that the service answers on /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, nil)
}

// CreateGame registers a round for plan.
func (c *Client) CreateGame(ctx context.Context, cfg *Config, plan RoundPlan) (types.GameView, error) {
	var view types.GameView
	err := c.do(ctx, http.MethodPost, "/games", createGameRequest{
		PlayerCount:  len(plan.Players),
		HoleCount:    cfg.Holes,
		Mode:         cfg.Mode,
		Scoring:      cfg.Scoring,
		BuchiEnabled: cfg.Buchi,
		VoorEnabled:  cfg.Voor,
		Players:      plan.Players,
		Voor:         plan.Voor,
	}, http.StatusCreated, &view)
	return view, err
}

// AddHole creates a hole.
func (c *Client) AddHole(ctx context.Context, id string, h HolePlan) error {
	body := map[string]any{"number": h.Number, "value": h.Value, "par": h.Par}
	return c.do(ctx, http.MethodPost, "/games/"+id+"/holes", body, http.StatusCreated, nil)
}

// SetScores records a hole's scores.
func (c *Client) SetScores(ctx context.Context, id string, hole int, scores []types.ScoreEntry) error {
	body := map[string]any{"scores": scores}
	return c.do(ctx, http.MethodPut, holePath(id, hole)+"/scores", body, http.StatusOK, nil)
}

// SetBuchi records a hole's side bet entries.
func (c *Client) SetBuchi(ctx context.Context, id string, hole int, entries []types.BuchiEntry) error {
	body := map[string]any{"entries": entries}
	return c.do(ctx, http.MethodPut, holePath(id, hole)+"/buchi", body, http.StatusOK, nil)
}

// SettleHole computes a hole's payments.
func (c *Client) SettleHole(ctx context.Context, id string, hole int) (types.HoleView, error) {
	var view types.HoleView
	err := c.do(ctx, http.MethodPost, holePath(id, hole)+"/settle", nil, http.StatusOK, &view)
	return view, err
}

// AdvanceHole moves the round's cursor.
func (c *Client) AdvanceHole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/games/"+id+"/advance", nil, http.StatusOK, nil)
}

// SettleRound nets the round.
func (c *Client) SettleRound(ctx context.Context, id string) (types.GameView, error) {
	var view types.GameView
	err := c.do(ctx, http.MethodPost, "/games/"+id+"/settle", nil, http.StatusOK, &view)
	return view, err
}

// DeleteGame drops the round from the registry.
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/games/"+id, nil, http.StatusNoContent, nil)
}

func holePath(id string, hole int) string {
	return "/games/" + id + "/holes/" + strconv.Itoa(hole)
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	for attempt := 1; ; attempt++ {
		status, data, retryAfter, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
		if status == http.StatusTooManyRequests && attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfter):
			}
			continue
		}
		if status != want {
			return fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, method, path, status, bytes.TrimSpace(data))
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
		return nil
	}
}

// send performs one request and returns its status, body and Retry-After delay.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	retryAfter := defaultRetryAfter
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		retryAfter = time.Duration(secs) * time.Second
	}
	return resp.StatusCode, data, retryAfter, nil
}

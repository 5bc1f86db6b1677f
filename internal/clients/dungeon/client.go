// Package dungeon is an HTTP client for the dungeon run API
package dungeon

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

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Client defines the dungeon API calls
type Client interface {
	// Start creates a run for a hero
	Start(ctx context.Context, input *StartInput) (*Run, error)

	// Get loads a run snapshot
	Get(ctx context.Context, runID string) (*Run, error)

	// Choices lists the rooms reachable from the run's position
	Choices(ctx context.Context, runID string) ([]entities.Choice, error)

	// Choose moves the run into choice index 0 or 1
	Choose(ctx context.Context, runID string, index int) (*ChooseResult, error)

	// Finish completes the run
	Finish(ctx context.Context, runID string) (*FinishResult, error)

	// Abandon abandons the run
	Abandon(ctx context.Context, runID string) (*FinishResult, error)

	// Health calls the liveness probe
	Health(ctx context.Context) error
}

// StartInput is the start request body
type StartInput struct {
	HeroID            string                `json:"heroId"`
	HeroStats         entities.HeroSnapshot `json:"heroStats"`
	EquippedArtifacts []entities.Artifact   `json:"equippedArtifacts"`
}

// Run is the run snapshot returned by the API
type Run struct {
	RunID             string                  `json:"runId"`
	HeroID            string                  `json:"heroId"`
	HeroStats         entities.HeroSnapshot   `json:"heroStats"`
	EquippedArtifacts []entities.Artifact     `json:"equippedArtifacts"`
	Status            entities.RunStatus      `json:"status"`
	Position          entities.Position       `json:"position"`
	Rooms             []entities.RoomTemplate `json:"rooms"`
	VisitedRooms      []entities.Position     `json:"visitedRooms"`
	StartedAt         time.Time               `json:"startedAt"`
	FinishedAt        *time.Time              `json:"finishedAt"`
}

// ChooseResult reports where the hero moved to
type ChooseResult struct {
	Position entities.Position `json:"position"`
	RoomType entities.RoomType `json:"roomType"`
}

// FinishResult is returned by finish and abandon
type FinishResult struct {
	Message    string             `json:"message"`
	RunID      string             `json:"runId"`
	HeroID     string             `json:"heroId"`
	Status     entities.RunStatus `json:"status"`
	FinishedAt *time.Time         `json:"finishedAt"`
}

// Config holds client settings
type Config struct {
	// BaseURL of the server (optional, defaults to http://localhost:8080)
	BaseURL string
	// HTTPTimeout per request (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the default client
	HTTPClient *http.Client
}

// Validate sets defaults and checks the base URL
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.InvalidArgumentf("invalid base URL %q", cfg.BaseURL)
	}
	return nil
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) Start(ctx context.Context, input *StartInput) (*Run, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EquippedArtifacts == nil {
		input.EquippedArtifacts = []entities.Artifact{}
	}

	var run Run
	if err := c.do(ctx, http.MethodPost, "/api/dungeons/start", input, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *client) Get(ctx context.Context, runID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodGet, runPath(runID, ""), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *client) Choices(ctx context.Context, runID string) ([]entities.Choice, error) {
	var resp struct {
		Choices []entities.Choice `json:"choices"`
	}
	if err := c.do(ctx, http.MethodGet, runPath(runID, "choices"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Choices, nil
}

func (c *client) Choose(ctx context.Context, runID string, index int) (*ChooseResult, error) {
	body := map[string]int{"choiceIndex": index}

	var result ChooseResult
	if err := c.do(ctx, http.MethodPost, runPath(runID, "choose"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) Finish(ctx context.Context, runID string) (*FinishResult, error) {
	var result FinishResult
	if err := c.do(ctx, http.MethodPost, runPath(runID, "finish"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) Abandon(ctx context.Context, runID string) (*FinishResult, error) {
	var result FinishResult
	if err := c.do(ctx, http.MethodPost, runPath(runID, "abandon"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func runPath(runID, action string) string {
	p := "/api/dungeons/" + url.PathEscape(runID)
	if action != "" {
		p += "/" + action
	}
	return p
}

// do sends a JSON request and decodes a 2xx body into out. Error envelopes
// are converted back into coded errors.
func (c *client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, fmt.Sprintf("%s %s failed", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body errors.HTTPBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		return errors.Newf(codeForStatus(status), "unexpected status %d", status)
	}
	return errors.New(body.Code, body.Error).WithMetaMap(body.Details)
}

func codeForStatus(status int) errors.Code {
	switch status {
	case http.StatusBadRequest:
		return errors.CodeInvalidArgument
	case http.StatusNotFound:
		return errors.CodeNotFound
	case http.StatusConflict:
		return errors.CodeAborted
	case http.StatusServiceUnavailable:
		return errors.CodeUnavailable
	default:
		return errors.CodeInternal
	}
}

// Package statsfeed talks to the hosted league-platform API that holds the
// authoritative transaction log: drafts, waiver pickups, drops, and trades.
package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/draftroom/keeper-league/internal/platform/logging"
	"github.com/draftroom/keeper-league/internal/platform/resilience"
	"github.com/draftroom/keeper-league/internal/usecase"
)

const defaultBaseURL = "https://api.statsfeed.example.com/v1"

var apiTokenParamRegex = regexp.MustCompile(`token=[^&\s"']+`)
var errStatsFeedTransient = crerr.New("statsfeed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type transactionEnvelope struct {
	Data []transactionItem `json:"data"`
}

type transactionItem struct {
	Ref       string  `json:"ref"`
	PlayerID  string  `json:"playerId"`
	Slot      string  `json:"slot"`
	Season    int     `json:"season"`
	Type      string  `json:"type"`
	Round     *int    `json:"round"`
	Pick      *int    `json:"pick"`
	FromSlot  *string `json:"fromSlot"`
	Timestamp string  `json:"timestamp"`
	DroppedAt *string `json:"droppedAt"`
}

// FetchTransactions pulls the full transaction log for one season.
func (c *Client) FetchTransactions(ctx context.Context, seasonYear int) ([]usecase.ExternalTransaction, error) {
	if seasonYear <= 0 {
		return nil, fmt.Errorf("season year must be greater than zero")
	}

	path := "/transactions"
	query := map[string]string{"season": strconv.Itoa(seasonYear)}

	var envelope transactionEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch transactions season=%d: %w", seasonYear, err)
	}

	out := make([]usecase.ExternalTransaction, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		row := usecase.ExternalTransaction{
			ExternalRef: item.Ref,
			PlayerID:    item.PlayerID,
			SlotID:      item.Slot,
			SeasonYear:  item.Season,
			Type:        item.Type,
			Round:       item.Round,
			Pick:        item.Pick,
			FromSlotID:  item.FromSlot,
		}
		if parsed := parseProviderTime(item.Timestamp); parsed != nil {
			row.OccurredAt = *parsed
		}
		if item.DroppedAt != nil {
			row.DroppedAt = parseProviderTime(*item.DroppedAt)
		}
		out = append(out, row)
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "statsfeed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("token", c.token)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errStatsFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errStatsFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "statsfeed request failed",
		"request", describeRequest(fullURL, c.maxRetries),
		"error", lastErr,
	)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errStatsFeedTransient) || stderrors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func parseProviderTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}

	return nil
}

func abbreviateBody(raw []byte) string {
	const limit = 300
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}

	return body
}

func sanitizeSensitiveText(text, token string) string {
	if token != "" {
		text = strings.ReplaceAll(text, token, "***")
	}

	return apiTokenParamRegex.ReplaceAllString(text, "token=***")
}

// describeRequest builds the redacted request line attached to failure logs.
func describeRequest(fullURL string, retries int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("GET ")
	_, _ = buf.WriteString(apiTokenParamRegex.ReplaceAllString(fullURL, "token=***"))
	_, _ = buf.WriteString(" retries=")
	_, _ = buf.WriteString(strconv.Itoa(retries))

	return buf.String()
}

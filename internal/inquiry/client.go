package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/oklog/ulid/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/observability"
)

const (
	defaultTimeout    = 10 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// ClientOptions tunes the remote client.
type ClientOptions struct {
	Token   string
	Timeout time.Duration
	Retries int
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *zap.Logger
}

// Client posts submissions as JSON to an external endpoint.
type Client struct {
	endpoint string
	token    string
	http     *retryablehttp.Client
}

// NewClient constructs a client for endpoint.
func NewClient(endpoint string, opts ClientOptions) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = observability.NewPrintfAdapter(opts.Logger)
	rc.RetryMax = opts.Retries
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rc.HTTPClient.Timeout = timeout
	// keep the last response so its status and body reach the caller
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		token:    strings.TrimSpace(opts.Token),
		http:     rc,
	}
}

type payload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Topic    string `json:"topic"`
	RoomID   string `json:"roomId,omitempty"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
	Guests   int    `json:"guests,omitempty"`
	Message  string `json:"message"`
	Locale   string `json:"locale,omitempty"`
}

// Submit implements Submitter.
func (c *Client) Submit(ctx context.Context, f Form) (Receipt, error) {
	body, err := json.Marshal(payload{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Topic:    string(f.Topic),
		RoomID:   f.RoomID,
		CheckIn:  f.CheckIn,
		CheckOut: f.CheckOut,
		Guests:   f.Guests,
		Message:  f.Message,
		Locale:   f.Locale,
	})
	if err != nil {
		return Receipt{}, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, ulid.Make().String())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Receipt{}, &SubmitError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode >= 400 {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return parseReceipt(raw), nil
}

// parseReceipt accepts {"id": ...} and {"data": {"id": ...}} shapes.
func parseReceipt(raw []byte) Receipt {
	doc := gjson.ParseBytes(raw)
	id := firstString(doc, "id", "data.id", "receipt.id")
	if id == "" {
		id = ulid.Make().String()
	}
	rec := Receipt{ID: id, ReceivedAt: time.Now().UTC()}
	if ts := firstString(doc, "receivedAt", "data.receivedAt", "createdAt"); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.ReceivedAt = parsed
		}
	}
	return rec
}

func errorMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return msg
	}
	return firstString(gjson.ParseBytes(raw), "error.message", "message", "error")
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() && v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str)
		}
	}
	return ""
}

// String identifies the client in logs.
func (c *Client) String() string { return fmt.Sprintf("inquiry.Client(%s)", c.endpoint) }

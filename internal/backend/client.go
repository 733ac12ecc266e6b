package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/five82/flashdeck/internal/document"
)

// API is the backend surface the session depends on.
// This interface is implemented by *Client and can be replaced in tests.
type API interface {
	Health(ctx context.Context) error
	Generate(ctx context.Context, upload Upload) ([]Flashcard, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

const (
	defaultBaseURL       = "http://localhost:8000/api/v1"
	defaultUserAgent     = "flashdeck/0.1"
	defaultHealthTimeout = 10 * time.Second
	defaultUploadTimeout = 2 * time.Minute

	healthPath   = "/flashcards/health"
	generatePath = "/flashcards/generate"
	uploadField  = "file"

	requestIDHeader = "X-Request-ID"
)

// Options configure a Client. Zero values use defaults.
type Options struct {
	BaseURL       string
	HealthTimeout time.Duration
	UploadTimeout time.Duration
	UserAgent     string
	Logger        *slog.Logger
}

// Client talks to the flashcard generation backend.
type Client struct {
	baseURL       *url.URL
	http          *resty.Client
	healthTimeout time.Duration
	uploadTimeout time.Duration
	log           *slog.Logger
}

// NewClient builds a Client for the backend rooted at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := opts.UserAgent
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}

	rc := resty.New().
		SetBaseURL(base.String()).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger}).
		SetRetryCount(0)

	return &Client{
		baseURL:       base,
		http:          rc,
		healthTimeout: orDefault(opts.HealthTimeout, defaultHealthTimeout),
		uploadTimeout: orDefault(opts.UploadTimeout, defaultUploadTimeout),
		log:           logger,
	}, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Health probes the backend. Only an HTTP 200 counts as healthy.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	reqID := uuid.NewString()
	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, reqID).
		Get(healthPath)
	if err != nil {
		kind := classifyTransport(ctx, err)
		c.log.Warn("health probe failed", "request_id", reqID, "kind", kind.String(), "error", err)
		return &Error{Kind: kind, Op: "health", RequestID: reqID, Err: err}
	}

	c.log.Debug("health probe", "request_id", reqID, "status", res.StatusCode(), "elapsed", time.Since(start))
	if res.StatusCode() != http.StatusOK {
		return &Error{
			Kind:      KindServer,
			Op:        "health",
			Status:    res.StatusCode(),
			Detail:    decodeDetail(res.Body()),
			RequestID: reqID,
		}
	}
	return nil
}

// Generate uploads a document as multipart/form-data and returns the cards
// in server order. The call is bounded by the upload timeout and refuses
// documents larger than document.MaxSize before anything is sent.
func (c *Client) Generate(ctx context.Context, upload Upload) ([]Flashcard, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqID := uuid.NewString()
	if upload.Body == nil {
		return nil, &Error{Kind: KindUnknown, Op: "generate", RequestID: reqID, Err: fmt.Errorf("upload body is nil")}
	}
	if upload.Size > document.MaxSize {
		return nil, &Error{Kind: KindTooLarge, Op: "generate", RequestID: reqID, Err: errTooLarge}
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	mediaType := upload.MediaType
	if mediaType == "" {
		mediaType = document.PDFMediaType
	}

	start := time.Now()
	c.log.Info("uploading document", "request_id", reqID, "name", upload.Name, "bytes", upload.Size)
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, reqID).
		SetMultipartField(uploadField, upload.Name, mediaType, &cappedReader{r: upload.Body, remaining: document.MaxSize}).
		Post(generatePath)
	if err != nil {
		kind := classifyTransport(ctx, err)
		c.log.Warn("generate failed", "request_id", reqID, "kind", kind.String(), "elapsed", time.Since(start), "error", err)
		return nil, &Error{Kind: kind, Op: "generate", RequestID: reqID, Err: err}
	}

	status := res.StatusCode()
	c.log.Info("generate response", "request_id", reqID, "status", status, "elapsed", time.Since(start))

	if status < 200 || status >= 300 {
		return nil, &Error{
			Kind:      KindServer,
			Op:        "generate",
			Status:    status,
			Detail:    decodeDetail(res.Body()),
			RequestID: reqID,
		}
	}
	if status != http.StatusOK {
		return nil, &Error{Kind: KindMalformed, Op: "generate", Status: status, RequestID: reqID,
			Err: fmt.Errorf("unexpected status %d", status)}
	}

	cards, err := decodeFlashcards(res.Body())
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Op: "generate", Status: status, RequestID: reqID, Err: err}
	}
	return cards, nil
}

func decodeFlashcards(body []byte) ([]Flashcard, error) {
	var raw GenerateResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if raw.Flashcards == nil {
		return nil, fmt.Errorf("missing flashcards")
	}
	if len(*raw.Flashcards) == 0 {
		return nil, fmt.Errorf("no flashcards returned")
	}
	return *raw.Flashcards, nil
}

func decodeDetail(body []byte) string {
	var payload ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message()
}

// cappedReader fails once more than remaining bytes have been read, so a
// file that grew after inspection is never sent past the limit.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, errTooLarge
	}
	return n, err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// restyLogger routes resty's own diagnostics into slog so nothing is written
// to the terminal the TUI owns.
type restyLogger struct {
	log *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

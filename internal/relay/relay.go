// Package relay posts flat forms to third-party form relays (mail relay, forms API).
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bioscrap/internal/pkg/resilience"
)

var (
	ErrRejected    = errors.New("form relay rejected the submission")
	ErrUnavailable = errors.New("form relay unavailable")
)

// RejectionError is returned when the relay answered but refused the form.
// It matches ErrRejected.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrRejected, e.Status)
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Message)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// Field is one key/value pair of a submitted form.
type Field struct {
	Key   string
	Value string
}

// Form is an ordered list of fields; order is preserved on the wire.
type Form []Field

func (f *Form) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

func (f Form) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func (f Form) Map() map[string]string {
	out := make(map[string]string, len(f))
	for _, field := range f {
		out[field.Key] = field.Value
	}
	return out
}

// Transport delivers a form. A nil error means the relay accepted it.
type Transport interface {
	Submit(ctx context.Context, form Form) error
}

// Options shared by the relay clients.
type Options struct {
	Timeout time.Duration
	Logger  *zap.Logger
	Breaker *resilience.CircuitBreaker
	Client  *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func encodeMultipart(form Form) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, field := range form {
		if err := w.WriteField(field.Key, field.Value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func post(ctx context.Context, client *http.Client, url string, form Form) (int, []byte, error) {
	body, contentType, err := encodeMultipart(form)
	if err != nil {
		return 0, nil, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	return resp.StatusCode, raw, nil
}

// BreakerConfig is the breaker setup for relay clients. A relay that answered
// and refused the form is healthy; only transport errors and 5xx answers trip it.
func BreakerConfig(name string) resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsSuccessful = relayHealthy
	return cfg
}

func relayHealthy(err error) bool {
	if err == nil {
		return true
	}
	var rejection *RejectionError
	return errors.As(err, &rejection) && rejection.Status < http.StatusInternalServerError
}

func run(breaker *resilience.CircuitBreaker, fn func() error) error {
	if breaker == nil {
		return fn()
	}
	err := breaker.Execute(fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

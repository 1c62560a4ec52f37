package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bioscrap/internal/pkg/resilience"
)

func sampleForm() Form {
	var f Form
	f.Add("name", "Asha Rao")
	f.Add("email", "asha@example.com")
	f.Add("service_type", "waste")
	return f
}

func TestForm_GetAndMap(t *testing.T) {
	f := sampleForm()

	v, ok := f.Get("email")
	assert.True(t, ok)
	assert.Equal(t, "asha@example.com", v)

	_, ok = f.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "waste", f.Map()["service_type"])
}

func TestFormSubmitClient_Success(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		got = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			got[k] = v[0]
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":"true"}`))
	}))
	defer srv.Close()

	c := NewFormSubmitClient(srv.URL, Options{Timeout: time.Second})
	require.NoError(t, c.Submit(context.Background(), sampleForm()))
	assert.Equal(t, "Asha Rao", got["name"])
	assert.Equal(t, "waste", got["service_type"])
}

func TestFormSubmitClient_Non2xxIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewFormSubmitClient(srv.URL, Options{}).Submit(context.Background(), sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestFormSubmitClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewFormSubmitClient(url, Options{Timeout: time.Second}).Submit(context.Background(), sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWeb3FormsClient_SendsAccessKeyAndReadsFlag(t *testing.T) {
	var accessKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		accessKey = r.FormValue("access_key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	defer srv.Close()

	c := NewWeb3FormsClient(srv.URL, "key-123", Options{})
	require.NoError(t, c.Submit(context.Background(), sampleForm()))
	assert.Equal(t, "key-123", accessKey)
}

func TestWeb3FormsClient_FailureFlagCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the forms API can answer 200 with success=false
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid access key"}`))
	}))
	defer srv.Close()

	err := NewWeb3FormsClient(srv.URL, "bad", Options{}).Submit(context.Background(), sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Invalid access key")

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Invalid access key", rejection.Message)
}

func TestWeb3FormsClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	err := NewWeb3FormsClient(srv.URL, "k", Options{}).Submit(context.Background(), sampleForm())
	assert.ErrorIs(t, err, ErrRejected)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := resilience.DefaultCircuitBreakerConfig("mail-relay")
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Minute
	c := NewFormSubmitClient(srv.URL, Options{Breaker: resilience.NewCircuitBreaker(cfg, nil)})

	assert.ErrorIs(t, c.Submit(context.Background(), sampleForm()), ErrRejected)
	assert.ErrorIs(t, c.Submit(context.Background(), sampleForm()), ErrRejected)

	err := c.Submit(context.Background(), sampleForm())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBreakerIgnoresRefusedForms(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"success":false,"message":"Spam detected"}`))
	}))
	defer srv.Close()

	cfg := BreakerConfig("forms-api")
	cfg.FailureThreshold = 2
	breaker := resilience.NewCircuitBreaker(cfg, nil)
	c := NewWeb3FormsClient(srv.URL, "k", Options{Breaker: breaker})

	for i := 0; i < 4; i++ {
		err := c.Submit(context.Background(), sampleForm())
		assert.ErrorIs(t, err, ErrRejected)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestBreakerConfigStillTripsOnServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := BreakerConfig("mail-relay")
	cfg.FailureThreshold = 2
	breaker := resilience.NewCircuitBreaker(cfg, nil)
	c := NewFormSubmitClient(srv.URL, Options{Breaker: breaker})

	_ = c.Submit(context.Background(), sampleForm())
	_ = c.Submit(context.Background(), sampleForm())

	assert.ErrorIs(t, c.Submit(context.Background(), sampleForm()), ErrUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, gobreaker.StateOpen, breaker.State())
}

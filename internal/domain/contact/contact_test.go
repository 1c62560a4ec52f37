package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bioscrap/internal/relay"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Submit(ctx context.Context, form relay.Form) error {
	return m.Called(ctx, form).Error(0)
}

func setupRouter(transport relay.Transport) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(transport, nil, nil))
	r := gin.New()
	RegisterPublicRoutes(r.Group("/api/v1"), h, func(c *gin.Context) { c.Next() })
	return r
}

func post(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRequest() SubmitContactRequest {
	return SubmitContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Message: "Do you collect coconut husks from farms?",
	}
}

func TestSubmit_Success(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Submit", mock.Anything, mock.MatchedBy(func(f relay.Form) bool {
		m := f.Map()
		_, hasService := m["Service"]
		return m["Name"] == "Asha Rao" && m["Email"] == "asha@example.com" && m["Phone"] == "9876543210" &&
			m["Message"] == "Do you collect coconut husks from farms?" && !hasService
	})).Return(nil).Once()

	w := post(t, setupRouter(transport), validRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Message Sent!")
	transport.AssertExpectations(t)
}

func TestSubmit_IncludesServiceWhenGiven(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Submit", mock.Anything, mock.MatchedBy(func(f relay.Form) bool {
		v, ok := f.Get("Service")
		return ok && v == "scrap"
	})).Return(nil).Once()

	req := validRequest()
	req.Service = "scrap"
	w := post(t, setupRouter(transport), req)

	assert.Equal(t, http.StatusOK, w.Code)
	transport.AssertExpectations(t)
}

func TestSubmit_Validation(t *testing.T) {
	transport := &mockTransport{}
	r := setupRouter(transport)

	req := SubmitContactRequest{Name: "A", Email: "nope", Phone: "123", Message: "short"}
	w := post(t, r, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var env struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Name must be at least 2 characters", env.Error.Details["name"])
	assert.Equal(t, "Please enter a valid email address", env.Error.Details["email"])
	assert.Equal(t, "Please enter a valid phone number", env.Error.Details["phone"])
	assert.Equal(t, "Message must be at least 10 characters", env.Error.Details["message"])
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmit_RejectedByFormsAPI(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&relay.RejectionError{Status: 200, Message: "Invalid access key"}).Once()

	w := post(t, setupRouter(transport), validRequest())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "SEND_FAILED")
	assert.Contains(t, w.Body.String(), "Invalid access key")
	assert.NotContains(t, w.Body.String(), "Message Sent!")
}

func TestSubmit_FailureLogOmitsContactDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	transport := &mockTransport{}
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&relay.RejectionError{Status: 200, Message: "Spam detected"}).Once()

	req := validRequest()
	_, err := NewService(transport, nil, zap.New(core)).Submit(context.Background(), &req)
	require.ErrorIs(t, err, ErrSendFailed)

	entries := logs.FilterMessage("contact submission failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Contains(t, fields, "error")
	for _, v := range fields {
		s := fmt.Sprint(v)
		assert.NotContains(t, s, req.Email)
		assert.NotContains(t, s, req.Phone)
		assert.NotContains(t, s, req.Name)
	}
}

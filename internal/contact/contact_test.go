package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestHandler(t *testing.T, notifier Notifier, limiter RateLimiter) *Handler {
	t.Helper()
	svc, err := NewService(notifier, WithTimeout(time.Second))
	require.NoError(t, err)
	return NewHandler(svc, limiter, 0)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactEndpoint(t *testing.T) {
	h := newTestHandler(t, NewLogNotifier(nil), nil)

	cases := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"valid", `{"name":"A","email":"a@b.com","message":"hi"}`, http.StatusOK, `{"success":true}`},
		{"with optional fields", `{"name":"A","email":"a@b.com","message":"hi","company":"Acme","offerId":"SO-2024-001","quantity":"40"}`, http.StatusOK, `{"success":true}`},
		{"numeric quantity", `{"name":"A","email":"a@b.com","message":"hi","quantity":40}`, http.StatusOK, `{"success":true}`},
		{"missing email and message", `{"name":"A"}`, http.StatusBadRequest, `{"error":"Missing required fields"}`},
		{"blank message", `{"name":"A","email":"a@b.com","message":"   "}`, http.StatusBadRequest, `{"error":"Missing required fields"}`},
		{"empty object", `{}`, http.StatusBadRequest, `{"error":"Missing required fields"}`},
		{"malformed json", `{"name":`, http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"not an object", `[1,2]`, http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(h, tc.body)
			require.Equal(t, tc.status, rec.Code)
			require.JSONEq(t, tc.want, rec.Body.String())
		})
	}
}

func TestContactNotifierFailureIsInternalError(t *testing.T) {
	failing := NotifierFunc(func(context.Context, string, Submission) error { return errors.New("smtp down") })
	rec := post(newTestHandler(t, failing, nil), `{"name":"A","email":"a@b.com","message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestContactDeliveryHonoursTimeout(t *testing.T) {
	slow := NotifierFunc(func(ctx context.Context, _ string, _ Submission) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc, err := NewService(slow, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), Submission{Name: "A", Email: "a@b.com", Message: "hi"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContactRateLimit(t *testing.T) {
	now := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(2, time.Minute, func() time.Time { return now })
	h := newTestHandler(t, NewLogNotifier(nil), limiter)
	body := `{"name":"A","email":"a@b.com","message":"hi"}`

	require.Equal(t, http.StatusOK, post(h, body).Code)
	require.Equal(t, http.StatusOK, post(h, body).Code)
	rec := post(h, body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"error":"Too Many Requests"}`, rec.Body.String())

	now = now.Add(2 * time.Minute)
	require.Equal(t, http.StatusOK, post(h, body).Code)
}

func TestWhitespaceOnlyFieldsAreMissing(t *testing.T) {
	s := Submission{Name: " \t", Email: "\n", Message: "hi"}
	require.ErrorIs(t, s.Validate(), ErrMissingFields)
	require.Equal(t, []string{"name", "email"}, s.Missing())

	s = Submission{Name: " A ", Email: "a@b.com", Message: " hi"}
	require.NoError(t, s.Validate())
	require.Empty(t, s.Missing())

	rec := post(newTestHandler(t, NewLogNotifier(nil), nil), `{"name":"   ","email":"a@b.com","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Missing required fields"}`, rec.Body.String())
}

func TestDecodeAcceptsNonStringValues(t *testing.T) {
	s, err := Decode(strings.NewReader(`{"name":"A","email":"a@b.com","message":"hi","quantity":40,"phone":null,"offerId":true,"gsmRange":[200, 300]}`), 0)
	require.NoError(t, err)
	require.Equal(t, Submission{
		Name:     "A",
		Email:    "a@b.com",
		Message:  "hi",
		Quantity: "40",
		OfferID:  "true",
		GSMRange: "[200,300]",
	}, s)

	var got Submission
	capture := NotifierFunc(func(_ context.Context, _ string, s Submission) error {
		got = s
		return nil
	})
	rec := post(newTestHandler(t, capture, nil), `{"name":"A","email":"a@b.com","message":"hi","quantity":12.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "12.5", got.Quantity)
}

func TestDecodeBodyLimit(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name":"`+strings.Repeat("x", 100)+`"}`), 32)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLogNotifierSanitizes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))
	err := n.Notify(context.Background(), "01TEST", Submission{Name: "<b>Ayşe</b>", Email: "a@b.com", Message: "<script>x</script>hello"})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "Ayşe", fields["name"])
	require.Equal(t, "hello", fields["message"])
	require.Equal(t, "01TEST", fields["submission_id"])
}

func TestNilLimiterAllows(t *testing.T) {
	var l *FixedWindowLimiter = NewFixedWindowLimiter(0, time.Minute, nil)
	require.Nil(t, l)
	require.True(t, l.Allow("x"))
}

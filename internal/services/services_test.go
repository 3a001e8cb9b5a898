package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"leadcapture/internal/config"
	"leadcapture/internal/notify"
	"leadcapture/internal/ratelimit"
	"leadcapture/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

const adminEmail = "admin@example.com"

type fakeMailer struct {
	mu     sync.Mutex
	sent   []notify.Message
	fail   bool
	onSend func()
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.onSend != nil {
		m.onSend()
	}
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

type harness struct {
	handler http.Handler
	db      *gorm.DB
	mailer  *fakeMailer
	hook    *test.Hook
}

type option func(*Options)

func withLimiter(l *ratelimit.Limiter) option {
	return func(o *Options) { o.Limiter = l }
}

func withDB(db *gorm.DB) option {
	return func(o *Options) { o.DB = db }
}

func withCORS(c config.CORSConfig) option {
	return func(o *Options) { o.CORS = c }
}

func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()

	log, hook := testutil.NullLogger()
	mailer := &fakeMailer{}
	notifier := notify.New(mailer, notify.DefaultRegistry(notify.Brand{Name: "Lead Capture", URL: "https://leads.example.com"}),
		notify.Options{AdminEmail: adminEmail, AdminName: "Team", Timeout: time.Second, Now: func() time.Time { return fixedNow }}, log)

	o := Options{
		Notifier: notifier,
		App: config.AppConfig{
			Name:        "Lead Capture",
			Version:     "1.2.3",
			Environment: "test",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		},
		Logger: log,
		Now:    func() time.Time { return fixedNow },
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.DB == nil {
		o.DB = testutil.SetupTestDB(t)
	}

	return &harness{handler: NewRouter(o), db: o.DB, mailer: mailer, hook: hook}
}

type envelope struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	Timestamp        string          `json:"timestamp"`
	Data             json.RawMessage `json:"data"`
	Meta             *Meta           `json:"meta"`
	ValidationErrors []string        `json:"validation_errors"`
}

func (h *harness) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "services-test/1.0")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NotEmpty(t, env.Data, "response has no data")
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func hasEntry(hook *test.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

func contactBody() map[string]any {
	return map[string]any{
		"name":    "Jane Doe",
		"email":   "  Jane@Example.com ",
		"phone":   "+1 555 123 4567",
		"subject": "Website is down",
		"message": "This is urgent, our landing page stopped loading.",
	}
}

func consultationBody() map[string]any {
	return map[string]any{
		"name":                "Sam Rivera",
		"email":               "sam@acme.io",
		"phone":               "+1 555 987 6543",
		"company":             "Acme Corp",
		"industry":            "Technology",
		"business_size":       "11-50",
		"current_challenges":  "Leads arrive by email and get lost.",
		"interested_services": []string{"ai_websites", "smart_chatbots", "ai_websites"},
		"budget":              "15k_50k",
		"timeline":            "3_months",
	}
}

func inquiryBody() map[string]any {
	return map[string]any{
		"name":                "Alex Chen",
		"email":               "alex@shop.example",
		"service_type":        "ai_website",
		"project_description": "Rebuild our storefront with an AI product finder.",
		"budget":              "5k_15k",
		"timeline":            "asap",
		"additional_services": []string{"email_marketing"},
	}
}

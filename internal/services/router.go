// Package services exposes the submission API over HTTP.
package services

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
	"gorm.io/gorm"

	"leadcapture/internal/config"
	"leadcapture/internal/metrics"
	"leadcapture/internal/notify"
	"leadcapture/internal/ratelimit"
	"leadcapture/internal/scoring"
	"leadcapture/internal/store"
)

// Notifier sends the emails that follow an accepted submission.
type Notifier interface {
	Notify(ctx context.Context, sub notify.Submission, w notify.StatusWriter) notify.Result
}

// Options wires the API to its collaborators.
type Options struct {
	DB       *gorm.DB
	Notifier Notifier
	// Limiter guards every /api/v1 route. Nil disables rate limiting.
	Limiter    *ratelimit.Limiter
	App        config.AppConfig
	CORS       config.CORSConfig
	TrustProxy bool
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

// API holds the handlers for every route.
type API struct {
	db            *gorm.DB
	contacts      *store.Contacts
	consultations *store.Consultations
	inquiries     *store.ServiceInquiries
	notifier      Notifier
	scorer        scoring.Scorer
	app           config.AppConfig
	trustProxy    bool
	mux           goahttp.Muxer
	log           *logrus.Entry
	now           func() time.Time
}

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
	limited bool
}

var routedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// NewRouter builds the full HTTP handler: routes, rate limiting, metrics,
// request ids, logging, CORS and security headers.
func NewRouter(opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	a := &API{
		db:            opts.DB,
		contacts:      store.NewContacts(opts.DB),
		consultations: store.NewConsultations(opts.DB),
		inquiries:     store.NewServiceInquiries(opts.DB),
		notifier:      opts.Notifier,
		scorer:        scoring.Default,
		app:           opts.App,
		trustProxy:    opts.TrustProxy,
		mux:           goahttp.NewMuxer(),
		log:           opts.Logger.WithField("component", "http"),
		now:           opts.Now,
	}

	limit := func(h http.Handler) http.Handler { return h }
	if opts.Limiter != nil {
		limit = ratelimit.Middleware(ratelimit.Options{
			Limiter:            opts.Limiter,
			TrustXForwardedFor: opts.TrustProxy,
			OnDenied: func(w http.ResponseWriter, r *http.Request, _ ratelimit.Decision) {
				a.respondError(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			},
			Logger: opts.Logger,
		})
	}
	a.mount(a.routes(), limit)

	var h http.Handler = a.mux
	h = metrics.PrometheusMiddleware(h, RouteLabel)
	h = requestLogging(h, a.log)
	h = trackRoute(h)
	h = middleware.PopulateRequestContext()(h)
	h = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(h)
	h = cors(h, opts.CORS, opts.App.Debug)
	h = securityHeaders(h, opts.App.Debug)
	return h
}

func (a *API) routes() []route {
	const v1 = "/api/v1"
	return []route{
		{http.MethodGet, "/health", a.health, false},
		{http.MethodGet, "/metrics", promhttp.Handler().ServeHTTP, false},

		{http.MethodPost, v1 + "/contact", a.createContact, true},
		{http.MethodGet, v1 + "/contact", a.listContacts, true},
		{http.MethodGet, v1 + "/contact/stats/summary", a.contactStats, true},
		{http.MethodGet, v1 + "/contact/{id}", a.getContact, true},
		{http.MethodPut, v1 + "/contact/{id}/status", a.updateContactStatus, true},

		{http.MethodPost, v1 + "/consultation", a.createConsultation, true},
		{http.MethodGet, v1 + "/consultation", a.listConsultations, true},
		{http.MethodGet, v1 + "/consultation/stats/summary", a.consultationStats, true},
		{http.MethodGet, v1 + "/consultation/stats/leads", a.leadStats, true},
		{http.MethodGet, v1 + "/consultation/{id}", a.getConsultation, true},
		{http.MethodPut, v1 + "/consultation/{id}/status", a.updateConsultationStatus, true},

		{http.MethodPost, v1 + "/services", a.createInquiry, true},
		{http.MethodGet, v1 + "/services", a.listInquiries, true},
		{http.MethodGet, v1 + "/services/types", a.serviceTypes, true},
		{http.MethodGet, v1 + "/services/stats/summary", a.inquiryStats, true},
		{http.MethodGet, v1 + "/services/stats/by-service", a.inquiryStatsByService, true},
		{http.MethodGet, v1 + "/services/{id}", a.getInquiry, true},
		{http.MethodPut, v1 + "/services/{id}/status", a.updateInquiryStatus, true},
	}
}

// mount registers every route, answers unregistered methods on known paths
// with 405 and everything else with 404.
func (a *API) mount(routes []route, limit func(http.Handler) http.Handler) {
	byPattern := map[string][]string{}
	var patterns []string
	for _, rt := range routes {
		var h http.Handler = rt.handler
		if rt.limited {
			h = limit(h)
		}
		a.mux.Handle(rt.method, rt.pattern, labelled(rt.pattern, h))
		if _, ok := byPattern[rt.pattern]; !ok {
			patterns = append(patterns, rt.pattern)
		}
		byPattern[rt.pattern] = append(byPattern[rt.pattern], rt.method)
	}

	for _, pattern := range patterns {
		allowed := byPattern[pattern]
		for _, m := range routedMethods {
			if !slices.Contains(allowed, m) {
				a.mux.Handle(m, pattern, labelled(pattern, a.methodNotAllowed(allowed)))
			}
		}
	}
	for _, m := range routedMethods {
		a.mux.Handle(m, "/{*path}", a.endpointNotFound)
	}
}

func (a *API) methodNotAllowed(allowed []string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		a.respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

func (a *API) endpointNotFound(w http.ResponseWriter, r *http.Request) {
	a.respondError(w, r, http.StatusNotFound, "Endpoint not found", nil)
}

func labelled(pattern string, h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := r.Context().Value(routeKey{}).(*string); ok {
			*p = pattern
		}
		h.ServeHTTP(w, r)
	}
}

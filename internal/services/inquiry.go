package services

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"leadcapture/internal/domain"
	"leadcapture/internal/metrics"
	"leadcapture/internal/notify"
	"leadcapture/internal/ratelimit"
	"leadcapture/internal/scoring"
	"leadcapture/internal/store"
	"leadcapture/internal/validation"
	apperrors "leadcapture/pkg/errors"
)

type inquiryReceipt struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	ServiceType    domain.ServiceType   `json:"service_type"`
	Status         domain.InquiryStatus `json:"status"`
	Priority       domain.Priority      `json:"priority"`
	EstimatedValue float64              `json:"estimated_value"`
	EmailSent      bool                 `json:"email_sent"`
	AdminNotified  bool                 `json:"admin_notified"`
	FollowUpDate   *time.Time           `json:"follow_up_date"`
	SubmittedAt    time.Time            `json:"submitted_at"`
}

type inquiryStatusResult struct {
	ID          string               `json:"id"`
	Status      domain.InquiryStatus `json:"status"`
	QuoteAmount *float64             `json:"quote_amount"`
	QuoteSent   bool                 `json:"quote_sent"`
	AssignedTo  string               `json:"assigned_to"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// createInquiry handles POST /api/v1/services
func (a *API) createInquiry(w http.ResponseWriter, r *http.Request) {
	var p ServiceInquiryPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	in := p.inquiry()
	if errs := validation.ServiceInquiry(in); len(errs) > 0 {
		a.fail(w, r, apperrors.Validation(errs))
		return
	}

	in.EstimatedValue = a.scorer.EstimatedValue(scoring.ValueInput{
		ServiceType:        in.ServiceType,
		Budget:             in.Budget,
		Timeline:           in.Timeline,
		AdditionalServices: in.AdditionalServices,
	})
	in.Priority = scoring.InquiryPriority(in.EstimatedValue, in.Timeline)

	now := a.now()
	followUp := scoring.InquiryFollowUp(now, in.Priority)
	in.CreatedAt = now
	in.FollowUpDate = &followUp
	in.IPAddress = ratelimit.ClientIP(r, a.trustProxy)
	in.UserAgent = r.UserAgent()

	ctx := r.Context()
	if err := a.inquiries.Create(ctx, in); err != nil {
		a.fail(w, r, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save service inquiry", err))
		return
	}
	metrics.RecordSubmission(string(notify.KindService))
	a.log.WithFields(requestFields(r)).WithFields(logrus.Fields{
		"id":              in.ID,
		"service_type":    in.ServiceType,
		"estimated_value": in.EstimatedValue,
	}).Info("service inquiry submitted")

	if a.notifier != nil {
		res := a.notifier.Notify(ctx, notify.FromServiceInquiry(in), a.inquiries)
		in.Apply(res.Delivery())
	}

	a.respond(w, r, http.StatusCreated, "Service inquiry submitted successfully", inquiryReceipt{
		ID:             in.ID,
		Name:           in.Name,
		Email:          in.Email,
		ServiceType:    in.ServiceType,
		Status:         in.Status,
		Priority:       in.Priority,
		EstimatedValue: in.EstimatedValue,
		EmailSent:      in.EmailSent,
		AdminNotified:  in.AdminNotified,
		FollowUpDate:   in.FollowUpDate,
		SubmittedAt:    in.CreatedAt,
	}, nil)
}

// listInquiries handles GET /api/v1/services
func (a *API) listInquiries(w http.ResponseWriter, r *http.Request) {
	items, page, err := a.inquiries.List(r.Context(), listQuery(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Service inquiries retrieved", items, &Meta{Pagination: page})
}

// getInquiry handles GET /api/v1/services/{id}
func (a *API) getInquiry(w http.ResponseWriter, r *http.Request) {
	in, err := a.inquiries.Get(r.Context(), a.mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, lookupError(err, "Service inquiry"))
		return
	}
	a.respond(w, r, http.StatusOK, "Service inquiry retrieved", in, nil)
}

// updateInquiryStatus handles PUT /api/v1/services/{id}/status
func (a *API) updateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var p InquiryStatusPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	ctx := r.Context()
	id := a.mux.Vars(r)["id"]
	if _, err := a.inquiries.Get(ctx, id); err != nil {
		a.fail(w, r, lookupError(err, "Service inquiry"))
		return
	}

	status := domain.InquiryStatus(p.Status)
	if !status.Valid() {
		a.fail(w, r, invalidStatus(domain.InquiryStatuses))
		return
	}

	in, err := a.inquiries.UpdateStatus(ctx, id, store.InquiryUpdate{
		Status:      status,
		QuoteAmount: p.QuoteAmount,
		AssignedTo:  optionalText(p.AssignedTo),
		Note:        validation.Text(p.Notes),
		At:          a.now(),
	})
	if err != nil {
		a.fail(w, r, lookupError(err, "Service inquiry"))
		return
	}

	a.respond(w, r, http.StatusOK, "Service inquiry status updated successfully", inquiryStatusResult{
		ID:          in.ID,
		Status:      in.Status,
		QuoteAmount: in.QuoteAmount,
		QuoteSent:   in.QuoteSent,
		AssignedTo:  in.AssignedTo,
		UpdatedAt:   in.UpdatedAt,
	}, nil)
}

// inquiryStats handles GET /api/v1/services/stats/summary
func (a *API) inquiryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.inquiries.Stats(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Service inquiry statistics retrieved", stats, nil)
}

// inquiryStatsByService handles GET /api/v1/services/stats/by-service
func (a *API) inquiryStatsByService(w http.ResponseWriter, r *http.Request) {
	rows, err := a.inquiries.StatsByService(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Service statistics by type retrieved", rows, nil)
}

// serviceTypes handles GET /api/v1/services/types
func (a *API) serviceTypes(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, "Service types retrieved", domain.Catalog(), nil)
}

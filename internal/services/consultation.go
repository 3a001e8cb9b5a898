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

type consultationReceipt struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Email         string                    `json:"email"`
	Company       string                    `json:"company"`
	Status        domain.ConsultationStatus `json:"status"`
	Priority      domain.Priority           `json:"priority"`
	LeadScore     int                       `json:"lead_score"`
	EmailSent     bool                      `json:"email_sent"`
	AdminNotified bool                      `json:"admin_notified"`
	FollowUpDate  *time.Time                `json:"follow_up_date"`
	SubmittedAt   time.Time                 `json:"submitted_at"`
}

type consultationStatusResult struct {
	ID                string                    `json:"id"`
	Status            domain.ConsultationStatus `json:"status"`
	ScheduledDate     *time.Time                `json:"scheduled_date"`
	ConsultationNotes string                    `json:"consultation_notes"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// createConsultation handles POST /api/v1/consultation
func (a *API) createConsultation(w http.ResponseWriter, r *http.Request) {
	var p ConsultationPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	c := p.consultation()
	if errs := validation.Consultation(c); len(errs) > 0 {
		a.fail(w, r, apperrors.Validation(errs))
		return
	}

	c.LeadScore = a.scorer.LeadScore(scoring.LeadInput{
		Budget:       c.Budget,
		Timeline:     c.Timeline,
		Services:     len(c.InterestedServices),
		BusinessSize: c.BusinessSize,
		Industry:     c.Industry,
	})
	c.Priority = scoring.ConsultationPriority(c.LeadScore, c.Timeline)

	now := a.now()
	followUp := scoring.ConsultationFollowUp(now, c.Priority)
	c.CreatedAt = now
	c.FollowUpDate = &followUp
	c.FollowUpRequired = true
	c.IPAddress = ratelimit.ClientIP(r, a.trustProxy)
	c.UserAgent = r.UserAgent()

	ctx := r.Context()
	if err := a.consultations.Create(ctx, c); err != nil {
		a.fail(w, r, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save consultation", err))
		return
	}
	metrics.RecordSubmission(string(notify.KindConsultation))
	a.log.WithFields(requestFields(r)).WithFields(logrus.Fields{
		"id":         c.ID,
		"lead_score": c.LeadScore,
		"priority":   c.Priority,
	}).Info("consultation booked")

	if a.notifier != nil {
		res := a.notifier.Notify(ctx, notify.FromConsultation(c), a.consultations)
		c.Apply(res.Delivery())
	}

	a.respond(w, r, http.StatusCreated, "Free consultation booked successfully", consultationReceipt{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Company:       c.Company,
		Status:        c.Status,
		Priority:      c.Priority,
		LeadScore:     c.LeadScore,
		EmailSent:     c.EmailSent,
		AdminNotified: c.AdminNotified,
		FollowUpDate:  c.FollowUpDate,
		SubmittedAt:   c.CreatedAt,
	}, nil)
}

// listConsultations handles GET /api/v1/consultation
func (a *API) listConsultations(w http.ResponseWriter, r *http.Request) {
	items, page, err := a.consultations.List(r.Context(), listQuery(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Consultations retrieved", items, &Meta{Pagination: page})
}

// getConsultation handles GET /api/v1/consultation/{id}
func (a *API) getConsultation(w http.ResponseWriter, r *http.Request) {
	c, err := a.consultations.Get(r.Context(), a.mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, lookupError(err, "Consultation"))
		return
	}
	a.respond(w, r, http.StatusOK, "Consultation retrieved", c, nil)
}

// updateConsultationStatus handles PUT /api/v1/consultation/{id}/status
func (a *API) updateConsultationStatus(w http.ResponseWriter, r *http.Request) {
	var p ConsultationStatusPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	ctx := r.Context()
	id := a.mux.Vars(r)["id"]
	if _, err := a.consultations.Get(ctx, id); err != nil {
		a.fail(w, r, lookupError(err, "Consultation"))
		return
	}

	status := domain.ConsultationStatus(p.Status)
	if !status.Valid() {
		a.fail(w, r, invalidStatus(domain.ConsultationStatuses))
		return
	}

	c, err := a.consultations.UpdateStatus(ctx, id, store.ConsultationUpdate{
		Status:            status,
		ScheduledDate:     p.ScheduledDate,
		ConsultationNotes: optionalText(p.ConsultationNotes),
	})
	if err != nil {
		a.fail(w, r, lookupError(err, "Consultation"))
		return
	}

	a.respond(w, r, http.StatusOK, "Consultation status updated successfully", consultationStatusResult{
		ID:                c.ID,
		Status:            c.Status,
		ScheduledDate:     c.ScheduledDate,
		ConsultationNotes: c.ConsultationNotes,
		UpdatedAt:         c.UpdatedAt,
	}, nil)
}

// consultationStats handles GET /api/v1/consultation/stats/summary
func (a *API) consultationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.consultations.Stats(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Consultation statistics retrieved", stats, nil)
}

// leadStats handles GET /api/v1/consultation/stats/leads
func (a *API) leadStats(w http.ResponseWriter, r *http.Request) {
	buckets, err := a.consultations.LeadStats(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Lead statistics retrieved", buckets, nil)
}

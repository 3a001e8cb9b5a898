package services

import (
	"net/http"
	"time"

	"leadcapture/internal/domain"
	"leadcapture/internal/metrics"
	"leadcapture/internal/notify"
	"leadcapture/internal/ratelimit"
	"leadcapture/internal/scoring"
	"leadcapture/internal/store"
	"leadcapture/internal/validation"
	apperrors "leadcapture/pkg/errors"
)

type contactReceipt struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Subject       string               `json:"subject"`
	Status        domain.ContactStatus `json:"status"`
	Priority      domain.Priority      `json:"priority"`
	EmailSent     bool                 `json:"email_sent"`
	AdminNotified bool                 `json:"admin_notified"`
	SubmittedAt   time.Time            `json:"submitted_at"`
}

type contactStatusResult struct {
	ID        string               `json:"id"`
	Status    domain.ContactStatus `json:"status"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// createContact handles POST /api/v1/contact
func (a *API) createContact(w http.ResponseWriter, r *http.Request) {
	var p ContactPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	c := p.contact()
	if errs := validation.Contact(c); len(errs) > 0 {
		a.fail(w, r, apperrors.Validation(errs))
		return
	}

	c.Priority = scoring.ContactPriority(c.Subject, c.Message)
	c.IPAddress = ratelimit.ClientIP(r, a.trustProxy)
	c.UserAgent = r.UserAgent()
	c.CreatedAt = a.now()

	ctx := r.Context()
	if err := a.contacts.Create(ctx, c); err != nil {
		a.fail(w, r, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to save contact", err))
		return
	}
	metrics.RecordSubmission(string(notify.KindContact))
	a.log.WithFields(requestFields(r)).WithField("id", c.ID).Info("contact submitted")

	if a.notifier != nil {
		res := a.notifier.Notify(ctx, notify.FromContact(c), a.contacts)
		c.Apply(res.Delivery())
	}

	a.respond(w, r, http.StatusCreated, "Contact form submitted successfully", contactReceipt{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Subject:       c.Subject,
		Status:        c.Status,
		Priority:      c.Priority,
		EmailSent:     c.EmailSent,
		AdminNotified: c.AdminNotified,
		SubmittedAt:   c.CreatedAt,
	}, nil)
}

// listContacts handles GET /api/v1/contact
func (a *API) listContacts(w http.ResponseWriter, r *http.Request) {
	items, page, err := a.contacts.List(r.Context(), listQuery(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Contacts retrieved", items, &Meta{Pagination: page})
}

// getContact handles GET /api/v1/contact/{id}
func (a *API) getContact(w http.ResponseWriter, r *http.Request) {
	c, err := a.contacts.Get(r.Context(), a.mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, lookupError(err, "Contact"))
		return
	}
	a.respond(w, r, http.StatusOK, "Contact retrieved", c, nil)
}

// updateContactStatus handles PUT /api/v1/contact/{id}/status
func (a *API) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	var p ContactStatusPayload
	if err := decode(w, r, &p); err != nil {
		a.fail(w, r, err)
		return
	}

	ctx := r.Context()
	id := a.mux.Vars(r)["id"]
	if _, err := a.contacts.Get(ctx, id); err != nil {
		a.fail(w, r, lookupError(err, "Contact"))
		return
	}

	status := domain.ContactStatus(p.Status)
	if !status.Valid() {
		a.fail(w, r, invalidStatus(domain.ContactStatuses))
		return
	}

	c, err := a.contacts.UpdateStatus(ctx, id, store.ContactUpdate{
		Status: status,
		Note:   validation.Text(p.Notes),
		At:     a.now(),
	})
	if err != nil {
		a.fail(w, r, lookupError(err, "Contact"))
		return
	}

	a.respond(w, r, http.StatusOK, "Contact status updated successfully", contactStatusResult{
		ID:        c.ID,
		Status:    c.Status,
		UpdatedAt: c.UpdatedAt,
	}, nil)
}

// contactStats handles GET /api/v1/contact/stats/summary
func (a *API) contactStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.contacts.Stats(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, "Contact statistics retrieved", stats, nil)
}

package services

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	goahttp "goa.design/goa/v3/http"

	"leadcapture/internal/domain"
	"leadcapture/internal/store"
	"leadcapture/internal/validation"
)

// ContactPayload is the body of POST /api/v1/contact.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

func (p ContactPayload) contact() *domain.Contact {
	return &domain.Contact{
		Name:    validation.Text(p.Name),
		Email:   validation.Email(p.Email),
		Phone:   validation.Text(p.Phone),
		Company: validation.Text(p.Company),
		Subject: validation.Text(p.Subject),
		Message: validation.Text(p.Message),
		Source:  validation.Text(p.Source),
	}
}

// ContactStatusPayload is the body of PUT /api/v1/contact/{id}/status.
type ContactStatusPayload struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ConsultationPayload is the body of POST /api/v1/consultation.
type ConsultationPayload struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Company                string   `json:"company"`
	Industry               string   `json:"industry"`
	BusinessSize           string   `json:"business_size"`
	CurrentChallenges      string   `json:"current_challenges"`
	InterestedServices     []string `json:"interested_services"`
	Budget                 string   `json:"budget"`
	Timeline               string   `json:"timeline"`
	PreferredContactMethod string   `json:"preferred_contact_method"`
	PreferredTime          string   `json:"preferred_time"`
	Timezone               string   `json:"timezone"`
	AdditionalNotes        string   `json:"additional_notes"`
}

func (p ConsultationPayload) consultation() *domain.Consultation {
	return &domain.Consultation{
		Name:                   validation.Text(p.Name),
		Email:                  validation.Email(p.Email),
		Phone:                  validation.Text(p.Phone),
		Company:                validation.Text(p.Company),
		Industry:               validation.Text(p.Industry),
		BusinessSize:           domain.BusinessSize(validation.Text(p.BusinessSize)),
		CurrentChallenges:      validation.Text(p.CurrentChallenges),
		InterestedServices:     validation.List(p.InterestedServices),
		Budget:                 domain.Budget(validation.Text(p.Budget)),
		Timeline:               domain.Timeline(validation.Text(p.Timeline)),
		PreferredContactMethod: validation.Text(p.PreferredContactMethod),
		PreferredTime:          validation.Text(p.PreferredTime),
		Timezone:               validation.Text(p.Timezone),
		AdditionalNotes:        validation.Text(p.AdditionalNotes),
	}
}

// ConsultationStatusPayload is the body of PUT /api/v1/consultation/{id}/status.
// Absent fields are left unchanged.
type ConsultationStatusPayload struct {
	Status            string     `json:"status"`
	ScheduledDate     *time.Time `json:"scheduled_date"`
	ConsultationNotes *string    `json:"consultation_notes"`
}

// ServiceInquiryPayload is the body of POST /api/v1/services.
type ServiceInquiryPayload struct {
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Phone                string   `json:"phone"`
	Company              string   `json:"company"`
	ServiceType          string   `json:"service_type"`
	ProjectDescription   string   `json:"project_description"`
	Budget               string   `json:"budget"`
	Timeline             string   `json:"timeline"`
	CurrentWebsite       string   `json:"current_website"`
	CurrentChallenges    string   `json:"current_challenges"`
	SpecificRequirements []string `json:"specific_requirements"`
	TargetAudience       string   `json:"target_audience"`
	CompetitorWebsites   []string `json:"competitor_websites"`
	PreferredStyle       string   `json:"preferred_style"`
	AdditionalServices   []string `json:"additional_services"`
}

func (p ServiceInquiryPayload) inquiry() *domain.ServiceInquiry {
	return &domain.ServiceInquiry{
		Name:                 validation.Text(p.Name),
		Email:                validation.Email(p.Email),
		Phone:                validation.Text(p.Phone),
		Company:              validation.Text(p.Company),
		ServiceType:          domain.ServiceType(validation.Text(p.ServiceType)),
		ProjectDescription:   validation.Text(p.ProjectDescription),
		Budget:               domain.Budget(validation.Text(p.Budget)),
		Timeline:             domain.Timeline(validation.Text(p.Timeline)),
		CurrentWebsite:       validation.Text(p.CurrentWebsite),
		CurrentChallenges:    validation.Text(p.CurrentChallenges),
		SpecificRequirements: validation.List(p.SpecificRequirements),
		TargetAudience:       validation.Text(p.TargetAudience),
		CompetitorWebsites:   validation.List(p.CompetitorWebsites),
		PreferredStyle:       validation.Text(p.PreferredStyle),
		AdditionalServices:   validation.List(p.AdditionalServices),
	}
}

// InquiryStatusPayload is the body of PUT /api/v1/services/{id}/status.
// Absent fields are left unchanged.
type InquiryStatusPayload struct {
	Status      string   `json:"status"`
	QuoteAmount *float64 `json:"quote_amount"`
	AssignedTo  *string  `json:"assigned_to"`
	Notes       string   `json:"notes"`
}

// maxBodyBytes bounds every request body.
const maxBodyBytes = 64 << 10

// decode reads a JSON body into v. Any malformed or empty body is an input
// error, and a body over maxBodyBytes is rejected before it is fully read.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := goahttp.RequestDecoder(r).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return errInvalidJSON
	}
	return nil
}

func listQuery(r *http.Request) store.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return store.ListQuery{
		Page:        page,
		Limit:       limit,
		Status:      q.Get("status"),
		Priority:    q.Get("priority"),
		ServiceType: q.Get("service_type"),
		SortBy:      q.Get("sortBy"),
		SortOrder:   q.Get("sortOrder"),
	}
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := validation.Text(*s)
	return &v
}

package notify

import (
	"strconv"
	"strings"

	"leadcapture/internal/domain"
)

// FromContact builds the notification view of a contact submission.
func FromContact(c *domain.Contact) Submission {
	details := []Detail{
		{Label: "Subject", Value: c.Subject},
		{Label: "Message", Value: c.Message},
	}
	if c.Company != "" {
		details = append(details, Detail{Label: "Company", Value: c.Company})
	}
	if c.Phone != "" {
		details = append(details, Detail{Label: "Phone", Value: c.Phone})
	}
	return Submission{
		Kind:        KindContact,
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		Summary:     c.Subject,
		Message:     c.Message,
		Details:     details,
		Priority:    c.Priority,
		IPAddress:   c.IPAddress,
		SubmittedAt: c.CreatedAt,
	}
}

// FromConsultation builds the notification view of a consultation booking.
func FromConsultation(c *domain.Consultation) Submission {
	details := []Detail{
		{Label: "Company", Value: c.Company},
		{Label: "Industry", Value: orDefault(c.Industry, "Not specified")},
		{Label: "Business Size", Value: string(c.BusinessSize) + " employees"},
		{Label: "Budget", Value: humanBudget(string(c.Budget))},
		{Label: "Timeline", Value: humanTimeline(string(c.Timeline))},
		{Label: "Interested Services", Value: orDefault(strings.Join(c.InterestedServices, ", "), "None selected")},
		{Label: "Preferred Contact", Value: c.PreferredContactMethod},
		{Label: "Preferred Time", Value: c.PreferredTime},
	}
	if c.AdditionalNotes != "" {
		details = append(details, Detail{Label: "Notes", Value: c.AdditionalNotes})
	}
	return Submission{
		Kind:        KindConsultation,
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		Summary:     c.Company,
		Message:     c.CurrentChallenges,
		Details:     details,
		Priority:    c.Priority,
		Score:       strconv.Itoa(c.LeadScore),
		IPAddress:   c.IPAddress,
		SubmittedAt: c.CreatedAt,
	}
}

// FromServiceInquiry builds the notification view of a service inquiry.
func FromServiceInquiry(in *domain.ServiceInquiry) Submission {
	details := []Detail{
		{Label: "Service", Value: in.ServiceType.DisplayName()},
		{Label: "Budget", Value: humanBudget(string(in.Budget))},
		{Label: "Timeline", Value: humanTimeline(string(in.Timeline))},
		{Label: "Current Website", Value: orDefault(in.CurrentWebsite, "Not provided")},
	}
	if len(in.AdditionalServices) > 0 {
		details = append(details, Detail{Label: "Additional Services", Value: strings.Join(in.AdditionalServices, ", ")})
	}
	if len(in.SpecificRequirements) > 0 {
		details = append(details, Detail{Label: "Requirements", Value: strings.Join(in.SpecificRequirements, "; ")})
	}
	return Submission{
		Kind:        KindService,
		ID:          in.ID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Company:     in.Company,
		Summary:     in.ServiceType.DisplayName(),
		Message:     in.ProjectDescription,
		Details:     details,
		Priority:    in.Priority,
		Score:       strconv.FormatFloat(in.EstimatedValue, 'f', 2, 64),
		IPAddress:   in.IPAddress,
		SubmittedAt: in.CreatedAt,
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// humanBudget renders "15k_50k" as "15K-50K".
func humanBudget(b string) string {
	return strings.ToUpper(strings.ReplaceAll(b, "_", "-"))
}

// humanTimeline renders "3_months" as "3 months".
func humanTimeline(t string) string {
	return strings.ReplaceAll(t, "_", " ")
}

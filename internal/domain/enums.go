package domain

import "slices"

// Priority is the follow-up tier derived at creation time.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ContactStatus values
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// ContactStatuses lists every contact status in lifecycle order.
var ContactStatuses = []ContactStatus{ContactNew, ContactInProgress, ContactResolved, ContactClosed}

func (s ContactStatus) Valid() bool { return slices.Contains(ContactStatuses, s) }

// ConsultationStatus values
type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationScheduled ConsultationStatus = "scheduled"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
	ConsultationNoShow    ConsultationStatus = "no_show"
)

// ConsultationStatuses lists every consultation status in lifecycle order.
var ConsultationStatuses = []ConsultationStatus{
	ConsultationPending, ConsultationScheduled, ConsultationCompleted, ConsultationCancelled, ConsultationNoShow,
}

func (s ConsultationStatus) Valid() bool { return slices.Contains(ConsultationStatuses, s) }

// InquiryStatus values
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryReviewing  InquiryStatus = "reviewing"
	InquiryQuoted     InquiryStatus = "quoted"
	InquiryApproved   InquiryStatus = "approved"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryCompleted  InquiryStatus = "completed"
	InquiryCancelled  InquiryStatus = "cancelled"
)

// InquiryStatuses lists every service inquiry status in lifecycle order.
var InquiryStatuses = []InquiryStatus{
	InquiryNew, InquiryReviewing, InquiryQuoted, InquiryApproved, InquiryInProgress, InquiryCompleted, InquiryCancelled,
}

func (s InquiryStatus) Valid() bool { return slices.Contains(InquiryStatuses, s) }

// BusinessSize is the submitter's headcount band.
type BusinessSize string

var BusinessSizes = []BusinessSize{"1-10", "11-50", "51-200", "201-500", "500+"}

func (b BusinessSize) Valid() bool { return slices.Contains(BusinessSizes, b) }

// Budget is the submitter's declared budget band.
type Budget string

var Budgets = []Budget{"under_5k", "5k_15k", "15k_50k", "50k_100k", "100k_plus", "not_sure"}

func (b Budget) Valid() bool { return slices.Contains(Budgets, b) }

// Timeline is the submitter's desired start.
type Timeline string

const (
	TimelineASAP  Timeline = "asap"
	TimelineMonth Timeline = "1_month"
)

var Timelines = []Timeline{"asap", "1_month", "3_months", "6_months", "1_year", "flexible"}

func (t Timeline) Valid() bool { return slices.Contains(Timelines, t) }

// InterestedServices are the offerings a consultation can ask about.
var InterestedServices = []string{
	"ai_websites", "smart_chatbots", "email_marketing", "social_media_automation", "custom_ai_solutions", "consultation_only",
}

// ServiceType identifies the offering a service inquiry is about.
type ServiceType string

const (
	ServiceAIWebsite      ServiceType = "ai_website"
	ServiceSmartChatbot   ServiceType = "smart_chatbot"
	ServiceEmailMarketing ServiceType = "email_marketing"
	ServiceSocialMedia    ServiceType = "social_media_automation"
	ServiceCustomAI       ServiceType = "custom_ai_solution"
	ServiceConsultation   ServiceType = "consultation"
)

var ServiceTypes = []ServiceType{
	ServiceAIWebsite, ServiceSmartChatbot, ServiceEmailMarketing, ServiceSocialMedia, ServiceCustomAI, ServiceConsultation,
}

func (s ServiceType) Valid() bool { return slices.Contains(ServiceTypes, s) }

// Strings converts a typed enum list to plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

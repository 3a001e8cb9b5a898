// Package scoring derives lead score, priority, estimated value and follow-up
// dates from submitted fields. Every function is pure.
package scoring

import (
	"math"
	"strings"
	"time"

	"leadcapture/internal/domain"
)

const day = 24 * time.Hour

// Scorer evaluates submissions against a fixed set of tables.
type Scorer struct {
	tables Tables
}

// New returns a Scorer over t.
func New(t Tables) Scorer {
	return Scorer{tables: t}
}

// Default is the Scorer over DefaultTables.
var Default = New(DefaultTables())

// LeadInput is the subset of a consultation the lead score depends on.
type LeadInput struct {
	Budget       domain.Budget
	Timeline     domain.Timeline
	Services     int
	BusinessSize domain.BusinessSize
	Industry     string
}

// LeadScore returns the consultation lead score in [0,100].
func (s Scorer) LeadScore(in LeadInput) int {
	score := float64(baseLeadScore)
	score += 0.3 * lookup(s.tables.budgetScore, in.Budget, defaultBandScore)
	score += 0.2 * lookup(s.tables.timelineScore, in.Timeline, defaultBandScore)
	score += float64(perServiceScore * in.Services)
	score += 0.2 * lookup(s.tables.sizeScore, in.BusinessSize, defaultBandScore)
	if s.tables.industries[strings.ToLower(strings.TrimSpace(in.Industry))] {
		score += industryBonus
	}
	return clamp(int(math.Round(score)), 0, 100)
}

// ConsultationPriority tiers a consultation by score and timeline.
func ConsultationPriority(score int, timeline domain.Timeline) domain.Priority {
	switch {
	case score >= 80 || timeline == domain.TimelineASAP:
		return domain.PriorityHigh
	case score >= 60 || timeline == domain.TimelineMonth:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// ConsultationFollowUp returns the follow-up date for a consultation created at createdAt.
func ConsultationFollowUp(createdAt time.Time, p domain.Priority) time.Time {
	if p == domain.PriorityHigh {
		return createdAt.Add(3 * day)
	}
	return createdAt.Add(7 * day)
}

// ValueInput is the subset of a service inquiry the estimate depends on.
type ValueInput struct {
	ServiceType        domain.ServiceType
	Budget             domain.Budget
	Timeline           domain.Timeline
	AdditionalServices []string
}

// EstimatedValue returns the deal-size estimate rounded to cents.
func (s Scorer) EstimatedValue(in ValueInput) float64 {
	value := s.tables.BaseValue(in.ServiceType) *
		lookup(s.tables.budgetFactor, in.Budget, defaultBudgetFactor) *
		lookup(s.tables.timelineFactor, in.Timeline, defaultTimelineFactor)
	for _, addOn := range in.AdditionalServices {
		value += s.tables.addOnValue[addOn]
	}
	return math.Round(value*100) / 100
}

// InquiryPriority tiers a service inquiry by value and timeline.
func InquiryPriority(value float64, timeline domain.Timeline) domain.Priority {
	switch {
	case value >= 50000 || timeline == domain.TimelineASAP:
		return domain.PriorityHigh
	case value >= 20000 || timeline == domain.TimelineMonth:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// InquiryFollowUp returns the follow-up date for an inquiry created at createdAt.
func InquiryFollowUp(createdAt time.Time, p domain.Priority) time.Time {
	switch p {
	case domain.PriorityHigh:
		return createdAt.Add(day)
	case domain.PriorityMedium:
		return createdAt.Add(3 * day)
	default:
		return createdAt.Add(7 * day)
	}
}

var (
	urgentKeywords = []string{"urgent", "asap", "emergency", "critical", "immediately"}
	highKeywords   = []string{"important", "priority", "soon", "quickly"}
)

// ContactPriority classifies a contact message by keyword. Matching is on
// substrings of the lower-cased message and subject.
func ContactPriority(subject, message string) domain.Priority {
	if message == "" {
		return domain.PriorityMedium
	}
	text := strings.ToLower(message + " " + subject)
	if containsAny(text, urgentKeywords) {
		return domain.PriorityUrgent
	}
	if containsAny(text, highKeywords) {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

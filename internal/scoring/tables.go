package scoring

import "leadcapture/internal/domain"

// Tables holds the weights every scoring function reads. The default tables are
// unexported and only reachable through lookups, so they cannot be mutated.
type Tables struct {
	budgetScore    map[domain.Budget]float64
	timelineScore  map[domain.Timeline]float64
	sizeScore      map[domain.BusinessSize]float64
	baseValue      map[domain.ServiceType]float64
	budgetFactor   map[domain.Budget]float64
	timelineFactor map[domain.Timeline]float64
	addOnValue     map[string]float64
	industries     map[string]bool
}

const (
	baseLeadScore         = 50
	defaultBandScore      = 30
	industryBonus         = 10
	perServiceScore       = 5
	defaultBaseValue      = 10000
	defaultBudgetFactor   = 0.8
	defaultTimelineFactor = 1.0
)

// DefaultTables returns the production weights.
func DefaultTables() Tables {
	return Tables{
		budgetScore: map[domain.Budget]float64{
			"under_5k":  20,
			"5k_15k":    40,
			"15k_50k":   70,
			"50k_100k":  90,
			"100k_plus": 100,
			"not_sure":  30,
		},
		timelineScore: map[domain.Timeline]float64{
			"asap":     100,
			"1_month":  80,
			"3_months": 60,
			"6_months": 40,
			"1_year":   20,
			"flexible": 30,
		},
		sizeScore: map[domain.BusinessSize]float64{
			"1-10":    30,
			"11-50":   50,
			"51-200":  70,
			"201-500": 85,
			"500+":    100,
		},
		baseValue: map[domain.ServiceType]float64{
			domain.ServiceAIWebsite:      15000,
			domain.ServiceSmartChatbot:   8000,
			domain.ServiceEmailMarketing: 5000,
			domain.ServiceSocialMedia:    6000,
			domain.ServiceCustomAI:       25000,
			domain.ServiceConsultation:   2000,
		},
		budgetFactor: map[domain.Budget]float64{
			"under_5k":  0.3,
			"5k_15k":    0.6,
			"15k_50k":   1.0,
			"50k_100k":  1.5,
			"100k_plus": 2.0,
			"not_sure":  0.8,
		},
		timelineFactor: map[domain.Timeline]float64{
			"asap":     1.5,
			"1_month":  1.2,
			"3_months": 1.0,
			"6_months": 0.9,
			"1_year":   0.8,
			"flexible": 0.9,
		},
		addOnValue: map[string]float64{
			"seo":              3000,
			"content_creation": 2000,
			"maintenance":      1500,
			"training":         1000,
			"analytics":        1000,
			"hosting":          500,
		},
		industries: map[string]bool{
			"technology":    true,
			"finance":       true,
			"healthcare":    true,
			"manufacturing": true,
			"retail":        true,
		},
	}
}

func lookup[K comparable](m map[K]float64, k K, fallback float64) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return fallback
}

// BaseValue returns the catalog base price for a service type.
func (t Tables) BaseValue(s domain.ServiceType) float64 {
	return lookup(t.baseValue, s, defaultBaseValue)
}

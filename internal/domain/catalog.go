package domain

// ServiceInfo describes one offering in the public service catalog.
type ServiceInfo struct {
	ID          ServiceType `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   float64     `json:"base_price"`
	Features    []string    `json:"features"`
}

var catalog = []ServiceInfo{
	{
		ID:          ServiceAIWebsite,
		Name:        "AI-Powered Website",
		Description: "High-converting, SEO-optimized websites tailored for business growth",
		BasePrice:   15000,
		Features:    []string{"AI-driven design", "SEO optimization", "Mobile responsive", "CMS integration"},
	},
	{
		ID:          ServiceSmartChatbot,
		Name:        "Smart Chatbot",
		Description: "24/7 automated customer support for lead generation and customer service",
		BasePrice:   8000,
		Features:    []string{"Natural language processing", "24/7 availability", "Lead qualification", "Multi-platform integration"},
	},
	{
		ID:          ServiceEmailMarketing,
		Name:        "Email Marketing Automation",
		Description: "AI-driven campaigns to increase open rates and conversions",
		BasePrice:   5000,
		Features:    []string{"Automated campaigns", "Personalization", "Analytics", "A/B testing"},
	},
	{
		ID:          ServiceSocialMedia,
		Name:        "Social Media Automation",
		Description: "AI-generated captions and content scheduling for enhanced audience engagement",
		BasePrice:   6000,
		Features:    []string{"Content generation", "Scheduling", "Analytics", "Multi-platform support"},
	},
	{
		ID:          ServiceCustomAI,
		Name:        "Custom AI Solution",
		Description: "Tailored AI solutions designed specifically for your business needs",
		BasePrice:   25000,
		Features:    []string{"Custom development", "AI model training", "Integration support", "Ongoing maintenance"},
	},
	{
		ID:          ServiceConsultation,
		Name:        "AI Strategy Consultation",
		Description: "Expert consultation to develop your AI transformation roadmap",
		BasePrice:   2000,
		Features:    []string{"Business analysis", "AI strategy", "Implementation roadmap", "ROI projections"},
	},
}

// Catalog returns a copy of the service catalog in display order.
func Catalog() []ServiceInfo {
	out := make([]ServiceInfo, len(catalog))
	for i, s := range catalog {
		s.Features = append([]string(nil), s.Features...)
		out[i] = s
	}
	return out
}

// DisplayName returns the catalog name of s, or s itself when it is not listed.
func (s ServiceType) DisplayName() string {
	for _, info := range catalog {
		if info.ID == s {
			return info.Name
		}
	}
	return string(s)
}

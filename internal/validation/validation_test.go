package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadcapture/internal/domain"
)

func validContact() *domain.Contact {
	return &domain.Contact{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Website rebuild",
		Message: "We would like a quote for a new site.",
	}
}

func validConsultation() *domain.Consultation {
	return &domain.Consultation{
		Name:               "Grace Hopper",
		Email:              "grace@example.com",
		Phone:              "+1 (555) 123-4567",
		Company:            "Navy Labs",
		BusinessSize:       "51-200",
		CurrentChallenges:  "Manual lead qualification",
		InterestedServices: domain.StringList{"smart_chatbots"},
		Budget:             "15k_50k",
		Timeline:           "3_months",
	}
}

func validInquiry() *domain.ServiceInquiry {
	return &domain.ServiceInquiry{
		Name:               "Linus",
		Email:              "linus@example.org",
		ServiceType:        domain.ServiceAIWebsite,
		ProjectDescription: "A marketing site with an AI assistant.",
		Budget:             "5k_15k",
		Timeline:           "1_month",
	}
}

func TestValidSubmissionsPass(t *testing.T) {
	assert.Empty(t, Contact(validContact()))
	assert.Empty(t, Consultation(validConsultation()))
	assert.Empty(t, ServiceInquiry(validInquiry()))
}

func TestNameBoundaries(t *testing.T) {
	for n, ok := range map[int]bool{1: false, 2: true, 100: true, 101: false} {
		c := validContact()
		c.Name = strings.Repeat("é", n)
		errs := Contact(c)
		if ok {
			assert.Empty(t, errs, "length %d", n)
		} else {
			assert.Equal(t, []string{"Name must be between 2 and 100 characters"}, errs, "length %d", n)
		}
	}
}

func TestConsultationRequiresAService(t *testing.T) {
	c := validConsultation()
	c.InterestedServices = nil
	assert.Equal(t, []string{"Please select at least one service"}, Consultation(c))
}

func TestConsultationReportsEachUnknownService(t *testing.T) {
	c := validConsultation()
	c.InterestedServices = domain.StringList{"smart_chatbots", "teleportation", "time_travel"}
	assert.Equal(t, []string{
		"Invalid service selection: teleportation",
		"Invalid service selection: time_travel",
	}, Consultation(c))
}

func TestConsultationCollectsErrorsInFieldOrder(t *testing.T) {
	c := &domain.Consultation{InterestedServices: domain.StringList{}}
	assert.Equal(t, []string{
		"Name must be between 2 and 100 characters",
		"Please provide a valid email address",
		"Please provide a valid phone number",
		"Company name must be between 2 and 100 characters",
		"Please select a valid business size",
		"Current challenges must be between 10 and 1000 characters",
		"Please select at least one service",
		"Please select a valid budget range",
		"Please select a valid timeline",
	}, Consultation(c))
}

func TestValidationDoesNotMutate(t *testing.T) {
	c := validConsultation()
	c.InterestedServices = domain.StringList{"bogus"}
	before := *c
	Consultation(c)
	assert.Equal(t, before, *c)
}

func TestEmailRules(t *testing.T) {
	for email, ok := range map[string]bool{
		"a@b.co":          true,
		"first.last@x.io": true,
		"user@localhost":  false,
		"no-at.example":   false,
		"":                false,
	} {
		c := validContact()
		c.Email = email
		assert.Equal(t, ok, len(Contact(c)) == 0, email)
	}
}

func TestPhoneRules(t *testing.T) {
	c := validContact()
	c.Phone = "12-34"
	assert.Equal(t, []string{"Please provide a valid phone number"}, Contact(c))

	c.Phone = "+44 20 7946 0958"
	assert.Empty(t, Contact(c))

	c.Phone = ""
	assert.Empty(t, Contact(c), "phone is optional for contacts")
}

func TestContactLengthRules(t *testing.T) {
	c := validContact()
	c.Subject = "Hey"
	c.Message = "short"
	assert.Equal(t, []string{
		"Subject must be between 5 and 200 characters",
		"Message must be between 10 and 2000 characters",
	}, Contact(c))
}

func TestServiceInquiryRules(t *testing.T) {
	s := validInquiry()
	s.ServiceType = "hardware"
	s.ProjectDescription = "too short"
	s.CurrentWebsite = "not a url"
	assert.Equal(t, []string{
		"Please select a valid service type",
		"Project description must be between 20 and 2000 characters",
		"Please provide a valid website URL",
	}, ServiceInquiry(s))

	s = validInquiry()
	s.CurrentWebsite = "https://example.com/about"
	assert.Empty(t, ServiceInquiry(s))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Hello world", Text("  <b>Hello</b> world  "))
	assert.Equal(t, "Tom & Jerry", Text("Tom &amp; Jerry"))
	assert.Equal(t, "Hi", Text("Hi<script>alert(1)</script>"))
	assert.Equal(t, "plain", Text(" plain\n"))
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"seo", "hosting"}, List([]string{" seo", "", "hosting", "seo"}))
	assert.Equal(t, []string{}, List(nil))
}

// Package validation checks sanitized submissions and reports every failing
// field as a human-readable message, in field order.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"leadcapture/internal/domain"
)

var (
	validate   = validator.New()
	phoneRegex = regexp.MustCompile(`^[+]?[0-9 \-()]{7,20}$`)
)

func init() {
	_ = validate.RegisterValidation("lead_phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("dotted_domain", func(fl validator.FieldLevel) bool {
		addr := fl.Field().String()
		at := strings.LastIndex(addr, "@")
		return at > 0 && strings.Contains(addr[at+1:], ".")
	})
}

type checker struct {
	errs []string
}

func (c *checker) fail(msg string) {
	c.errs = append(c.errs, msg)
}

func (c *checker) length(value string, lo, hi int, label string) {
	if n := utf8.RuneCountInString(value); n < lo || n > hi {
		c.fail(fmt.Sprintf("%s must be between %d and %d characters", label, lo, hi))
	}
}

func (c *checker) name(v string) {
	c.length(v, 2, 100, "Name")
}

func (c *checker) email(v string) {
	if validate.Var(v, "required,email,dotted_domain") != nil {
		c.fail("Please provide a valid email address")
	}
}

func (c *checker) phone(v string, required bool) {
	if v == "" && !required {
		return
	}
	if validate.Var(v, "required,lead_phone") != nil {
		c.fail("Please provide a valid phone number")
	}
}

func (c *checker) budget(b domain.Budget) {
	if !b.Valid() {
		c.fail("Please select a valid budget range")
	}
}

func (c *checker) timeline(t domain.Timeline) {
	if !t.Valid() {
		c.fail("Please select a valid timeline")
	}
}

func (c *checker) result() []string {
	if c.errs == nil {
		return []string{}
	}
	return c.errs
}

// Contact validates a contact submission.
func Contact(in *domain.Contact) []string {
	var c checker
	c.name(in.Name)
	c.email(in.Email)
	c.phone(in.Phone, false)
	c.length(in.Subject, 5, 200, "Subject")
	c.length(in.Message, 10, 2000, "Message")
	return c.result()
}

// Consultation validates a consultation booking.
func Consultation(in *domain.Consultation) []string {
	var c checker
	c.name(in.Name)
	c.email(in.Email)
	c.phone(in.Phone, true)
	c.length(in.Company, 2, 100, "Company name")
	if !in.BusinessSize.Valid() {
		c.fail("Please select a valid business size")
	}
	c.length(in.CurrentChallenges, 10, 1000, "Current challenges")
	if len(in.InterestedServices) == 0 {
		c.fail("Please select at least one service")
	}
	for _, s := range in.InterestedServices {
		if !slices.Contains(domain.InterestedServices, s) {
			c.fail("Invalid service selection: " + s)
		}
	}
	c.budget(in.Budget)
	c.timeline(in.Timeline)
	return c.result()
}

// ServiceInquiry validates a service inquiry.
func ServiceInquiry(in *domain.ServiceInquiry) []string {
	var c checker
	c.name(in.Name)
	c.email(in.Email)
	c.phone(in.Phone, false)
	if !in.ServiceType.Valid() {
		c.fail("Please select a valid service type")
	}
	c.length(in.ProjectDescription, 20, 2000, "Project description")
	c.budget(in.Budget)
	c.timeline(in.Timeline)
	if in.CurrentWebsite != "" && validate.Var(in.CurrentWebsite, "url") != nil {
		c.fail("Please provide a valid website URL")
	}
	return c.result()
}

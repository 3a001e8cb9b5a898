package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// Brand is the sender identity shown in every template.
type Brand struct {
	Name string
	URL  string
}

// Content is the rendered subject and bodies of one email.
type Content struct {
	Subject string
	Text    string
	HTML    string
}

// TemplateKey selects a template by submission kind and recipient.
type TemplateKey struct {
	Kind      Kind
	Recipient Recipient
}

// TemplateFunc renders a submission into email content.
type TemplateFunc func(sub Submission) (Content, error)

// Registry maps template keys to renderers.
type Registry map[TemplateKey]TemplateFunc

var fallbackKey = TemplateKey{Kind: KindContact, Recipient: RecipientUser}

// Lookup returns the renderer for kind and recipient, falling back to the
// contact confirmation when none is registered.
func (r Registry) Lookup(kind Kind, to Recipient) TemplateFunc {
	if fn, ok := r[TemplateKey{Kind: kind, Recipient: to}]; ok {
		return fn
	}
	if fn, ok := r[fallbackKey]; ok {
		return fn
	}
	return func(Submission) (Content, error) {
		return Content{}, fmt.Errorf("no template registered for %s/%s", kind, to)
	}
}

type view struct {
	Submission
	Brand Brand
	Year  int
}

const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Brand.Name}}</title>
</head>
<body style="margin:0;padding:0;background:#F8FAFC;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;color:#334155;">
<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%" style="background:#F8FAFC;">
<tr><td style="padding:40px 20px;">
<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="600" style="margin:0 auto;background:#FFFFFF;border-radius:12px;overflow:hidden;">
<tr><td style="padding:32px 40px;background:#1C5D99;color:#FFFFFF;">{{template "header" .}}</td></tr>
<tr><td style="padding:32px 40px;">{{template "content" .}}</td></tr>
<tr><td style="padding:24px 40px;background:#F1F5F9;font-size:12px;color:#64748B;">
<p style="margin:0 0 6px;">&copy; {{.Year}} {{.Brand.Name}}. Empowering SMEs with AI-driven growth solutions.</p>
{{if .Brand.URL}}<p style="margin:0;">Visit us: <a href="{{.Brand.URL}}" style="color:#1C5D99;">{{.Brand.URL}}</a></p>{{end}}
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

const detailsHTML = `{{define "details"}}<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%" style="margin:16px 0;padding:16px;background:#F8FAFC;border-left:4px solid #1C5D99;">
{{range .Details}}<tr><td style="padding:4px 0;"><strong>{{.Label}}:</strong> {{.Value}}</td></tr>
{{end}}</table>{{end}}`

const detailsText = `{{define "details"}}{{range .Details}}{{.Label}}: {{.Value}}
{{end}}{{end}}`

type layout struct {
	subject string
	html    string
	text    string
}

var defaultLayouts = map[TemplateKey]layout{
	{KindContact, RecipientUser}: {
		subject: `Thank you for contacting {{.Brand.Name}}`,
		html: `{{define "header"}}<h1 style="margin:0;font-size:24px;">Thank You for Reaching Out!</h1>
<p style="margin:8px 0 0;">We've received your message and we're excited to help you grow your business with AI.</p>{{end}}
{{define "content"}}<p>Hi {{.Name}},</p>
<p>Thank you for contacting <strong>{{.Brand.Name}}</strong>! Our team is already reviewing your message.</p>
<h3>Your Inquiry Details</h3>
{{template "details" .}}
<p><strong>What happens next?</strong> We'll get back to you within 24 hours.</p>
<p>Questions? Simply reply to this email.</p>
<p>Best regards,<br><strong>The {{.Brand.Name}} Team</strong></p>{{end}}`,
		text: `Hi {{.Name}},

Thank you for contacting {{.Brand.Name}}!

We've received your inquiry about: {{.Summary}}

{{template "details" .}}
Our team will review your message and get back to you within 24 hours.

Best regards,
The {{.Brand.Name}} Team
{{.Brand.URL}}
`,
	},
	{KindContact, RecipientAdmin}: {
		subject: `New Contact Form Submission - {{.Name}}`,
		html: `{{define "header"}}<h2 style="margin:0;">New Contact Form Submission</h2>{{end}}
{{define "content"}}<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{or .Phone "Not provided"}}</p>
<p><strong>Company:</strong> {{or .Company "Not provided"}}</p>
<p><strong>Subject:</strong> {{.Summary}}</p>
<p><strong>Priority:</strong> {{.Priority}}</p>
<p><strong>Message:</strong></p>
<p style="white-space:pre-wrap;">{{.Message}}</p>
<p><strong>Submitted:</strong> {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<p><strong>IP Address:</strong> {{or .IPAddress "Unknown"}}</p>{{end}}`,
		text: `New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Phone: {{or .Phone "Not provided"}}
Company: {{or .Company "Not provided"}}
Subject: {{.Summary}}
Priority: {{.Priority}}

Message:
{{.Message}}

Submitted: {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}
IP Address: {{or .IPAddress "Unknown"}}
`,
	},
	{KindConsultation, RecipientUser}: {
		subject: `Free Consultation Booked - {{.Brand.Name}}`,
		html: `{{define "header"}}<h1 style="margin:0;font-size:24px;">Free Consultation Booked!</h1>
<p style="margin:8px 0 0;">Your AI business transformation journey starts here.</p>{{end}}
{{define "content"}}<p>Hi {{.Name}},</p>
<p>We're excited to help <strong>{{.Company}}</strong> leverage AI for growth!</p>
<h3>Your Consultation Details</h3>
{{template "details" .}}
<p><strong>Next Steps:</strong> a consultant will contact you within 24 hours to schedule your session.</p>
<p>Best regards,<br><strong>The {{.Brand.Name}} Consulting Team</strong></p>{{end}}`,
		text: `Hi {{.Name}},

Your free consultation with {{.Brand.Name}} is booked.

{{template "details" .}}
A consultant will contact you within 24 hours to schedule your session.

Best regards,
The {{.Brand.Name}} Consulting Team
`,
	},
	{KindConsultation, RecipientAdmin}: {
		subject: `New Consultation Booking - {{.Company}} (Lead Score: {{.Score}})`,
		html: `{{define "header"}}<h2 style="margin:0;">New Free Consultation Booking</h2>{{end}}
{{define "content"}}<p><strong>Lead Score:</strong> {{.Score}}/100</p>
<p><strong>Priority:</strong> {{.Priority}}</p>
<hr>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{template "details" .}}
<p><strong>Challenges:</strong></p>
<p style="white-space:pre-wrap;">{{.Message}}</p>
<p><strong>Submitted:</strong> {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<p><strong>IP Address:</strong> {{or .IPAddress "Unknown"}}</p>{{end}}`,
		text: `New Free Consultation Booking

Lead Score: {{.Score}}/100
Priority: {{.Priority}}

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
{{template "details" .}}
Challenges:
{{.Message}}

Submitted: {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}
IP Address: {{or .IPAddress "Unknown"}}
`,
	},
	{KindService, RecipientUser}: {
		subject: `Service Inquiry Received - {{.Summary}}`,
		html: `{{define "header"}}<h1 style="margin:0;font-size:24px;">Service Inquiry Received!</h1>
<p style="margin:8px 0 0;">We're excited to bring your AI vision to life.</p>{{end}}
{{define "content"}}<p>Hi {{.Name}},</p>
<p>Thank you for your interest in our <strong>{{.Summary}}</strong> service!</p>
<h3>Your Project Details</h3>
{{template "details" .}}
<p><strong>Project Description:</strong> {{.Message}}</p>
<p><strong>What happens next?</strong> We'll review your requirements and send a tailored proposal.</p>
<p>Best regards,<br><strong>The {{.Brand.Name}} Development Team</strong></p>{{end}}`,
		text: `Hi {{.Name}},

Thank you for your interest in our {{.Summary}} service!

{{template "details" .}}
Project Description:
{{.Message}}

We'll review your requirements and send a tailored proposal.

Best regards,
The {{.Brand.Name}} Development Team
`,
	},
	{KindService, RecipientAdmin}: {
		subject: `New Service Inquiry - {{.Summary}} (Est. Value: ${{.Score}})`,
		html: `{{define "header"}}<h2 style="margin:0;">New Service Inquiry</h2>{{end}}
{{define "content"}}<p><strong>Service:</strong> {{.Summary}}</p>
<p><strong>Estimated Value:</strong> ${{.Score}}</p>
<p><strong>Priority:</strong> {{.Priority}}</p>
<hr>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{or .Phone "Not provided"}}</p>
<p><strong>Company:</strong> {{or .Company "Not provided"}}</p>
{{template "details" .}}
<p><strong>Project Description:</strong></p>
<p style="white-space:pre-wrap;">{{.Message}}</p>
<p><strong>Submitted:</strong> {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<p><strong>IP Address:</strong> {{or .IPAddress "Unknown"}}</p>{{end}}`,
		text: `New Service Inquiry

Service: {{.Summary}}
Estimated Value: ${{.Score}}
Priority: {{.Priority}}

Name: {{.Name}}
Email: {{.Email}}
Phone: {{or .Phone "Not provided"}}
Company: {{or .Company "Not provided"}}
{{template "details" .}}
Project Description:
{{.Message}}

Submitted: {{.SubmittedAt.Format "2006-01-02 15:04:05 MST"}}
IP Address: {{or .IPAddress "Unknown"}}
`,
	},
}

// DefaultRegistry builds the six built-in templates for brand. It panics if a
// built-in template fails to parse.
func DefaultRegistry(brand Brand) Registry {
	reg := make(Registry, len(defaultLayouts))
	for key, s := range defaultLayouts {
		reg[key] = compile(key, s, brand)
	}
	return reg
}

func compile(key TemplateKey, s layout, brand Brand) TemplateFunc {
	name := fmt.Sprintf("%s_%s", key.Kind, key.Recipient)
	subject := texttemplate.Must(texttemplate.New(name + "_subject").Parse(s.subject))
	text := texttemplate.Must(texttemplate.Must(texttemplate.New(name + "_text").Parse(detailsText)).Parse(s.text))
	html := htmltemplate.Must(htmltemplate.Must(htmltemplate.New(name + "_html").Parse(layoutHTML)).Parse(detailsHTML))
	html = htmltemplate.Must(html.Parse(s.html))

	return func(sub Submission) (Content, error) {
		v := view{Submission: sub, Brand: brand, Year: sub.SubmittedAt.Year()}
		if sub.SubmittedAt.IsZero() {
			v.Year = time.Now().Year()
		}

		var subj, txt, body bytes.Buffer
		if err := subject.Execute(&subj, v); err != nil {
			return Content{}, fmt.Errorf("render %s subject: %w", name, err)
		}
		if err := text.Execute(&txt, v); err != nil {
			return Content{}, fmt.Errorf("render %s text: %w", name, err)
		}
		if err := html.Execute(&body, v); err != nil {
			return Content{}, fmt.Errorf("render %s html: %w", name, err)
		}
		return Content{
			Subject: strings.Join(strings.Fields(subj.String()), " "),
			Text:    txt.String(),
			HTML:    body.String(),
		}, nil
	}
}

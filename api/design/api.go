package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("leadcapture", func() {
	Title("Lead Capture API")
	Description("Contact, free consultation and service inquiry intake. Every response is wrapped in a {success, message|error, timestamp, data?, meta?} envelope.")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// Common error types
var BadRequest = Type("BadRequest", func() {
	Description("Malformed body or invalid status")
	Attribute("error", String, "Error message", func() {
		Example("Invalid JSON data")
	})
})

var ValidationFailed = Type("ValidationFailed", func() {
	Description("One or more fields failed validation")
	Attribute("error", String, "Error message", func() {
		Example("Validation failed")
	})
	Attribute("validation_errors", ArrayOf(String), "Every failing field, in field order", func() {
		Example([]string{"Name must be between 2 and 100 characters"})
	})
})

var NotFound = Type("NotFound", func() {
	Description("Resource not found")
	Attribute("error", String, "Error message", func() {
		Example("Contact not found")
	})
})

var RateLimited = Type("RateLimited", func() {
	Description("Too many requests from this address")
	Attribute("error", String, "Error message", func() {
		Example("Too many requests. Please try again later.")
	})
})

var Pagination = Type("Pagination", func() {
	Attribute("page", Int, "Current page")
	Attribute("limit", Int, "Page size")
	Attribute("total", Int64, "Matching records")
	Attribute("pages", Int, "Page count")
	Required("page", "limit", "total", "pages")
})

// Health check
var _ = Service("health", func() {
	Description("Liveness and database connectivity")
	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Example("OK")
	})
	Attribute("version", String, "Application version")
	Attribute("environment", String, "Deployment environment")
	Attribute("database", String, "Database state", func() {
		Enum("connected", "disconnected")
	})
	Required("status", "database")
})

// Contact service
var _ = Service("contact", func() {
	Description("Contact form submissions")
	Error("bad_request", BadRequest)
	Error("validation_failed", ValidationFailed)
	Error("not_found", NotFound)
	Error("rate_limited", RateLimited)
	HTTP(func() {
		Path("/api/v1/contact")
		Response("rate_limited", StatusTooManyRequests)
	})

	Method("submit", func() {
		Description("Submit the contact form")
		Payload(ContactPayload)
		Result(ContactReceipt)
		Error("bad_request")
		Error("validation_failed")
		HTTP(func() {
			POST("")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("validation_failed", StatusUnprocessableEntity)
		})
	})

	Method("list", func() {
		Description("Page through contacts")
		Payload(ListPayload)
		Result(ArrayOf(ContactResult))
		HTTP(func() {
			GET("")
			Param("page")
			Param("limit")
			Param("status")
			Param("priority")
			Param("sortBy")
			Param("sortOrder")
			Response(StatusOK)
		})
	})

	Method("get", func() {
		Description("Fetch one contact")
		Payload(IDPayload)
		Result(ContactResult)
		Error("not_found")
		HTTP(func() {
			GET("/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("update_status", func() {
		Description("Change status, optionally appending an operator note")
		Payload(ContactStatusPayload)
		Result(StatusResult)
		Error("bad_request")
		Error("not_found")
		HTTP(func() {
			PUT("/{id}/status")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
			Response("not_found", StatusNotFound)
		})
	})

	Method("stats", func() {
		Description("Counts by status and priority")
		Result(ContactStats)
		HTTP(func() {
			GET("/stats/summary")
			Response(StatusOK)
		})
	})
})

// Consultation service
var _ = Service("consultation", func() {
	Description("Free consultation bookings with lead scoring")
	Error("bad_request", BadRequest)
	Error("validation_failed", ValidationFailed)
	Error("not_found", NotFound)
	Error("rate_limited", RateLimited)
	HTTP(func() {
		Path("/api/v1/consultation")
		Response("rate_limited", StatusTooManyRequests)
	})

	Method("book", func() {
		Description("Book a free consultation")
		Payload(ConsultationPayload)
		Result(ConsultationReceipt)
		Error("bad_request")
		Error("validation_failed")
		HTTP(func() {
			POST("")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("validation_failed", StatusUnprocessableEntity)
		})
	})

	Method("list", func() {
		Description("Page through consultations")
		Payload(ListPayload)
		Result(ArrayOf(Consultation))
		HTTP(func() {
			GET("")
			Param("page")
			Param("limit")
			Param("status")
			Param("priority")
			Param("sortBy")
			Param("sortOrder")
			Response(StatusOK)
		})
	})

	Method("get", func() {
		Description("Fetch one consultation")
		Payload(IDPayload)
		Result(Consultation)
		Error("not_found")
		HTTP(func() {
			GET("/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("update_status", func() {
		Description("Change status; absent schedule and notes are left unchanged")
		Payload(ConsultationStatusPayload)
		Result(StatusResult)
		Error("bad_request")
		Error("not_found")
		HTTP(func() {
			PUT("/{id}/status")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
			Response("not_found", StatusNotFound)
		})
	})

	Method("stats", func() {
		Description("Counts by status, average lead score and delivery totals")
		Result(MapOf(String, Any))
		HTTP(func() {
			GET("/stats/summary")
			Response(StatusOK)
		})
	})

	Method("lead_stats", func() {
		Description("Consultations bucketed hot, warm, cold and very_cold by lead score")
		Result(ArrayOf(LeadBucket))
		HTTP(func() {
			GET("/stats/leads")
			Response(StatusOK)
		})
	})
})

// Service inquiry service
var _ = Service("services", func() {
	Description("Service quote requests with value estimation")
	Error("bad_request", BadRequest)
	Error("validation_failed", ValidationFailed)
	Error("not_found", NotFound)
	Error("rate_limited", RateLimited)
	HTTP(func() {
		Path("/api/v1/services")
		Response("rate_limited", StatusTooManyRequests)
	})

	Method("submit", func() {
		Description("Submit a service inquiry")
		Payload(ServiceInquiryPayload)
		Result(InquiryReceipt)
		Error("bad_request")
		Error("validation_failed")
		HTTP(func() {
			POST("")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("validation_failed", StatusUnprocessableEntity)
		})
	})

	Method("list", func() {
		Description("Page through service inquiries")
		Payload(InquiryListPayload)
		Result(ArrayOf(ServiceInquiry))
		HTTP(func() {
			GET("")
			Param("page")
			Param("limit")
			Param("status")
			Param("priority")
			Param("service_type")
			Param("sortBy")
			Param("sortOrder")
			Response(StatusOK)
		})
	})

	Method("get", func() {
		Description("Fetch one service inquiry")
		Payload(IDPayload)
		Result(ServiceInquiry)
		Error("not_found")
		HTTP(func() {
			GET("/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("update_status", func() {
		Description("Change status; quoting with a positive amount marks the quote sent once")
		Payload(InquiryStatusPayload)
		Result(StatusResult)
		Error("bad_request")
		Error("not_found")
		HTTP(func() {
			PUT("/{id}/status")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
			Response("not_found", StatusNotFound)
		})
	})

	Method("stats", func() {
		Description("Counts by status with value and quote totals")
		Result(MapOf(String, Any))
		HTTP(func() {
			GET("/stats/summary")
			Response(StatusOK)
		})
	})

	Method("stats_by_service", func() {
		Description("Per service type count and value, largest total first")
		Result(ArrayOf(ServiceBreakdown))
		HTTP(func() {
			GET("/stats/by-service")
			Response(StatusOK)
		})
	})

	Method("types", func() {
		Description("Static service catalog")
		Result(ArrayOf(ServiceInfo))
		HTTP(func() {
			GET("/types")
			Response(StatusOK)
		})
	})
})

var IDPayload = Type("IDPayload", func() {
	Attribute("id", String, "Record ID", func() {
		Format(FormatUUID)
	})
	Required("id")
})

var ListPayload = Type("ListPayload", func() {
	Attribute("page", Int, "Page number", func() {
		Default(1)
		Minimum(1)
	})
	Attribute("limit", Int, "Page size", func() {
		Default(10)
		Minimum(1)
		Maximum(100)
	})
	Attribute("status", String, "Status filter")
	Attribute("priority", String, "Priority filter")
	Attribute("sortBy", String, "Sort column", func() {
		Default("created_at")
	})
	Attribute("sortOrder", String, "Sort direction", func() {
		Enum("ASC", "DESC", "asc", "desc")
		Default("DESC")
	})
})

var InquiryListPayload = Type("InquiryListPayload", func() {
	Extend(ListPayload)
	Attribute("service_type", String, "Service type filter")
})

var ContactPayload = Type("ContactPayload", func() {
	Attribute("name", String, "Full name", func() {
		MinLength(2)
		MaxLength(100)
		Example("Jane Doe")
	})
	Attribute("email", String, "Email address", func() {
		Format(FormatEmail)
		Example("jane@example.com")
	})
	Attribute("phone", String, "Phone number (optional)")
	Attribute("company", String, "Company (optional)")
	Attribute("subject", String, "Subject", func() {
		MinLength(5)
		MaxLength(200)
	})
	Attribute("message", String, "Message", func() {
		MinLength(10)
		MaxLength(2000)
	})
	Attribute("source", String, "Submission source", func() {
		Default("contact_form")
	})
	Required("name", "email", "subject", "message")
})

var ContactReceipt = ResultType("ContactReceipt", func() {
	Attribute("id", String, "Contact ID")
	Attribute("name", String)
	Attribute("email", String)
	Attribute("subject", String)
	Attribute("status", String)
	Attribute("priority", String, func() {
		Enum("low", "medium", "high", "urgent")
	})
	Attribute("email_sent", Boolean)
	Attribute("admin_notified", Boolean)
	Attribute("submitted_at", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "status", "priority", "email_sent", "admin_notified", "submitted_at")
})

var Note = Type("Note", func() {
	Attribute("content", String)
	Attribute("created_at", String, func() {
		Format(FormatDateTime)
	})
	Attribute("created_by", String)
})

var ContactResult = ResultType("Contact", func() {
	Attribute("id", String)
	Attribute("name", String)
	Attribute("email", String)
	Attribute("phone", String)
	Attribute("company", String)
	Attribute("subject", String)
	Attribute("message", String)
	Attribute("source", String)
	Attribute("status", String, func() {
		Enum("new", "in_progress", "resolved", "closed")
	})
	Attribute("priority", String)
	Attribute("notes", ArrayOf(Note))
	Attribute("email_sent", Boolean)
	Attribute("admin_notified", Boolean)
	Attribute("created_at", String)
	Attribute("updated_at", String)
	Required("id", "name", "email", "status", "priority")
})

var ContactStatusPayload = Type("ContactStatusPayload", func() {
	Attribute("id", String, "Contact ID")
	Attribute("status", String, func() {
		Enum("new", "in_progress", "resolved", "closed")
	})
	Attribute("notes", String, "Operator note appended to the contact")
	Required("id", "status")
})

var StatusResult = Type("StatusResult", func() {
	Attribute("id", String)
	Attribute("status", String)
	Attribute("updated_at", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "status", "updated_at")
})

var ContactStats = Type("ContactStats", func() {
	Attribute("total", Int64)
	Attribute("new", Int64)
	Attribute("in_progress", Int64)
	Attribute("resolved", Int64)
	Attribute("closed", Int64)
	Attribute("urgent_priority", Int64)
	Attribute("high_priority", Int64)
	Attribute("emails_sent", Int64)
	Attribute("admin_notified", Int64)
})

var ConsultationPayload = Type("ConsultationPayload", func() {
	Attribute("name", String, func() {
		MinLength(2)
		MaxLength(100)
	})
	Attribute("email", String, func() {
		Format(FormatEmail)
	})
	Attribute("phone", String)
	Attribute("company", String, func() {
		MinLength(2)
		MaxLength(100)
	})
	Attribute("industry", String)
	Attribute("business_size", String, func() {
		Enum("1-10", "11-50", "51-200", "201-500", "500+")
	})
	Attribute("current_challenges", String, func() {
		MinLength(10)
		MaxLength(1000)
	})
	Attribute("interested_services", ArrayOf(String), func() {
		MinLength(1)
	})
	Attribute("budget", String, func() {
		Enum("under_5k", "5k_15k", "15k_50k", "50k_100k", "100k_plus", "not_sure")
	})
	Attribute("timeline", String, func() {
		Enum("asap", "1_month", "3_months", "6_months", "1_year", "flexible")
	})
	Attribute("preferred_contact_method", String, func() {
		Default("email")
	})
	Attribute("preferred_time", String, func() {
		Default("flexible")
	})
	Attribute("timezone", String)
	Attribute("additional_notes", String)
	Required("name", "email", "phone", "company", "business_size", "current_challenges",
		"interested_services", "budget", "timeline")
})

var ConsultationReceipt = ResultType("ConsultationReceipt", func() {
	Attribute("id", String)
	Attribute("name", String)
	Attribute("email", String)
	Attribute("company", String)
	Attribute("status", String)
	Attribute("priority", String)
	Attribute("lead_score", Int, func() {
		Minimum(0)
		Maximum(100)
	})
	Attribute("email_sent", Boolean)
	Attribute("admin_notified", Boolean)
	Attribute("follow_up_date", String)
	Attribute("submitted_at", String)
	Required("id", "status", "priority", "lead_score", "email_sent", "admin_notified", "submitted_at")
})

var Consultation = ResultType("Consultation", func() {
	Extend(ConsultationPayload)
	Attribute("id", String)
	Attribute("status", String, func() {
		Enum("pending", "scheduled", "completed", "cancelled", "no_show")
	})
	Attribute("priority", String)
	Attribute("lead_score", Int)
	Attribute("consultation_notes", String)
	Attribute("scheduled_date", String)
	Attribute("follow_up_required", Boolean)
	Attribute("follow_up_date", String)
	Attribute("email_sent", Boolean)
	Attribute("admin_notified", Boolean)
	Attribute("created_at", String)
	Attribute("updated_at", String)
})

var ConsultationStatusPayload = Type("ConsultationStatusPayload", func() {
	Attribute("id", String)
	Attribute("status", String, func() {
		Enum("pending", "scheduled", "completed", "cancelled", "no_show")
	})
	Attribute("scheduled_date", String, func() {
		Format(FormatDateTime)
	})
	Attribute("consultation_notes", String)
	Required("id", "status")
})

var LeadBucket = Type("LeadBucket", func() {
	Attribute("lead_category", String, func() {
		Enum("hot", "warm", "cold", "very_cold")
	})
	Attribute("count", Int64)
	Attribute("average_score", Float64)
})

var ServiceInquiryPayload = Type("ServiceInquiryPayload", func() {
	Attribute("name", String, func() {
		MinLength(2)
		MaxLength(100)
	})
	Attribute("email", String, func() {
		Format(FormatEmail)
	})
	Attribute("phone", String)
	Attribute("company", String)
	Attribute("service_type", String, func() {
		Enum("ai_website", "smart_chatbot", "email_marketing", "social_media_automation",
			"custom_ai_solution", "consultation")
	})
	Attribute("project_description", String, func() {
		MinLength(20)
		MaxLength(2000)
	})
	Attribute("budget", String)
	Attribute("timeline", String)
	Attribute("current_website", String, func() {
		Format(FormatURI)
	})
	Attribute("current_challenges", String)
	Attribute("specific_requirements", ArrayOf(String))
	Attribute("target_audience", String)
	Attribute("competitor_websites", ArrayOf(String))
	Attribute("preferred_style", String, func() {
		Default("not_sure")
	})
	Attribute("additional_services", ArrayOf(String))
	Required("name", "email", "service_type", "project_description", "budget", "timeline")
})

var InquiryReceipt = ResultType("InquiryReceipt", func() {
	Attribute("id", String)
	Attribute("name", String)
	Attribute("email", String)
	Attribute("service_type", String)
	Attribute("status", String)
	Attribute("priority", String)
	Attribute("estimated_value", Float64)
	Attribute("email_sent", Boolean)
	Attribute("admin_notified", Boolean)
	Attribute("follow_up_date", String)
	Attribute("submitted_at", String)
	Required("id", "status", "priority", "estimated_value", "email_sent", "admin_notified", "submitted_at")
})

var ServiceInquiry = ResultType("ServiceInquiry", func() {
	Extend(ServiceInquiryPayload)
	Attribute("id", String)
	Attribute("status", String, func() {
		Enum("new", "reviewing", "quoted", "approved", "in_progress", "completed", "cancelled")
	})
	Attribute("estimated_value", Float64)
	Attribute("priority", String)
	Attribute("quote_sent", Boolean)
	Attribute("quote_amount", Float64)
	Attribute("assigned_to", String)
	Attribute("notes", ArrayOf(Note))
	Attribute("follow_up_date", String)
	Attribute("created_at", String)
	Attribute("updated_at", String)
})

var InquiryStatusPayload = Type("InquiryStatusPayload", func() {
	Attribute("id", String)
	Attribute("status", String, func() {
		Enum("new", "reviewing", "quoted", "approved", "in_progress", "completed", "cancelled")
	})
	Attribute("quote_amount", Float64, func() {
		Minimum(0)
	})
	Attribute("assigned_to", String)
	Attribute("notes", String)
	Required("id", "status")
})

var ServiceBreakdown = Type("ServiceBreakdown", func() {
	Attribute("service_type", String)
	Attribute("count", Int64)
	Attribute("total_value", Float64)
	Attribute("average_value", Float64)
	Attribute("completed", Int64)
})

var ServiceInfo = Type("ServiceInfo", func() {
	Attribute("id", String)
	Attribute("name", String)
	Attribute("description", String)
	Attribute("base_price", Float64)
	Attribute("features", ArrayOf(String))
	Required("id", "name", "base_price")
})

package services

import (
	"context"
	"net/http"
	"time"

	goahttp "goa.design/goa/v3/http"

	"leadcapture/internal/store"
)

// Meta carries list metadata in the success envelope.
type Meta struct {
	Pagination store.Page `json:"pagination"`
}

func jsonEncoder(ctx context.Context, w http.ResponseWriter) goahttp.Encoder {
	ctx = context.WithValue(ctx, goahttp.ContentTypeKey, "application/json")
	return goahttp.ResponseEncoder(ctx, w)
}

func timestamp(now time.Time) string {
	return now.Format(time.RFC3339)
}

// respond writes the success envelope. data and meta are omitted when nil.
func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, message string, data any, meta *Meta) {
	body := map[string]any{
		"success":   true,
		"message":   message,
		"timestamp": timestamp(a.now()),
	}
	if data != nil {
		body["data"] = data
	}
	if meta != nil {
		body["meta"] = meta
	}
	a.write(w, r, status, body)
}

// respondError writes the error envelope with any extra top-level fields.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, status int, message string, extra map[string]any) {
	body := map[string]any{
		"success":   false,
		"error":     message,
		"timestamp": timestamp(a.now()),
	}
	for k, v := range extra {
		body[k] = v
	}
	a.write(w, r, status, body)
}

func (a *API) write(w http.ResponseWriter, r *http.Request, status int, body map[string]any) {
	enc := jsonEncoder(r.Context(), w)
	w.WriteHeader(status)
	if err := enc.Encode(body); err != nil {
		a.log.WithError(err).WithField("path", r.URL.Path).Error("failed to encode response")
	}
}

package api

import (
	"io"
	"net/http"

	"contact-mailer/internal/contact"
)

// maxBodyBytes caps the request body read from the wire.
const maxBodyBytes = 1 << 20

// NewHTTPHandler exposes h as a net/http handler.
func NewHTTPHandler(h *contact.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			// an unreadable body counts as an empty submission
			body = nil
		}

		resp := h.Handle(r.Context(), contact.Request{
			Method:  r.Method,
			Headers: r.Header,
			Body:    string(body),
		})
		writeResponse(w, resp)
	})
}

func writeResponse(w http.ResponseWriter, resp contact.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if body := resp.Body(); body != "" {
		io.WriteString(w, body)
	}
}

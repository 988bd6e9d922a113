// Package response writes API responses: JSON bodies, problem documents and
// conditional-request handling.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/airdash/airdash/internal/api/middleware"
	"github.com/airdash/airdash/internal/api/models"
)

// CacheControl is sent with every cacheable dashboard response. The dataset
// never changes while the process runs, so clients may reuse responses but
// must revalidate with the ETag.
const CacheControl = "public, max-age=300, must-revalidate"

func setRequestID(w http.ResponseWriter, r *http.Request) {
	if requestID := middleware.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NotModified answers a conditional request. When If-None-Match matches
// etag it writes 304 with the validator headers and returns true; the caller
// must not write a body in that case. Otherwise it writes nothing.
func NotModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if !matchesETag(r.Header.Get("If-None-Match"), quote(etag)) {
		return false
	}
	Cacheable(w, etag)
	setRequestID(w, r)
	w.WriteHeader(http.StatusNotModified)
	return true
}

// Cacheable sets the ETag and caching headers. Call it only once the
// response is known to succeed, right before the body is written.
func Cacheable(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", quote(etag))
	w.Header().Set("Cache-Control", CacheControl)
}

func quote(etag string) string {
	return `"` + etag + `"`
}

func matchesETag(header, quoted string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == quoted {
			return true
		}
	}
	return false
}

// Attachment prepares headers for a download named filename.
func Attachment(w http.ResponseWriter, r *http.Request, contentType, filename string) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// Error writes a Problem+JSON error response.
func Error(w http.ResponseWriter, r *http.Request, problem *models.Problem) {
	problem.WithInstance(r.URL.Path).Write(w)
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string, errors []models.FieldError) {
	Error(w, r, models.NewBadRequest(middleware.GetRequestID(r.Context()), detail, errors))
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewNotFound(middleware.GetRequestID(r.Context()), detail))
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewInternalError(middleware.GetRequestID(r.Context()), detail))
}

// ServiceUnavailable writes a 503 Service Unavailable error response.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, models.NewServiceUnavailable(middleware.GetRequestID(r.Context()), detail))
}

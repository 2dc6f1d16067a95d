package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"perftrack/internal/transport/http/api"
)

// DecodeJSON decodes the request body into dst. On failure it writes a 400,
// or a 413 when the body limit was hit, and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request payload too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}

package helpers

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds request bodies; the longest event is well under this.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dest, rejecting unknown fields and
// bodies over maxBodyBytes. On failure it writes a 400 JSON error and returns
// false. Field rules are enforced by the services, not here.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}

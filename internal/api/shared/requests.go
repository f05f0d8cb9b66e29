package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeJSON unmarshals the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ValidateRequest checks dst against its validation rules. A type with its
// own Validate method takes precedence over struct tags.
func ValidateRequest(dst interface{}) error {
	if v, ok := dst.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return validate.Struct(dst)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// errInvalidBody marks a request body that could not be decoded
var errInvalidBody = errors.New("invalid request body")

// decodeJSONObject decodes body into dst, whose fields are expected to be
// json.RawMessage so any value type is accepted. An empty body, or valid JSON
// that is not an object, leaves dst untouched. Only malformed JSON is
// reported as errInvalidBody.
func decodeJSONObject(body []byte, dst interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: malformed JSON", errInvalidBody)
	}

	if trimmed[0] != '{' {
		return nil
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

package musicapi

import (
	"bytes"
	"errors"
)

// ErrMalformed is returned when a body is neither JSON nor a JSONP callback.
var ErrMalformed = errors.New("malformed response body")

// unwrapJSONP returns the JSON payload of a `callback({...})` body.
// Plain JSON is returned unchanged.
func unwrapJSONP(body []byte) ([]byte, error) {
	b := bytes.TrimSpace(body)
	if len(b) == 0 {
		return nil, ErrMalformed
	}
	if b[0] == '{' || b[0] == '[' {
		return b, nil
	}

	start := bytes.IndexByte(b, '(')
	end := bytes.LastIndexByte(b, ')')
	if start <= 0 || end < start {
		return nil, ErrMalformed
	}
	payload := bytes.TrimSpace(b[start+1 : end])
	if len(payload) == 0 {
		return nil, ErrMalformed
	}
	return payload, nil
}

package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrEmptyBody = errors.New("request body is required")

// DecodeStrict unmarshals a JSON object into v and rejects fields v does not declare.
func DecodeStrict(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// Package encoding holds the small generic JSON helpers shared by the api client and the caches.
package encoding

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrEncodeJSON = errors.New("failed to encode JSON")
)

func UnmarshalJSON[T any](reader io.Reader) (T, error) {
	var value T
	if err := json.NewDecoder(reader).Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	return value, nil
}

// UnmarshalBytes is UnmarshalJSON for an already buffered body.
func UnmarshalBytes[T any](body []byte) (T, error) {
	return UnmarshalJSON[T](bytes.NewReader(body))
}

// MarshalJSON encodes value, returning nil for a nil value so callers can send empty bodies.
func MarshalJSON(value any) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(value); err != nil {
		return nil, errors.Join(err, ErrEncodeJSON)
	}

	return buf.Bytes(), nil
}

package utils

import (
	"encoding/json"
	"fmt"
)

// ParseTradierResponse unwraps Tradier's doubly-nested response shape,
// e.g. {"options": {"option": [...]}} or {"quotes": {"quote": {...}}}.
// A single object and an array of objects both decode to a slice.
func ParseTradierResponse[T any](response []byte) ([]T, error) {
	header := make(map[string]json.RawMessage)

	if err := json.Unmarshal(response, &header); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal header in response: %w", err)
	}

	if len(header) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in header, got %v: %v", len(header), header)
	}

	var outer json.RawMessage
	for k := range header {
		outer = header[k]
	}

	if string(outer) == "null" || string(outer) == "\"null\"" {
		return []T{}, nil
	}

	data := make(map[string]json.RawMessage)
	if err := json.Unmarshal(outer, &data); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal data in response: %w", err)
	}

	if len(data) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in data, got %v: %v", len(data), data)
	}

	var inner json.RawMessage
	for k := range data {
		inner = data[k]
	}

	var dtos []T

	var singleDTO T
	if err := json.Unmarshal(inner, &singleDTO); err == nil {
		dtos = append(dtos, singleDTO)
	} else {
		if err := json.Unmarshal(inner, &dtos); err != nil {
			return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal dtos in response: %w", err)
		}
	}

	return dtos, nil
}

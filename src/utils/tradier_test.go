package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteDTO struct {
	Symbol string  `json:"symbol"`
	Last   float64 `json:"last"`
}

func TestParseTradierResponse(t *testing.T) {
	t.Run("array payload", func(t *testing.T) {
		body := []byte(`{"options": {"option": [{"symbol": "AAPL", "last": 1.2}, {"symbol": "MSFT", "last": 2.4}]}}`)

		dtos, err := ParseTradierResponse[quoteDTO](body)
		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "AAPL", dtos[0].Symbol)
	})

	t.Run("single object payload", func(t *testing.T) {
		body := []byte(`{"quotes": {"quote": {"symbol": "AAPL", "last": 187.5}}}`)

		dtos, err := ParseTradierResponse[quoteDTO](body)
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, 187.5, dtos[0].Last)
	})

	t.Run("null payload", func(t *testing.T) {
		body := []byte(`{"options": "null"}`)

		dtos, err := ParseTradierResponse[quoteDTO](body)
		require.NoError(t, err)
		assert.Empty(t, dtos)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		body := []byte(`{"a": {}, "b": {}}`)

		_, err := ParseTradierResponse[quoteDTO](body)
		assert.Error(t, err)
	})
}

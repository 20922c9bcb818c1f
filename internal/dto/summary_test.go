package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestStockForms(t *testing.T) {
	tests := []struct {
		body string
		want FlexibleString
	}{
		{`{"stock_available":"Yes"}`, "Yes"},
		{`{"stock_available":true}`, "Yes"},
		{`{"stock_available":false}`, "No"},
		{`{"stock_available":null}`, ""},
		{`{"stock_available":1}`, "1"},
		{`{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req GenerateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.StockAvailable)
		})
	}
}

func TestGenerateRequestRejectsObjectStock(t *testing.T) {
	var req GenerateRequest
	err := json.Unmarshal([]byte(`{"stock_available":{"a":1}}`), &req)
	assert.Error(t, err)
}

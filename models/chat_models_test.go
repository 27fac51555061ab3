package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatResponse_RoundTrip(t *testing.T) {
	original := ChatResponse{
		Response: "Here are some products for you:\nPedigree, Drools",
		Sources:  []string{"Feeding", "Grooming"},
		Products: []Product{
			{"name": "Pedigree", "price": float64(1200), "petType": "dog"},
			{"name": "Drools"},
		},
		KnowledgeUsed: true,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ChatResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestChatRequest_HistoryOptional(t *testing.T) {
	var req ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"message":"hello"}`), &req))
	assert.Equal(t, "hello", req.Message)
	assert.Nil(t, req.History)
}

func TestKnowledgeRecord_IgnoresExtraFields(t *testing.T) {
	payload := `{"title":"Feeding","question":"How often?","answer":"Twice daily.","category":"care","petType":"dog","_id":"abc"}`
	var record KnowledgeRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))
	assert.Equal(t, KnowledgeRecord{Title: "Feeding", Question: "How often?", Answer: "Twice daily."}, record)
}

func TestProductName(t *testing.T) {
	assert.Equal(t, "Pedigree", Product{"name": "Pedigree"}.Name())
	assert.Equal(t, "", Product{}.Name())
	assert.Equal(t, "", Product{"name": 42}.Name())
}

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petcare-chatbot/models"
	"petcare-chatbot/services"
)

// fakeBackend serves the knowledge and product endpoints the way the
// storefront backend does
func fakeBackend(t *testing.T, knowledge, products string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/knowledge/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(knowledge))
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(products))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// fakeCompletion serves a fixed completion reply
func fakeCompletion(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestController(t *testing.T, apiKey, backendURL, completionURL string) *Controller {
	t.Helper()
	logger := zap.NewNop()
	completion := services.NewCompletionService(apiKey, completionURL, "test-model")
	knowledge := services.NewKnowledgeService(backendURL)
	products := services.NewProductService(backendURL)
	chatbot := services.NewChatbot(knowledge, products, completion, logger)
	discord := services.NewDiscordService("", "!pet ", chatbot, logger)
	return NewController(chatbot, discord, "test-model", logger)
}

func postChat(t *testing.T, controller *Controller, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	controller.ChatHandler(rec, req)
	return rec
}

func TestChatHandler_RoundTrip(t *testing.T) {
	backend := fakeBackend(t,
		`[{"title":"Feeding","question":"How often?","answer":"Twice daily."}]`,
		`[]`)
	completion := fakeCompletion(t, "Feed your dog twice a day.")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	rec := postChat(t, controller, `{"message":"how often should I feed my dog?","history":[{"role":"human","content":"hi"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Feed your dog twice a day.", resp.Response)
	assert.Equal(t, []string{"Feeding"}, resp.Sources)
	assert.True(t, resp.KnowledgeUsed)
	assert.Empty(t, resp.Products)
}

func TestChatHandler_ProductBranch(t *testing.T) {
	backend := fakeBackend(t, `[]`,
		`[{"name":"Pedigree"},{"name":"Drools"},{"name":"Royal Canin"},{"name":"Whiskas"}]`)
	completion := fakeCompletion(t, "SEARCH_PRODUCTS")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	rec := postChat(t, controller, `{"message":"I want to buy dog food"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Here are some products for you:\nPedigree, Drools, Royal Canin, and 1 more!", resp.Response)
	assert.Len(t, resp.Products, 4)
	assert.False(t, resp.KnowledgeUsed)
}

func TestChatHandler_NotConfiguredStillHTTP200(t *testing.T) {
	backend := fakeBackend(t, `[]`, `[]`)
	completion := fakeCompletion(t, "unused")
	controller := newTestController(t, "", backend.URL, completion.URL)

	rec := postChat(t, controller, `{"message":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "API key not configured.", resp.Response)
	assert.False(t, resp.KnowledgeUsed)
}

func TestChatHandler_CollectionsSerializeAsArrays(t *testing.T) {
	backend := fakeBackend(t, `[]`, `[]`)
	completion := fakeCompletion(t, "plain answer")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	rec := postChat(t, controller, `{"message":"hello"}`)

	body := rec.Body.String()
	assert.Contains(t, body, `"sources":[]`)
	assert.Contains(t, body, `"products":[]`)
	assert.NotContains(t, body, "null")
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	backend := fakeBackend(t, `[]`, `[]`)
	completion := fakeCompletion(t, "unused")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	rec := postChat(t, controller, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexHandler(t *testing.T) {
	backend := fakeBackend(t, `[]`, `[]`)
	completion := fakeCompletion(t, "unused")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	controller.IndexHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "test-model", body["model"])
	assert.Contains(t, body["message"], "PetCare")
}

func TestHealthHandler(t *testing.T) {
	backend := fakeBackend(t, `[]`, `[]`)
	completion := fakeCompletion(t, "unused")
	controller := newTestController(t, "sk-test", backend.URL, completion.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	controller.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

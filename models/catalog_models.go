package models

// KnowledgeRecord is one ranked entry returned by the knowledge
// service. The wire payload carries more fields (category, petType);
// only the ones the chat pipeline consumes are decoded.
type KnowledgeRecord struct {
	Title    string `json:"title"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Product is an opaque catalog record. The catalog schema is owned by
// the storefront backend, so products pass through as raw JSON objects
// and only the name is inspected here.
type Product map[string]interface{}

// Name returns the product's display name, or "" if absent
func (p Product) Name() string {
	name, _ := p["name"].(string)
	return name
}

package vecdesk

// SearchType selects the store's ranking algorithm.
type SearchType string

// Search type constants.
const (
	SearchBM25   SearchType = "bm25"
	SearchVector SearchType = "vector"
	SearchHybrid SearchType = "hybrid"
)

// Settings is the persisted connection: store url and optional credential.
type Settings struct {
	URL        string
	Credential string
}

// Property describes one property of a collection.
type Property struct {
	Name        string   `json:"name"`
	DataType    []string `json:"data_type"`
	Description string   `json:"description,omitempty"`
}

// Collection is one store class with its object count.
type Collection struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Count       int        `json:"count"`
	Properties  []Property `json:"properties"`
}

// PropertySchema is one property of a collection to create. DataType is a
// caller token such as "string", "int[]" or "date"; unknown scalars become
// "text".
type PropertySchema struct {
	Name        string
	DataType    string
	Description string
}

// CollectionSchema is the input of CreateCollection.
type CollectionSchema struct {
	Name        string
	Description string
	Properties  []PropertySchema
}

// Row is one object returned by GetPage or Search. ID, Score and Distance
// come from the store's sidecar; they are zero when the store sent none.
// Every search requests Score, but the store fills it only for bm25 and
// hybrid: vector rows carry their ranking in Distance (lower is closer)
// with Score 0. GetPage rows carry only ID.
type Row struct {
	ID         string         `json:"id"`
	Score      float64        `json:"score,omitempty"`
	Distance   float64        `json:"distance,omitempty"`
	Properties map[string]any `json:"properties"`
}

// Sort orders a page by one property. Order is "asc" (default) or "desc".
type Sort struct {
	Property string
	Order    string
}

// SearchRequest describes a search. Properties narrows what bm25 and hybrid
// match on; every row still carries all properties of the collection.
// Limit <= 0 uses the client default. Alpha weights hybrid search (0 = pure
// keyword, 1 = pure vector); nil leaves the store default.
type SearchRequest struct {
	Query      string
	Collection string
	Type       SearchType
	Limit      int
	Properties []string
	Alpha      *float64
}

// EmbeddingResult is the output of an Embedder.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Health is the result of Client.Health. Status is "ok", "degraded" (the
// store answers, the embedder does not) or "error" (the store is down).
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Errors map[string]string `json:"errors,omitempty"`
}

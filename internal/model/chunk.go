package model

// KnowledgeChunk indexed fragment of a farmer document, queried by the
// evidence retriever.
type KnowledgeChunk struct {
	ID           string `json:"id"`
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	Section      string `json:"section"`
	Tokens       int    `json:"tokens"`
	IndexedAt    string `json:"indexedAt"`
}

// Package retriever provides best-effort keyword search over indexed document
// chunks, used to attach supporting text to hierarchy nodes.
//
// The chunk set is held in memory and backed by an explicit, injectable store
// loaded at startup; there is no ambient singleton.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// ChunkStore persistent backing for indexed chunks.
type ChunkStore interface {
	AllChunks() ([]model.KnowledgeChunk, error)
	ReplaceDocumentChunks(documentID string, chunks []model.KnowledgeChunk) error
}

// Defaults mirror the indexing parameters the advisory documents were tuned
// with: 1000-char windows, 200-char overlap.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	minTermLength = 3 // query terms this short or shorter are noise
)

// Retriever term-frequency search over the indexed chunk set.
type Retriever struct {
	store        ChunkStore
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger

	mu     sync.RWMutex
	chunks []model.KnowledgeChunk
}

// New creates a retriever over the given store. Zero sizing falls back to the
// defaults; a nil logger is replaced with a no-op one.
func New(store ChunkStore, chunkSize, chunkOverlap int, logger *zap.Logger) *Retriever {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = DefaultChunkOverlap
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

// Load reads the persisted chunk set into memory. Called once at startup.
func (r *Retriever) Load() error {
	chunks, err := r.store.AllChunks()
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}

	r.mu.Lock()
	r.chunks = chunks
	r.mu.Unlock()

	r.logger.Info("knowledge chunks loaded", zap.Int("count", len(chunks)))
	return nil
}

// IndexDocument splits a document's text into overlapping chunks, replaces
// any previous chunks of the same document, and persists the result.
// Returns the number of chunks indexed.
func (r *Retriever) IndexDocument(doc model.FarmerDocument, text string, now time.Time) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	runes := []rune(text)
	stamp := now.UTC().Format(time.RFC3339)

	var chunks []model.KnowledgeChunk
	step := r.chunkSize - r.chunkOverlap
	for start := 0; start < len(runes); start += step {
		end := start + r.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		content := string(runes[start:end])
		if strings.TrimSpace(content) == "" {
			continue
		}

		chunks = append(chunks, model.KnowledgeChunk{
			ID:           fmt.Sprintf("chunk_%s_%d", doc.ID, len(chunks)),
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
			Content:      content,
			Category:     doc.Category,
			Section:      detectSection(content),
			Tokens:       int(math.Ceil(float64(len(content)) / 4)),
			IndexedAt:    stamp,
		})
	}

	if err := r.store.ReplaceDocumentChunks(doc.ID, chunks); err != nil {
		return 0, fmt.Errorf("persist chunks for %s: %w", doc.ID, err)
	}

	r.mu.Lock()
	kept := r.chunks[:0:0]
	for _, c := range r.chunks {
		if c.DocumentID != doc.ID {
			kept = append(kept, c)
		}
	}
	r.chunks = append(kept, chunks...)
	r.mu.Unlock()

	r.logger.Info("document indexed",
		zap.String("document", doc.Name), zap.Int("chunks", len(chunks)))
	return len(chunks), nil
}

// Search scores chunks by keyword relevance: one point per matched term with
// a bonus for terms matching at the start of a chunk. Chunks without any
// match are dropped; ties keep indexing order, so results are deterministic.
func (r *Retriever) Search(ctx context.Context, query string, limit int) ([]model.KnowledgeChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return nil, nil
	}

	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(t)) > minTermLength {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		chunk model.KnowledgeChunk
		score float64
		order int
	}

	var hits []scored
	for i, chunk := range r.chunks {
		contentLower := strings.ToLower(chunk.Content)
		var score float64
		for _, term := range terms {
			idx := strings.Index(contentLower, term)
			if idx < 0 {
				continue
			}
			score++
			if idx == 0 {
				score += 0.5
			}
		}
		if score > 0 {
			hits = append(hits, scored{chunk: chunk, score: score, order: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].order < hits[j].order
	})

	if limit > len(hits) {
		limit = len(hits)
	}
	out := make([]model.KnowledgeChunk, 0, limit)
	for _, h := range hits[:limit] {
		out = append(out, h.chunk)
	}
	return out, nil
}

// Count returns the size of the in-memory chunk set.
func (r *Retriever) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// detectSection tags a chunk with the document section it most likely came
// from, used by the audit UI for filtering.
func detectSection(text string) string {
	textLower := strings.ToLower(text)
	switch {
	case strings.Contains(textLower, "wniosek") || strings.Contains(textLower, "przyznanie"):
		return "Wniosek"
	case strings.Contains(textLower, "działka") || strings.Contains(textLower, "parcele"):
		return "Grunty"
	case strings.Contains(textLower, "ekoschemat") || strings.Contains(textLower, "praktyk"):
		return "Ekoschematy"
	}
	return "Dane ogólne"
}

package hierarchy

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// Retriever best-effort semantic evidence search.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]model.KnowledgeChunk, error)
}

// Annotator resolves node evidence queries against the retriever.
// A failed or timed-out lookup yields an empty match list for that node;
// annotation never fails the graph.
type Annotator struct {
	retriever     Retriever
	timeout       time.Duration
	maxConcurrent int
	logger        *zap.Logger
}

// NewAnnotator creates an annotator. Zero timeout defaults to 2s, zero
// concurrency to 4.
func NewAnnotator(r Retriever, timeout time.Duration, maxConcurrent int, logger *zap.Logger) *Annotator {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{
		retriever:     r,
		timeout:       timeout,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Annotate attaches retrieved snippets to every node carrying an evidence
// query. Lookups run concurrently; each goroutine writes only its own node,
// and final node content does not depend on completion order.
func (a *Annotator) Annotate(ctx context.Context, graph *model.HierarchyGraph) {
	if a.retriever == nil || graph == nil {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)

	for _, node := range graph.Nodes {
		limit := topK(node.Type)
		if limit == 0 || node.Evidence.Query == "" {
			continue
		}

		node := node
		g.Go(func() error {
			node.Evidence.Matches = a.search(ctx, node.Evidence.Query, limit)
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = g.Wait()
}

func (a *Annotator) search(ctx context.Context, query string, limit int) []model.EvidenceSnippet {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	chunks, err := a.retriever.Search(ctx, query, limit)
	if err != nil {
		a.logger.Debug("evidence lookup failed",
			zap.String("query", query), zap.Error(err))
		return []model.EvidenceSnippet{}
	}

	matches := make([]model.EvidenceSnippet, 0, len(chunks))
	for _, c := range chunks {
		matches = append(matches, model.EvidenceSnippet{
			ChunkID:      c.ID,
			DocumentName: c.DocumentName,
			Content:      c.Content,
		})
	}
	return matches
}

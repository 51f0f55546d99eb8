package retriever

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// memStore in-memory ChunkStore for tests.
type memStore struct {
	chunks []model.KnowledgeChunk
}

func (m *memStore) AllChunks() ([]model.KnowledgeChunk, error) {
	return append([]model.KnowledgeChunk(nil), m.chunks...), nil
}

func (m *memStore) ReplaceDocumentChunks(documentID string, chunks []model.KnowledgeChunk) error {
	kept := m.chunks[:0:0]
	for _, c := range m.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	m.chunks = append(kept, chunks...)
	return nil
}

var indexTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testDoc(id, name string) model.FarmerDocument {
	return model.FarmerDocument{ID: id, Name: name, Category: "WNIOSEK", CampaignYear: "2025"}
}

func TestIndexDocumentChunking(t *testing.T) {
	r := New(&memStore{}, 100, 20, nil)

	text := strings.Repeat("a", 250)
	n, err := r.IndexDocument(testDoc("d1", "doc.pdf"), text, indexTime)
	require.NoError(t, err)

	// Windows of 100 every 80 runes: [0,100) [80,180) [160,250) [240,250).
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, r.Count())
}

func TestIndexDocumentReplacesPreviousChunks(t *testing.T) {
	store := &memStore{}
	r := New(store, 100, 20, nil)

	_, err := r.IndexDocument(testDoc("d1", "doc.pdf"), strings.Repeat("x", 300), indexTime)
	require.NoError(t, err)
	first := r.Count()

	_, err = r.IndexDocument(testDoc("d1", "doc.pdf"), "krótki tekst wniosku", indexTime)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Count())
	assert.Less(t, r.Count(), first)
	assert.Len(t, store.chunks, 1)
}

func TestIndexEmptyTextIsNoop(t *testing.T) {
	r := New(&memStore{}, 0, 0, nil)

	n, err := r.IndexDocument(testDoc("d1", "doc.pdf"), "   \n  ", indexTime)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, r.Count())
}

func TestSearchKeywordScoring(t *testing.T) {
	r := New(&memStore{}, 0, 0, nil)

	_, err := r.IndexDocument(testDoc("d1", "wniosek.pdf"),
		"Ekoschemat międzyplony ozime wymaga utrzymania okrywy roślinnej.", indexTime)
	require.NoError(t, err)
	_, err = r.IndexDocument(testDoc("d2", "mapa.pdf"),
		"Mapa poglądowa gospodarstwa bez treści merytorycznej.", indexTime)
	require.NoError(t, err)

	hits, err := r.Search(context.Background(), "wymogi ekoschemat międzyplony", 5)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "d1", hits[0].DocumentID)
}

func TestSearchRanksByRelevance(t *testing.T) {
	r := New(&memStore{}, 0, 0, nil)

	_, err := r.IndexDocument(testDoc("d1", "a.pdf"), "działka rolna numer 145/2", indexTime)
	require.NoError(t, err)
	_, err = r.IndexDocument(testDoc("d2", "b.pdf"), "działka ewidencyjna 145/2 powierzchnia działki", indexTime)
	require.NoError(t, err)

	hits, err := r.Search(context.Background(), "działka powierzchnia", 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	// d2 matches both terms, d1 only one.
	assert.Equal(t, "d2", hits[0].DocumentID)
}

func TestSearchLimitAndNoMatch(t *testing.T) {
	r := New(&memStore{}, 0, 0, nil)
	_, err := r.IndexDocument(testDoc("d1", "a.pdf"), "ekoschemat praktyka wapnowanie", indexTime)
	require.NoError(t, err)

	hits, err := r.Search(context.Background(), "ekoschemat", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = r.Search(context.Background(), "zupełnie nieobecne słowa", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	// Short terms are dropped; an all-short query matches nothing.
	hits, err = r.Search(context.Background(), "a na we", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestLoadRestoresPersistedChunks(t *testing.T) {
	store := &memStore{chunks: []model.KnowledgeChunk{
		{ID: "chunk_d1_0", DocumentID: "d1", DocumentName: "stary.pdf", Content: "ekoschemat zachowany po restarcie"},
	}}

	r := New(store, 0, 0, nil)
	require.NoError(t, r.Load())

	hits, err := r.Search(context.Background(), "ekoschemat", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chunk_d1_0", hits[0].ID)
}

func TestDetectSection(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"złożony wniosek o przyznanie płatności", "Wniosek"},
		{"działka ewidencyjna 145/2", "Grunty"},
		{"wykaz praktyk w ramach ekoschematów", "Ekoschematy"},
		{"dane kontaktowe gospodarstwa", "Dane ogólne"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectSection(tt.text), tt.text)
	}
}

package store

import (
	"fmt"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// AllChunks returns every persisted knowledge chunk in indexing order.
// Implements retriever.ChunkStore.
func (s *Store) AllChunks() ([]model.KnowledgeChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, document_id, document_name, content, category, section,
		       tokens, indexed_at
		FROM knowledge_chunks ORDER BY document_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var chunks []model.KnowledgeChunk
	for rows.Next() {
		var c model.KnowledgeChunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.DocumentName, &c.Content,
			&c.Category, &c.Section, &c.Tokens, &c.IndexedAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// ReplaceDocumentChunks swaps a document's chunk set atomically.
// Implements retriever.ChunkStore.
func (s *Store) ReplaceDocumentChunks(documentID string, chunks []model.KnowledgeChunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM knowledge_chunks WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("clear chunks for %s: %w", documentID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO knowledge_chunks (id, document_id, document_name, content,
		                              category, section, tokens, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.Exec(c.ID, c.DocumentID, c.DocumentName, c.Content,
			c.Category, c.Section, c.Tokens, c.IndexedAt); err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

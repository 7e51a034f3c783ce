// Package storage provides the sqlite-vec content store and the append-only
// chat log store.
package storage

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"regexp"

	"snow-agent/internal/models"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3" // Import sqlite3 driver
)

func init() {
	sqlite_vec.Auto()
}

// Table names come from configuration; keep them out of SQL injection reach.
var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ChunkSearcher is the retrieval surface of the chunk store.
type ChunkSearcher interface {
	SearchSimilar(embedding []float32, topK int) ([]models.RetrievedChunk, error)
}

// SQLiteChunkStore holds document chunks and their embeddings in SQLite using
// the sqlite-vec extension for KNN search.
type SQLiteChunkStore struct {
	db              *sql.DB
	table           string
	vecTable        string
	embeddingLength int
}

// NewSQLiteChunkStore opens (or creates) the chunk store at dsn. The vec0
// virtual table is created lazily on first insert, when the embedding
// dimension is known.
func NewSQLiteChunkStore(dsn, table string) (*SQLiteChunkStore, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid chunks table name: %q", table)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteChunkStore{
		db:       db,
		table:    table,
		vecTable: "vec_" + table,
	}

	if err := store.initDB(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteChunkStore) initDB() error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		doc_path TEXT NOT NULL,
		chunk_id INTEGER NOT NULL,
		chunk_text TEXT NOT NULL,
		PRIMARY KEY (doc_path, chunk_id)
	);
	`, s.table)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create chunks table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteChunkStore) Close() error {
	return s.db.Close()
}

// serializeFloat32Vector converts a float32 slice to the byte format expected
// by sqlite-vec.
func serializeFloat32Vector(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(v))
	}
	return buf
}

// AddChunk stores one chunk with its embedding. Used by offline loaders and
// tests; the serving path only reads.
func (s *SQLiteChunkStore) AddChunk(docPath string, chunkID int, chunkText string, embedding []float32) error {
	if err := s.ensureVecTableExists(len(embedding)); err != nil {
		return fmt.Errorf("failed to ensure vec table exists: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	metaQuery := fmt.Sprintf(`INSERT INTO %s (doc_path, chunk_id, chunk_text) VALUES (?, ?, ?)`, s.table)
	if _, err := tx.Exec(metaQuery, docPath, chunkID, chunkText); err != nil {
		return fmt.Errorf("failed to insert chunk metadata: %w", err)
	}

	embeddingBytes := serializeFloat32Vector(embedding)
	vecQuery := fmt.Sprintf(`INSERT INTO %s (id, embedding) VALUES (?, ?)`, s.vecTable)
	if _, err := tx.Exec(vecQuery, chunkKey(docPath, chunkID), embeddingBytes); err != nil {
		return fmt.Errorf("failed to insert chunk vector: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func chunkKey(docPath string, chunkID int) string {
	return fmt.Sprintf("%s#%d", docPath, chunkID)
}

func (s *SQLiteChunkStore) ensureVecTableExists(embeddingLen int) error {
	if s.embeddingLength != 0 && s.embeddingLength != embeddingLen {
		return fmt.Errorf("cannot change embedding length from %d to %d with existing chunks", s.embeddingLength, embeddingLen)
	}

	var tableExists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", s.vecTable).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("failed to check %s existence: %w", s.vecTable, err)
	}

	if tableExists == 0 {
		s.embeddingLength = embeddingLen
		vecQuery := fmt.Sprintf(`
			CREATE VIRTUAL TABLE %s USING vec0(
				id TEXT PRIMARY KEY,
				embedding FLOAT[%d]
			)
		`, s.vecTable, s.embeddingLength)

		if _, err := s.db.Exec(vecQuery); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.vecTable, err)
		}
	} else if s.embeddingLength == 0 {
		s.embeddingLength = embeddingLen
	}

	return nil
}

// SearchSimilar performs KNN vector search using sqlite-vec and returns the
// topK nearest chunks in ascending-distance order. The store's ranking is
// final; no local re-ranking or deduplication happens here.
func (s *SQLiteChunkStore) SearchSimilar(embedding []float32, topK int) ([]models.RetrievedChunk, error) {
	embeddingBytes := serializeFloat32Vector(embedding)

	// sqlite-vec requires k as part of the MATCH expression.
	query := fmt.Sprintf(`
		SELECT
			c.doc_path,
			c.chunk_id,
			c.chunk_text,
			v.distance
		FROM %s v
		JOIN %s c ON (c.doc_path || '#' || c.chunk_id) = v.id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, s.vecTable, s.table)

	rows, err := s.db.Query(query, embeddingBytes, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to perform vector search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.RetrievedChunk
	for rows.Next() {
		var chunk models.RetrievedChunk
		if err := rows.Scan(&chunk.DocPath, &chunk.ChunkID, &chunk.ChunkText, &chunk.Distance); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		results = append(results, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// CountChunks returns the number of stored chunks.
func (s *SQLiteChunkStore) CountChunks() (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

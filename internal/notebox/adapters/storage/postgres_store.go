package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое хранилищем.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

const (
	selectDocumentQuery = "SELECT body FROM documents WHERE id = $1"
	upsertDocumentQuery = "INSERT INTO documents (id, body, updated_at) VALUES ($1, $2, now()) " +
		"ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()"

	errQueryDocument  = "error querying document"
	errUpsertDocument = "error saving document"
)

// PostgresStore хранит документ одной строкой JSONB в таблице documents.
type PostgresStore struct {
	pool       PgxPoolInterface
	documentID string
}

// NewPostgresStore создает хранилище документа в Postgres.
func NewPostgresStore(pool PgxPoolInterface, documentID string) repositories.DocumentStore {
	return &PostgresStore{pool: pool, documentID: documentID}
}

// Load читает строку документа; отсутствие строки означает пустой документ.
func (s *PostgresStore) Load(ctx context.Context) (*entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("repository", "document"), zap.String("method", "Load"))

	var body []byte
	err := s.pool.QueryRow(ctx, selectDocumentQuery, s.documentID).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "document row not found", zap.String("id", s.documentID))
			return entities.NewDocument(), nil
		}
		log.Error(ctx, errQueryDocument, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryDocument, err)
	}

	doc, err := decodeDocument(body)
	if err != nil {
		log.Error(ctx, errQueryDocument, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryDocument, err)
	}
	return doc, nil
}

// Save вставляет или обновляет строку документа.
func (s *PostgresStore) Save(ctx context.Context, doc *entities.Document) error {
	log := logger.Log(ctx).With(zap.String("repository", "document"), zap.String("method", "Save"))

	body, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, upsertDocumentQuery, s.documentID, body); err != nil {
		log.Error(ctx, errUpsertDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", errUpsertDocument, err)
	}
	return nil
}

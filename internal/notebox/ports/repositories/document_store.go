// Package repositories определяет порты хранения документа и отзыва сессий.
package repositories

import (
	"context"

	"notebox/internal/notebox/domain/entities"
)

// DocumentStore загружает и сохраняет документ целиком.
// Отсутствующий документ загружается как пустой.
type DocumentStore interface {
	Load(ctx context.Context) (*entities.Document, error)

	Save(ctx context.Context, doc *entities.Document) error
}

// DocumentGateway сериализует доступ к документу в пределах процесса.
// Update применяет fn к копии документа и сохраняет ее только если fn вернула nil.
type DocumentGateway interface {
	View(ctx context.Context, fn func(doc *entities.Document) error) error

	Update(ctx context.Context, fn func(doc *entities.Document) error) error
}

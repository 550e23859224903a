package storage

import (
	"context"
	"fmt"
	"sync"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/repositories"
)

// Gateway сериализует все обращения к документу одним мьютексом, поэтому
// конкурентные изменения в пределах процесса не теряются.
type Gateway struct {
	mu    sync.Mutex
	store repositories.DocumentStore
}

// NewGateway создает шлюз поверх хранилища.
func NewGateway(store repositories.DocumentStore) *Gateway {
	return &Gateway{store: store}
}

// View загружает документ и передает его fn. Изменения не сохраняются.
func (g *Gateway) View(ctx context.Context, fn func(doc *entities.Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	return fn(doc)
}

// Update загружает документ, применяет fn и сохраняет результат.
// Если fn вернула ошибку, хранилище не изменяется.
func (g *Gateway) Update(ctx context.Context, fn func(doc *entities.Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := g.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

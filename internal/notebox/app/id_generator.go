package app

import (
	"sync"
	"time"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/services"
)

// TimeIDGenerator выдает идентификаторы на основе текущего времени в миллисекундах.
// Идентификатор всегда больше предыдущего выданного и больше любого в документе.
type TimeIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator создает генератор; nil означает time.Now.
func NewIDGenerator(now func() time.Time) services.IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &TimeIDGenerator{now: now}
}

// NextID возвращает следующий идентификатор для документа.
func (g *TimeIDGenerator) NextID(doc *entities.Document) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	if doc != nil {
		if maxID := doc.MaxNoteID(); id <= maxID {
			id = maxID + 1
		}
	}

	g.last = id
	return id
}

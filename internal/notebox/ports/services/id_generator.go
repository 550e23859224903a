package services

import "notebox/internal/notebox/domain/entities"

// IDGenerator выдает идентификаторы заметок, уникальные в пределах документа.
type IDGenerator interface {
	NextID(doc *entities.Document) int64
}

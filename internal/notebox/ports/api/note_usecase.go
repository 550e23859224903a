package api

import (
	"context"

	"notebox/internal/notebox/domain/entities"
)

// CategoryCount - количество заметок в категории.
type CategoryCount struct {
	Name  string
	Count int
}

// NoteUseCase определяет операции с заметками текущего пользователя.
type NoteUseCase interface {
	ListNotes(ctx context.Context, token string, filter entities.NoteFilter) ([]entities.Note, error)

	CreateNote(ctx context.Context, token string, fields entities.NoteFields) (*entities.Note, error)

	UpdateNote(ctx context.Context, token string, noteID int64, fields entities.NoteFields) (*entities.Note, error)

	DeleteNote(ctx context.Context, token string, noteID int64) error

	CategoryCounts(ctx context.Context, token string) ([]CategoryCount, error)
}

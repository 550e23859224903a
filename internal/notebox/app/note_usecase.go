package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/api"
	"notebox/internal/notebox/ports/repositories"
	"notebox/internal/notebox/ports/services"
	"notebox/pkg/logger"
)

// CategoryAll - псевдокатегория со счетчиком всех заметок.
const CategoryAll = "All"

const (
	methodListNotes      = "ListNotes"
	methodCreateNote     = "CreateNote"
	methodUpdateNote     = "UpdateNote"
	methodDeleteNote     = "DeleteNote"
	methodCategoryCounts = "CategoryCounts"

	msgNotesListed  = "notes listed"
	msgNoteCreated  = "note created"
	msgNoteUpdated  = "note updated"
	msgNoteDeleted  = "note deleted"
	msgNoteNotFound = "note not found"
	msgUnknownUser  = "token identity has no registered user"

	errCtxListingNotes  = "failed to list notes"
	errCtxCreatingNote  = "failed to create note"
	errCtxUpdatingNote  = "failed to update note"
	errCtxDeletingNote  = "failed to delete note"
	errCtxCountingNotes = "failed to count notes"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Все операции адресуют только список заметок владельца токена.
type NoteUseCase struct {
	docs         repositories.DocumentGateway
	tokenService services.TokenService
	ids          services.IDGenerator
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	docs repositories.DocumentGateway,
	tokenService services.TokenService,
	ids services.IDGenerator,
) api.NoteUseCase {
	return &NoteUseCase{
		docs:         docs,
		tokenService: tokenService,
		ids:          ids,
	}
}

// ListNotes возвращает заметки пользователя, прошедшие фильтр. Отсутствие списка - не ошибка.
func (uc *NoteUseCase) ListNotes(ctx context.Context, token string, filter entities.NoteFilter) ([]entities.Note, error) {
	identity, err := authenticate(ctx, uc.tokenService, token)
	if err != nil {
		return nil, err
	}
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("identity", identity))

	var notes []entities.Note
	err = uc.docs.View(ctx, func(doc *entities.Document) error {
		notes = doc.NotesOf(identity)
		return nil
	})
	if err != nil {
		log.Error(ctx, errCtxListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	notes = slices.DeleteFunc(notes, func(n entities.Note) bool { return !n.Matches(filter) })

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)))
	return notes, nil
}

// CreateNote добавляет заметку в конец списка пользователя.
func (uc *NoteUseCase) CreateNote(ctx context.Context, token string, fields entities.NoteFields) (*entities.Note, error) {
	identity, err := authenticate(ctx, uc.tokenService, token)
	if err != nil {
		return nil, err
	}
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("identity", identity))

	var note entities.Note
	err = uc.docs.Update(ctx, func(doc *entities.Document) error {
		// Список заметок заводится только для зарегистрированного пользователя.
		if !doc.HasUser(identity) {
			return fmt.Errorf("%w: %w", ErrUnauthorized, entities.ErrUserNotFound)
		}
		note = entities.NewNote(uc.ids.NextID(doc), fields)
		doc.AppendNote(identity, note)
		return nil
	})
	if errors.Is(err, ErrUnauthorized) {
		log.Warn(ctx, msgUnknownUser)
		return nil, err
	}
	if err != nil {
		log.Error(ctx, errCtxCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("note_id", note.ID))
	return &note, nil
}

// UpdateNote заменяет заголовок, содержимое и категорию заметки.
func (uc *NoteUseCase) UpdateNote(
	ctx context.Context,
	token string,
	noteID int64,
	fields entities.NoteFields,
) (*entities.Note, error) {
	identity, err := authenticate(ctx, uc.tokenService, token)
	if err != nil {
		return nil, err
	}
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateNote),
		zap.String("identity", identity),
		zap.Int64("note_id", noteID),
	)

	var updated entities.Note
	err = uc.docs.Update(ctx, func(doc *entities.Document) error {
		note, err := doc.FindNote(identity, noteID)
		if err != nil {
			return err
		}
		note.Apply(fields)
		updated = *note
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return nil, fmt.Errorf("%w: %d", ErrNotFound, noteID)
		}
		log.Error(ctx, errCtxUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return &updated, nil
}

// DeleteNote удаляет заметку. Повторное удаление возвращает ErrNotFound.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, token string, noteID int64) error {
	identity, err := authenticate(ctx, uc.tokenService, token)
	if err != nil {
		return err
	}
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteNote),
		zap.String("identity", identity),
		zap.Int64("note_id", noteID),
	)

	err = uc.docs.Update(ctx, func(doc *entities.Document) error {
		return doc.RemoveNote(identity, noteID)
	})
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
			return fmt.Errorf("%w: %d", ErrNotFound, noteID)
		}
		log.Error(ctx, errCtxDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// CategoryCounts возвращает число заметок в каждой известной категории.
// Первым идет CategoryAll, произвольные категории следуют за известными по алфавиту.
func (uc *NoteUseCase) CategoryCounts(ctx context.Context, token string) ([]api.CategoryCount, error) {
	identity, err := authenticate(ctx, uc.tokenService, token)
	if err != nil {
		return nil, err
	}
	log := logger.Log(ctx).With(zap.String("method", methodCategoryCounts), zap.String("identity", identity))

	var notes []entities.Note
	err = uc.docs.View(ctx, func(doc *entities.Document) error {
		notes = doc.NotesOf(identity)
		return nil
	})
	if err != nil {
		log.Error(ctx, errCtxCountingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingNotes, err)
	}

	return countByCategory(notes), nil
}

func countByCategory(notes []entities.Note) []api.CategoryCount {
	known := entities.Categories()
	counts := make(map[string]int, len(known))
	for _, n := range notes {
		counts[n.Category]++
	}

	result := make([]api.CategoryCount, 0, len(known)+1)
	result = append(result, api.CategoryCount{Name: CategoryAll, Count: len(notes)})
	for _, name := range known {
		result = append(result, api.CategoryCount{Name: name, Count: counts[name]})
		delete(counts, name)
	}

	// "All" уже учтен первой строкой.
	delete(counts, CategoryAll)
	extra := make([]string, 0, len(counts))
	for name := range counts {
		if name != "" {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		result = append(result, api.CategoryCount{Name: name, Count: counts[name]})
	}
	return result
}

// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebox/internal/notebox/adapters/http/dto"
	"notebox/internal/notebox/adapters/http/middleware"
	"notebox/internal/notebox/app"
	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/api"
	"notebox/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerCategories = "handling note categories request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnauthorized       = "Unauthorized"
	ErrMsgInvalidToken       = "Invalid token"
	ErrMsgNoteNotFound       = "Note not found"
	ErrMsgInternal           = "Internal Server Error"

	MsgNoteAdded   = "Note added successfully"
	MsgNoteUpdated = "Note updated successfully"
	MsgNoteDeleted = "Note deleted successfully"

	paramNoteID = "id"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

// ListNotes возвращает заметки пользователя с необязательными фильтрами category и q.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	filter := entities.NoteFilter{
		Category: ctx.Query("category"),
		Query:    ctx.Query("q"),
	}

	notes, err := h.noteUseCase.ListNotes(requestCtx, token, filter)
	if err != nil {
		return handleError(ctx, log, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewListNotesResponse(notes))
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var req dto.NoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, token, req.Fields())
	if err != nil {
		return handleError(ctx, log, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NoteMessageResponse{
		Message: MsgNoteAdded,
		Note:    dto.NewNoteResponse(*note),
	})
}

// UpdateNote заменяет поля заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var req dto.NoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	// Нечисловой id не может совпасть ни с одной заметкой.
	noteID, err := strconv.ParseInt(ctx.Params(paramNoteID), 10, 64)
	if err != nil {
		noteID = -1
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, token, noteID, req.Fields())
	if err != nil {
		return handleError(ctx, log, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NoteMessageResponse{
		Message: MsgNoteUpdated,
		Note:    dto.NewNoteResponse(*note),
	})
}

// DeleteNote удаляет заметку.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	noteID, err := strconv.ParseInt(ctx.Params(paramNoteID), 10, 64)
	if err != nil {
		noteID = -1
	}

	if err := h.noteUseCase.DeleteNote(requestCtx, token, noteID); err != nil {
		return handleError(ctx, log, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.MessageResponse{Message: MsgNoteDeleted})
}

// Categories возвращает количество заметок по категориям.
func (h *Handler) Categories(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Categories"))
	log.Debug(requestCtx, LogHandlerCategories)

	token := middleware.SessionToken(ctx)
	if token == "" {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	counts, err := h.noteUseCase.CategoryCounts(requestCtx, token)
	if err != nil {
		return handleError(ctx, log, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewCategoriesResponse(counts))
}

// handleError преобразует ошибки бизнес-логики в HTTP-ответы.
func handleError(ctx fiber.Ctx, log *logger.Logger, err error) error {
	requestCtx := middleware.RequestContext(ctx)

	switch {
	case errors.Is(err, app.ErrUnauthorized):
		log.Debug(requestCtx, ErrMsgInvalidToken, zap.Error(err))
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgInvalidToken)
	case errors.Is(err, app.ErrNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgNoteNotFound)
	case errors.Is(err, app.ErrInvalidParams):
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}

	log.Error(requestCtx, ErrMsgInternal, zap.Error(err))
	return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
}

func sendError(ctx fiber.Ctx, statusCode int, message string) error {
	return sendJSON(ctx, statusCode, dto.ErrorResponse{Error: message})
}

func sendJSON(ctx fiber.Ctx, statusCode int, body any) error {
	if err := ctx.Status(statusCode).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

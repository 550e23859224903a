package dto

import (
	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/api"
)

// NoteRequest содержит поля заметки для создания и обновления.
type NoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Fields преобразует запрос в доменные поля заметки.
func (r NoteRequest) Fields() entities.NoteFields {
	return entities.NoteFields{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
	}
}

// NoteResponse содержит данные заметки.
type NoteResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	VideoEmbedURL string `json:"video_embed_url,omitempty"`
}

// NewNoteResponse преобразует доменную заметку в ответ.
func NewNoteResponse(note entities.Note) NoteResponse {
	return NoteResponse{
		ID:            note.ID,
		Title:         note.Title,
		Content:       note.Content,
		Category:      note.Category,
		VideoEmbedURL: note.VideoEmbedURL(),
	}
}

// ListNotesResponse содержит список заметок.
type ListNotesResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// NewListNotesResponse преобразует список заметок; пустой список сериализуется как [].
func NewListNotesResponse(notes []entities.Note) ListNotesResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return ListNotesResponse{Notes: out}
}

// NoteMessageResponse - ответ на создание и обновление.
type NoteMessageResponse struct {
	Message string       `json:"message"`
	Note    NoteResponse `json:"note"`
}

// MessageResponse - ответ на удаление.
type MessageResponse struct {
	Message string `json:"message"`
}

// CategoryCountResponse - счетчик одной категории.
type CategoryCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoriesResponse содержит счетчики категорий.
type CategoriesResponse struct {
	Categories []CategoryCountResponse `json:"categories"`
}

// NewCategoriesResponse преобразует счетчики категорий.
func NewCategoriesResponse(counts []api.CategoryCount) CategoriesResponse {
	out := make([]CategoryCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryCountResponse{Name: c.Name, Count: c.Count})
	}
	return CategoriesResponse{Categories: out}
}

package entities

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoteNotFound возвращается, когда заметка или список заметок пользователя отсутствует.
var ErrNoteNotFound = errors.New("note not found")

// Известные категории заметок. Категория может быть и произвольной строкой.
const (
	CategoryVideos      = "Videos"
	CategoryWishlist    = "Wishlist"
	CategoryAssignments = "Assignments"
	CategoryProjects    = "Projects"
	CategoryWork        = "Work"
	CategoryStudy       = "Study"
	CategoryPersonal    = "Personal"
)

// Categories возвращает известные категории в порядке отображения.
func Categories() []string {
	return []string{
		CategoryVideos,
		CategoryWishlist,
		CategoryAssignments,
		CategoryProjects,
		CategoryWork,
		CategoryStudy,
		CategoryPersonal,
	}
}

var youtubeIDPattern = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([^&?/\s]+)`)

// Note представляет заметку пользователя.
type Note struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// NoteFields - изменяемая часть заметки.
type NoteFields struct {
	Title    string
	Content  string
	Category string
}

// NoteFilter ограничивает выборку заметок. Пустые поля не фильтруют.
type NoteFilter struct {
	Category string
	Query    string
}

// NewNote создает заметку с заданным идентификатором.
func NewNote(id int64, fields NoteFields) Note {
	return Note{
		ID:       id,
		Title:    fields.Title,
		Content:  fields.Content,
		Category: fields.Category,
	}
}

// Apply заменяет заголовок, содержимое и категорию. Идентификатор не меняется.
func (n *Note) Apply(fields NoteFields) {
	n.Title = fields.Title
	n.Content = fields.Content
	n.Category = fields.Category
}

// VideoID возвращает идентификатор YouTube-ролика из содержимого заметки.
func (n Note) VideoID() (string, bool) {
	m := youtubeIDPattern.FindStringSubmatch(n.Content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// VideoEmbedURL возвращает ссылку для встраивания ролика, если заметка
// относится к категории Videos и содержит ссылку на YouTube.
func (n Note) VideoEmbedURL() string {
	if n.Category != CategoryVideos {
		return ""
	}
	id, ok := n.VideoID()
	if !ok {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// Matches сообщает, проходит ли заметка фильтр.
func (n Note) Matches(filter NoteFilter) bool {
	if filter.Category != "" && n.Category != filter.Category {
		return false
	}
	if filter.Query == "" {
		return true
	}
	q := strings.ToLower(filter.Query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

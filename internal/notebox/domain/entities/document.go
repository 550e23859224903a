package entities

import "slices"

// Document - корневой агрегат хранилища: пользователи и их заметки.
// Сохраняется и загружается только целиком.
type Document struct {
	Users map[string]User   `json:"users"`
	Notes map[string][]Note `json:"notes"`
}

// NewDocument создает пустой документ.
func NewDocument() *Document {
	return &Document{
		Users: make(map[string]User),
		Notes: make(map[string][]Note),
	}
}

// Normalize инициализирует отсутствующие разделы после десериализации.
func (d *Document) Normalize() *Document {
	if d.Users == nil {
		d.Users = make(map[string]User)
	}
	if d.Notes == nil {
		d.Notes = make(map[string][]Note)
	}
	return d
}

// Clone возвращает глубокую копию документа.
func (d *Document) Clone() *Document {
	out := &Document{
		Users: make(map[string]User, len(d.Users)),
		Notes: make(map[string][]Note, len(d.Notes)),
	}
	for k, u := range d.Users {
		out.Users[k] = u
	}
	for k, notes := range d.Notes {
		if notes == nil {
			out.Notes[k] = nil
			continue
		}
		out.Notes[k] = slices.Clone(notes)
	}
	return out
}

// HasUser сообщает, зарегистрирован ли идентификатор.
func (d *Document) HasUser(identity string) bool {
	_, ok := d.Users[identity]
	return ok
}

// AddUser добавляет пользователя вместе с пустым списком заметок.
func (d *Document) AddUser(user User) {
	d.Users[user.Identity] = user
	if _, ok := d.Notes[user.Identity]; !ok {
		d.Notes[user.Identity] = []Note{}
	}
}

// NotesOf возвращает копию заметок пользователя; nil-список заменяется пустым.
func (d *Document) NotesOf(identity string) []Note {
	notes, ok := d.Notes[identity]
	if !ok || notes == nil {
		return []Note{}
	}
	return slices.Clone(notes)
}

// AppendNote добавляет заметку, лениво создавая список пользователя.
func (d *Document) AppendNote(identity string, note Note) {
	d.Notes[identity] = append(d.Notes[identity], note)
}

// FindNote возвращает указатель на заметку внутри списка пользователя.
func (d *Document) FindNote(identity string, id int64) (*Note, error) {
	notes, ok := d.Notes[identity]
	if !ok {
		return nil, ErrNoteNotFound
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, ErrNoteNotFound
}

// RemoveNote удаляет заметку из списка пользователя.
func (d *Document) RemoveNote(identity string, id int64) error {
	notes, ok := d.Notes[identity]
	if !ok {
		return ErrNoteNotFound
	}
	idx := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if idx < 0 {
		return ErrNoteNotFound
	}
	d.Notes[identity] = slices.Delete(notes, idx, idx+1)
	return nil
}

// MaxNoteID возвращает наибольший идентификатор заметки в документе.
func (d *Document) MaxNoteID() int64 {
	var maxID int64
	for _, notes := range d.Notes {
		for _, n := range notes {
			if n.ID > maxID {
				maxID = n.ID
			}
		}
	}
	return maxID
}

// Package storage содержит реализации хранилища документа и шлюз,
// сериализующий цикл чтение-изменение-запись.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"notebox/internal/notebox/domain/entities"
)

// ErrMalformedDocument возвращается, если сохраненный документ не удается разобрать.
var ErrMalformedDocument = errors.New("malformed document")

// decodeDocument разбирает документ; пустые данные означают пустой документ.
func decodeDocument(data []byte) (*entities.Document, error) {
	if len(data) == 0 {
		return entities.NewDocument(), nil
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return doc.Normalize(), nil
}

func encodeDocument(doc *entities.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc.Clone().Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

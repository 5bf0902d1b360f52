package handlers

import (
	"context"
	"encoding/json"
)

// FieldKind admin formundaki alan türü.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldEmail    FieldKind = "email"
	FieldURL      FieldKind = "url"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldFile     FieldKind = "file"
)

// Option select alanı seçeneği.
type Option struct {
	Value string
	Label string
}

// Field oluşturma/düzenleme formundaki tek alan. Name backend'in beklediği anahtardır.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Help     string
	Options  []Option
	// Lookup seçenekleri her form açılışında backend'den okur (örn. şehir -> ülke).
	Lookup func(ctx context.Context) ([]Option, error)
}

// Column liste tablosundaki sütun.
type Column struct {
	Key   string
	Label string
	Image bool
	Money bool
}

// Resource bir backend kaynağının admin ekranı tanımı. Fields boşsa kaynak
// salt okunurdur (liste + silme).
type Resource struct {
	Slug      string
	Title     string
	Singular  string
	SortBy    string
	Columns   []Column
	Fields    []Field
	Deletable bool
	Viewable  bool // Satırların detay sayfası var mı (/:id)
}

// Editable oluşturma/düzenleme formu var mı?
func (r Resource) Editable() bool { return len(r.Fields) > 0 }

// HasFiles form multipart gönderilmeli mi?
func (r Resource) HasFiles() bool {
	for _, f := range r.Fields {
		if f.Kind == FieldFile {
			return true
		}
	}
	return false
}

// toRows kayıtları json anahtarlı haritalara çevirir; şablonlar sütunları
// Column.Key ile okur.
func toRows(items any) []map[string]interface{} {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	return rows
}

func toRow(item any) map[string]interface{} {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var row map[string]interface{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil
	}
	return row
}

package models

import (
	json "github.com/goccy/go-json"
)

// Document is a stored entity: its store-assigned id plus its persisted
// fields. On the wire the id is flattened into the object as "id".
type Document struct {
	ID     string
	Fields map[string]any
}

func NewDocument(id string, fields map[string]any) Document {
	if fields == nil {
		fields = make(map[string]any)
	}
	return Document{ID: id, Fields: fields}
}

func (d Document) Get(key string) any {
	if d.Fields == nil {
		return nil
	}
	return d.Fields[key]
}

func (d Document) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		flat[k] = v
	}
	flat["id"] = d.ID
	return json.Marshal(flat)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if flat == nil {
		flat = make(map[string]any)
	}
	d.ID = String(flat["id"])
	delete(flat, "id")
	d.Fields = flat
	return nil
}

package domain

import "encoding/json"

// RawJSON keeps the JSON an entity was decoded from.
// It is embedded in every API entity.
type RawJSON struct {
	Raw json.RawMessage `json:"-"`
}

// SetRaw records the source JSON. The bytes are copied.
func (r *RawJSON) SetRaw(data []byte) {
	r.Raw = append(json.RawMessage(nil), data...)
}

// RawBytes returns the source JSON, or nil if the entity was built locally.
func (r RawJSON) RawBytes() json.RawMessage {
	return r.Raw
}

// RawSetter is implemented by entities that keep their source JSON.
type RawSetter interface {
	SetRaw(data []byte)
}

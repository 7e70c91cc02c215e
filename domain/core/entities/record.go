package entities

import (
	"encoding/json"
)

// Kind tags a record with the response schema it belongs to
type Kind string

const (
	KindPage         Kind = "page"
	KindPost         Kind = "post"
	KindComment      Kind = "comment"
	KindLike         Kind = "like"
	KindMention      Kind = "mention"
	KindConversation Kind = "conversation"
	KindMessage      Kind = "message"
	KindInsight      Kind = "insight"
	KindUser         Kind = "user"
)

// Field names the gateway itself reads or writes
const (
	FieldID     = "id"
	FieldName   = "name"
	FieldFrom   = "from"
	FieldPostID = "post_id"
	FieldValue  = "value"
)

// Record is an upstream object: a mapping from field name to a scalar, a
// nested mapping or a nested list. Fields the gateway does not model are kept
// as they came.
type Record map[string]interface{}

// ID returns the upstream identifier, or "" when absent or not a string.
func (r Record) ID() string {
	return r.String(FieldID)
}

// String returns a string field, or "" when absent or of another type.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Nested returns the field as a record when it holds a mapping. The returned
// record shares storage with r, so writes to it are visible through r.
func (r Record) Nested(key string) (Record, bool) {
	return AsRecord(r[key])
}

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Merge copies every field of other into r; fields of other win.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

// Clone returns a deep copy of nested mappings and lists.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]interface{}(r)).(Record)
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(Record, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case Record:
		return cloneValue(map[string]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return v
	}
}

// AsRecord converts a decoded JSON object into a Record without copying.
func AsRecord(v interface{}) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, t != nil
	case map[string]interface{}:
		return Record(t), t != nil
	default:
		return nil, false
	}
}

// RawCollection is a connection page exactly as the upstream returned it.
// Items are left undecoded so malformed entries survive until normalization.
type RawCollection struct {
	Data   []interface{}
	Paging map[string]interface{}
}

// PagedCollection is one page of normalized records. Paging is the upstream
// cursor block, passed through untouched; only one page is ever fetched.
type PagedCollection struct {
	Kind   Kind
	Items  []Record
	Paging map[string]interface{}
}

// Len returns the number of items.
func (c *PagedCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// MarshalJSON renders the collection as {"data": [...], "paging": {...}}.
func (c PagedCollection) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Record{}
	}
	return json.Marshal(struct {
		Data   []Record               `json:"data"`
		Paging map[string]interface{} `json:"paging,omitempty"`
	}{Data: items, Paging: c.Paging})
}

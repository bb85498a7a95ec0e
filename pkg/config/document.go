package config

import "time"

// Document is one loaded configuration file. Raw holds the decoded JSON
// object as-is; lookups never mutate it.
type Document struct {
	Raw      map[string]any
	LoadedAt time.Time
}

// Content returns the raw document object, nil for a document that never
// loaded. Safe on a nil receiver.
func (d *Document) Content() map[string]any {
	if d == nil {
		return nil
	}
	return d.Raw
}

// Section walks nested objects by key and returns the object at the end of
// the path, nil when any key is absent or not an object.
func (d *Document) Section(keys ...string) map[string]any {
	cur := d.Content()
	for _, key := range keys {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// String returns the string value at the path. The last key addresses the
// value, the preceding ones nested sections.
func (d *Document) String(keys ...string) (string, bool) {
	section, last := d.split(keys)
	v, ok := section[last].(string)
	return v, ok
}

// Float returns the numeric value at the path. JSON numbers always decode
// to float64.
func (d *Document) Float(keys ...string) (float64, bool) {
	section, last := d.split(keys)
	v, ok := section[last].(float64)
	return v, ok
}

// Strings returns the string list at the path. Missing values and
// non-string elements yield an empty list, never an error.
func (d *Document) Strings(keys ...string) []string {
	section, last := d.split(keys)
	list, ok := section[last].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (d *Document) split(keys []string) (map[string]any, string) {
	if len(keys) == 0 {
		return nil, ""
	}
	return d.Section(keys[:len(keys)-1]...), keys[len(keys)-1]
}

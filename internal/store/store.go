// Package store persists ordered collections of records as JSON array
// files. Records are keyed by their "id" field; the bottom layer works on
// raw JSON so fields this code does not know about survive rewrites.
//
// Every write is a read-modify-rewrite of the whole file (O(n) per call —
// acceptable because corpora stay small per cycle) finished with a rename,
// so readers never observe a partially written file. The pattern is NOT
// safe under concurrent writers: ghostroot is a single-process,
// single-writer pipeline and the store assumes exactly that.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CorruptError reports a collection file that exists but does not hold a
// JSON array. Reads never return partial data from a corrupt file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt collection %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// DefaultSearchFields are the artifact fields searched when the caller
// names none.
var DefaultSearchFields = []string{"id", "language", "kind", "text"}

// readList loads the raw elements of the collection at path, creating the
// file with an empty array if it is missing. Array entries that are not
// JSON objects are wrapped as visible placeholder objects rather than
// dropped.
func readList(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create collection dir: %w", err)
		}
		if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
			return nil, fmt.Errorf("failed to initialize collection: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	for i, item := range items {
		if !isObject(item) {
			placeholder, err := json.Marshal(map[string]any{
				"invalid_index": i,
				"value":         item,
			})
			if err != nil {
				return nil, &CorruptError{Path: path, Err: err}
			}
			items[i] = placeholder
		}
	}
	return items, nil
}

func isObject(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "{")
}

// writeList rewrites the whole collection via a temp file and rename.
func writeList(path string, items []json.RawMessage) error {
	if items == nil {
		items = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace collection: %w", err)
	}
	return nil
}

// Load reads every record of the collection at path. A missing file is
// lazily initialized to an empty collection; a file that is not a JSON
// array fails with *CorruptError and is left untouched.
func Load[T any](path string) ([]T, error) {
	raw, err := readList(path)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var rec T
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, &CorruptError{Path: path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Append adds one record to the end of the collection.
func Append[T any](path string, record T) error {
	raw, err := readList(path)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return writeList(path, append(raw, json.RawMessage(msg)))
}

// Update names a target record by id and the field values to overwrite.
// Field keys are dotted paths into the record, e.g. "metadata.gloss".
type Update struct {
	ID     string
	Fields map[string]any
}

// ApplyUpdates overwrites exactly the declared fields on every record
// whose id matches an update, stamps stampField (also a dotted path, may
// be empty) with the current unix time, and rewrites the collection.
// Updates with no matching record are silently dropped; the returned count
// is the number of records actually matched. Unmatched records keep their
// original bytes.
func ApplyUpdates(path string, updates []Update, stampField string) (int, error) {
	raw, err := readList(path)
	if err != nil {
		return 0, err
	}

	byID := make(map[string]Update, len(updates))
	for _, u := range updates {
		if u.ID != "" {
			byID[u.ID] = u
		}
	}
	if len(byID) == 0 {
		return 0, nil
	}

	matched := 0
	for i, msg := range raw {
		var m map[string]any
		if err := json.Unmarshal(msg, &m); err != nil {
			continue
		}
		id, _ := m["id"].(string)
		u, ok := byID[id]
		if !ok {
			continue
		}
		for field, value := range u.Fields {
			setPath(m, field, value)
		}
		if stampField != "" {
			setPath(m, stampField, time.Now().Unix())
		}
		updated, err := json.Marshal(m)
		if err != nil {
			return matched, fmt.Errorf("failed to marshal record %s: %w", id, err)
		}
		raw[i] = updated
		matched++
	}

	if matched == 0 {
		return 0, nil
	}
	return matched, writeList(path, raw)
}

// setPath writes value at the dotted path, creating intermediate objects
// as needed. A non-object in the middle of the path is replaced.
func setPath(m map[string]any, dotted string, value any) {
	parts := strings.Split(dotted, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Search returns the records whose named fields contain keyword,
// case-insensitive. An empty keyword returns no records, never the whole
// collection. Non-string field values are matched on their default
// formatting.
func Search[T any](records []T, keyword string, fields []string) []T {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}

	var matches []T
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		var hay []string
		for _, f := range fields {
			v, ok := lookupPath(m, f)
			if !ok || v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				hay = append(hay, s)
			} else {
				hay = append(hay, fmt.Sprintf("%v", v))
			}
		}
		if strings.Contains(strings.ToLower(strings.Join(hay, " ")), kw) {
			matches = append(matches, rec)
		}
	}
	return matches
}

func lookupPath(m map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			return nil, false
		}
		m = next
	}
	v, ok := m[parts[len(parts)-1]]
	return v, ok
}

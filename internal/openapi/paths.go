package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Paths maps a path template to its operations, in insertion order
type Paths struct {
	keys  []string
	items map[string]*PathItem
}

// NewPaths creates an empty Paths
func NewPaths() Paths {
	return Paths{items: make(map[string]*PathItem)}
}

// Ensure returns the item for path, creating it at the end if absent
func (p *Paths) Ensure(path string) *PathItem {
	if p.items == nil {
		p.items = make(map[string]*PathItem)
	}
	if item, ok := p.items[path]; ok {
		return item
	}
	item := NewPathItem()
	p.items[path] = item
	p.keys = append(p.keys, path)
	return item
}

// Get returns the item for path or nil
func (p Paths) Get(path string) *PathItem {
	return p.items[path]
}

// Keys returns the paths in insertion order
func (p Paths) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p Paths) Len() int {
	return len(p.keys)
}

// MarshalJSON writes the paths as an object in insertion order
func (p Paths) MarshalJSON() ([]byte, error) {
	return marshalOrdered(p.keys, func(k string) any { return p.items[k] })
}

// UnmarshalJSON reads an object, keeping key order
func (p *Paths) UnmarshalJSON(data []byte) error {
	*p = NewPaths()
	return unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		item := p.Ensure(key)
		return json.Unmarshal(raw, item)
	})
}

// PathItem maps a lowercase HTTP verb to an Operation, in insertion order
type PathItem struct {
	methods []string
	ops     map[string]*Operation
}

// NewPathItem creates an empty PathItem
func NewPathItem() *PathItem {
	return &PathItem{ops: make(map[string]*Operation)}
}

// Set stores op under method. Replacing an existing method keeps its position.
func (pi *PathItem) Set(method string, op *Operation) {
	if pi.ops == nil {
		pi.ops = make(map[string]*Operation)
	}
	if _, ok := pi.ops[method]; !ok {
		pi.methods = append(pi.methods, method)
	}
	pi.ops[method] = op
}

// Get returns the operation for method or nil
func (pi *PathItem) Get(method string) *Operation {
	if pi == nil {
		return nil
	}
	return pi.ops[method]
}

// Methods returns the verbs in insertion order
func (pi *PathItem) Methods() []string {
	if pi == nil {
		return nil
	}
	return append([]string(nil), pi.methods...)
}

func (pi *PathItem) Len() int {
	if pi == nil {
		return 0
	}
	return len(pi.methods)
}

// MarshalJSON writes the operations as an object in insertion order
func (pi PathItem) MarshalJSON() ([]byte, error) {
	return marshalOrdered(pi.methods, func(k string) any { return pi.ops[k] })
}

// UnmarshalJSON reads an object, keeping key order
func (pi *PathItem) UnmarshalJSON(data []byte) error {
	*pi = *NewPathItem()
	return unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		var op Operation
		if err := json.Unmarshal(raw, &op); err != nil {
			return err
		}
		pi.Set(key, &op)
		return nil
	})
}

func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value(key))
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrdered(data []byte, visit func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := visit(key, raw); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
	}
	_, err = dec.Token()
	return err
}

package types

import (
	"fmt"
	"strings"
)

// Field is one (Name, Type) member of a Record, preserving declaration
// order (spec §3.1: "ordered sequence of (Name, Type)").
type Field struct {
	Name Name
	Type Type
}

// Record is Record(open, fields) from spec §3.1. Field names must be
// unique; open permits additional fields beyond those listed.
type Record struct {
	OpenRecord bool
	Fields     []Field
}

// NewRecord validates the no-duplicate-field-name invariant (spec §3.2)
// and builds a Record. Returns an error rather than panicking so callers
// at the AST boundary can turn it into a user diagnostic.
func NewRecord(open bool, fields []Field) (*Record, error) {
	normalized := make([]Field, len(fields))
	seen := make(map[Name]struct{}, len(fields))
	for i, f := range fields {
		name := NormalizeName(string(f.Name))
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field name %q in record", name)
		}
		seen[name] = struct{}{}
		normalized[i] = Field{Name: name, Type: f.Type}
	}
	return &Record{OpenRecord: open, Fields: normalized}, nil
}

func (r *Record) typeNode() {}
func (r *Record) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Type.String(), f.Name)
	}
	body := strings.Join(parts, ", ")
	if r.OpenRecord {
		if body != "" {
			body += ", ..."
		} else {
			body = "..."
		}
	}
	return "{" + body + "}"
}
func (r *Record) Equals(other Type) bool {
	o, ok := other.(*Record)
	if !ok || r.OpenRecord != o.OpenRecord || len(r.Fields) != len(o.Fields) {
		return false
	}
	om := o.FieldMap()
	for _, f := range r.Fields {
		ot, found := om[f.Name]
		if !found || !f.Type.Equals(ot) {
			return false
		}
	}
	return true
}

// FieldMap returns the record's fields indexed by name.
func (r *Record) FieldMap() map[Name]Type {
	m := make(map[Name]Type, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Type
	}
	return m
}

// Field looks up a field by name, normalizing the query the same way
// NewRecord normalizes declared field names.
func (r *Record) Field(name Name) (Type, bool) {
	name = NormalizeName(string(name))
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is an analyzed full-text field.
	IndexFieldText IndexFieldType = iota
	// IndexFieldTag is an exact keyword field; string arrays index every element.
	IndexFieldTag
	// IndexFieldTextTag is analyzed under Name and exact under ExactName.
	IndexFieldTextTag
	// IndexFieldDate is a calendar date stored as yyyy-MM-dd.
	IndexFieldDate
	// IndexFieldBool is a boolean field.
	IndexFieldBool
	// IndexFieldNumeric is a numeric field.
	IndexFieldNumeric
)

func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldText:
		return "TEXT"
	case IndexFieldTag:
		return "TAG"
	case IndexFieldTextTag:
		return "TEXT+TAG"
	case IndexFieldDate:
		return "DATE"
	case IndexFieldBool:
		return "BOOL"
	case IndexFieldNumeric:
		return "NUMERIC"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
	}
}

// ExactSuffix names the keyword twin of an IndexFieldTextTag field.
const ExactSuffix = "_exact"

// ExactName returns the keyword field name for a text+tag field.
func ExactName(field string) string {
	return field + ExactSuffix
}

// IndexField describes a single field in an index schema.
type IndexField struct {
	Name string
	Type IndexFieldType
	// Multi marks a field whose value is an array of scalars.
	Multi bool
}

// IndexDefinition is a complete index definition.
type IndexDefinition struct {
	Name string
	// KeyPrefix namespaces document keys in key-value engines.
	KeyPrefix string
	Fields    []IndexField
}

// Field looks up a field by name. Exact twins of text+tag fields resolve
// to their parent.
func (idx *IndexDefinition) Field(name string) (IndexField, bool) {
	for _, f := range idx.Fields {
		if f.Name == name || (f.Type == IndexFieldTextTag && ExactName(f.Name) == name) {
			return f, true
		}
	}
	return IndexField{}, false
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if idx.KeyPrefix != "" && !IsValidIdentifier(idx.KeyPrefix) {
		return errors.New("key prefix contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if !IsValidIdentifier(f.Name) {
			return errors.New("field name contains invalid characters: " + f.Name)
		}
		names := []string{f.Name}
		if f.Type == IndexFieldTextTag {
			names = append(names, ExactName(f.Name))
		}
		for _, n := range names {
			if seen[n] {
				return errors.New("duplicate field name: " + n)
			}
			seen[n] = true
		}
		if f.Type < IndexFieldText || f.Type > IndexFieldNumeric {
			return errors.New("unknown field type for " + f.Name)
		}
	}

	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}

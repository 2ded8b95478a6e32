package db

import "strings"

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix sets the document key prefix.
func (b *IndexBuilder) Prefix(prefix string) *IndexBuilder {
	b.def.KeyPrefix = prefix
	return b
}

func (b *IndexBuilder) add(name string, t IndexFieldType, multi bool) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: t, Multi: multi})
	return b
}

// Text adds an analyzed full-text field.
func (b *IndexBuilder) Text(name string) *IndexBuilder { return b.add(name, IndexFieldText, false) }

// Tag adds an exact keyword field.
func (b *IndexBuilder) Tag(name string) *IndexBuilder { return b.add(name, IndexFieldTag, false) }

// TextTag adds a field searchable both as analyzed text and as exact keyword.
func (b *IndexBuilder) TextTag(name string) *IndexBuilder { return b.add(name, IndexFieldTextTag, false) }

// TagArray adds an exact keyword field holding an array of strings.
func (b *IndexBuilder) TagArray(name string) *IndexBuilder { return b.add(name, IndexFieldTag, true) }

// TextTagArray adds a text+tag field holding an array of strings.
func (b *IndexBuilder) TextTagArray(name string) *IndexBuilder {
	return b.add(name, IndexFieldTextTag, true)
}

// Date adds a calendar date field.
func (b *IndexBuilder) Date(name string) *IndexBuilder { return b.add(name, IndexFieldDate, false) }

// Bool adds a boolean field.
func (b *IndexBuilder) Bool(name string) *IndexBuilder { return b.add(name, IndexFieldBool, false) }

// Numeric adds a numeric field.
func (b *IndexBuilder) Numeric(name string) *IndexBuilder { return b.add(name, IndexFieldNumeric, false) }

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Fields = append([]IndexField(nil), b.def.Fields...)
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a compact debug representation of the schema.
func (idx *IndexDefinition) String() string {
	parts := []string{"INDEX", idx.Name}
	if idx.KeyPrefix != "" {
		parts = append(parts, "PREFIX", idx.KeyPrefix)
	}
	parts = append(parts, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		parts = append(parts, f.Name, f.Type.String())
	}
	return strings.Join(parts, " ")
}

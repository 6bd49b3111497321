package riff

import "sort"

// TypeSpec describes one column: its name, scalar type, and its position
// in both the reordered read layout and the caller's original schema.
type TypeSpec struct {
	Name         string
	DataType     ScalarType
	Nullable     bool
	Indexed      bool
	Position     int // index within the reordered read layout
	OrigPosition int // index within the caller-supplied schema
}

// TypeDescription is an ordered sequence of TypeSpec entries: indexed
// columns first (stable by original position), then the rest in original
// order. Positions are dense 0..n-1.
type TypeDescription struct {
	specs   []TypeSpec
	byName  map[string]int // name -> position
	indexed int            // number of indexed columns (== len(prefix))
}

// NewTypeDescription builds a TypeDescription from a caller schema and the
// set of column names that should be indexed. Fails with a SchemaError if
// indexedNames references an unknown column, schema has duplicate names,
// or an indexed column's type is not orderable.
func NewTypeDescription(schema []TypeSpec, indexedNames []string) (*TypeDescription, error) {
	seen := make(map[string]int, len(schema))
	for i, s := range schema {
		if _, dup := seen[s.Name]; dup {
			return nil, NewSchemaError(ErrCodeDuplicateName, "duplicate column name: "+s.Name)
		}
		seen[s.Name] = i
	}

	indexedSet := make(map[string]bool, len(indexedNames))
	for _, name := range indexedNames {
		idx, ok := seen[name]
		if !ok {
			return nil, NewSchemaError(ErrCodeUnknownIndexed, "indexed column not in schema: "+name)
		}
		if !schema[idx].DataType.IsOrderable() {
			return nil, NewSchemaError(ErrCodeNotOrderable, "indexed column type not orderable: "+name)
		}
		indexedSet[name] = true
	}

	// Stable partition: indexed specs first (original order preserved
	// within the group), then the rest (original order preserved).
	ordered := make([]TypeSpec, 0, len(schema))
	for _, s := range schema {
		if indexedSet[s.Name] {
			ordered = append(ordered, s)
		}
	}
	numIndexed := len(ordered)
	for _, s := range schema {
		if !indexedSet[s.Name] {
			ordered = append(ordered, s)
		}
	}

	byName := make(map[string]int, len(ordered))
	for pos := range ordered {
		origIdx := seen[ordered[pos].Name]
		ordered[pos].Position = pos
		ordered[pos].OrigPosition = origIdx
		ordered[pos].Indexed = indexedSet[ordered[pos].Name]
		byName[ordered[pos].Name] = pos
	}

	return &TypeDescription{specs: ordered, byName: byName, indexed: numIndexed}, nil
}

// NewTypeDescriptionFromSpecs rebuilds a TypeDescription directly from an
// already-ordered, already-validated spec slice, as read back off disk
// by the header codec. It trusts the caller (the decoder) to have
// produced specs satisfying the TypeDescription invariants; it does not
// re-validate them.
func NewTypeDescriptionFromSpecs(specs []TypeSpec) *TypeDescription {
	byName := make(map[string]int, len(specs))
	numIndexed := 0
	for i, s := range specs {
		byName[s.Name] = i
		if s.Indexed {
			numIndexed++
		}
	}
	return &TypeDescription{specs: specs, byName: byName, indexed: numIndexed}
}

// Position returns the ordinal of name within the reordered layout.
func (td *TypeDescription) Position(name string) (int, error) {
	ord, ok := td.byName[name]
	if !ok {
		return 0, NewUnknownColumnError(name)
	}
	return ord, nil
}

// At returns the TypeSpec at the given ordinal.
func (td *TypeDescription) At(ord int) TypeSpec {
	return td.specs[ord]
}

// Size returns the total number of columns.
func (td *TypeDescription) Size() int {
	return len(td.specs)
}

// NumIndexed returns the count of indexed columns (the contiguous prefix).
func (td *TypeDescription) NumIndexed() int {
	return td.indexed
}

// Specs returns the ordered TypeSpec slice; callers must not mutate it.
func (td *TypeDescription) Specs() []TypeSpec {
	return td.specs
}

// indexedNamesSorted returns the indexed column names in lexicographic
// order, used by tests and diagnostics.
func (td *TypeDescription) indexedNamesSorted() []string {
	names := make([]string, 0, td.indexed)
	for i := 0; i < td.indexed; i++ {
		names = append(names, td.specs[i].Name)
	}
	sort.Strings(names)
	return names
}

package gff

import (
	"bytes"
	"fmt"
)

// DiffKind classifies one difference between two containers.
type DiffKind int

const (
	DiffAdded DiffKind = iota
	DiffRemoved
	DiffChanged
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	default:
		return "changed"
	}
}

// Difference is a single divergence between two containers, located by a
// slash-separated path of field labels and list indices.
type Difference struct {
	Path   string
	Kind   DiffKind
	Detail string
}

func (d Difference) String() string {
	return fmt.Sprintf("%s %s: %s", d.Kind, d.Path, d.Detail)
}

// Compare walks two containers in parallel and reports every field that
// was added, removed or changed going from a to b. Field order is not
// significant for comparison; values and nesting are.
func Compare(a, b *GFF) []Difference {
	var out []Difference
	if a.Content != b.Content {
		out = append(out, Difference{
			Path:   "/",
			Kind:   DiffChanged,
			Detail: fmt.Sprintf("content tag %q -> %q", string(a.Content), string(b.Content)),
		})
	}
	compareStructs("/", a.Root, b.Root, &out)
	return out
}

func compareStructs(path string, a, b *Struct, out *[]Difference) {
	if a.ID != b.ID {
		*out = append(*out, Difference{
			Path:   path,
			Kind:   DiffChanged,
			Detail: fmt.Sprintf("struct id %d -> %d", a.ID, b.ID),
		})
	}
	for _, f := range a.fields {
		fieldPath := path + f.Label
		bi, ok := b.index[f.Label]
		if !ok {
			*out = append(*out, Difference{Path: fieldPath, Kind: DiffRemoved, Detail: f.Type.String()})
			continue
		}
		bf := b.fields[bi]
		if f.Type != bf.Type {
			*out = append(*out, Difference{
				Path:   fieldPath,
				Kind:   DiffChanged,
				Detail: fmt.Sprintf("type %s -> %s", f.Type, bf.Type),
			})
			continue
		}
		compareValues(fieldPath, f, bf, out)
	}
	for _, f := range b.fields {
		if _, ok := a.index[f.Label]; !ok {
			*out = append(*out, Difference{Path: path + f.Label, Kind: DiffAdded, Detail: f.Type.String()})
		}
	}
}

func compareValues(path string, a, b Field, out *[]Difference) {
	switch a.Type {
	case FieldStruct:
		compareStructs(path+"/", a.value.(*Struct), b.value.(*Struct), out)
	case FieldList:
		la, lb := a.value.(*List), b.value.(*List)
		n := la.Len()
		if lb.Len() < n {
			n = lb.Len()
		}
		for i := 0; i < n; i++ {
			compareStructs(fmt.Sprintf("%s/%d/", path, i), la.At(i), lb.At(i), out)
		}
		for i := n; i < la.Len(); i++ {
			*out = append(*out, Difference{Path: fmt.Sprintf("%s/%d", path, i), Kind: DiffRemoved, Detail: "list element"})
		}
		for i := n; i < lb.Len(); i++ {
			*out = append(*out, Difference{Path: fmt.Sprintf("%s/%d", path, i), Kind: DiffAdded, Detail: "list element"})
		}
	case FieldBinary:
		ba, bb := a.value.([]byte), b.value.([]byte)
		if !bytes.Equal(ba, bb) {
			*out = append(*out, Difference{
				Path:   path,
				Kind:   DiffChanged,
				Detail: fmt.Sprintf("binary %d bytes -> %d bytes", len(ba), len(bb)),
			})
		}
	case FieldLocString:
		la, lb := a.value.(*LocString), b.value.(*LocString)
		if !locStringsEqual(la, lb) {
			*out = append(*out, Difference{Path: path, Kind: DiffChanged, Detail: "localized string"})
		}
	default:
		if a.value != b.value {
			*out = append(*out, Difference{
				Path:   path,
				Kind:   DiffChanged,
				Detail: fmt.Sprintf("%v -> %v", a.value, b.value),
			})
		}
	}
}

func locStringsEqual(a, b *LocString) bool {
	if a.StringRef != b.StringRef || len(a.order) != len(b.order) {
		return false
	}
	for _, sub := range a.order {
		text, ok := b.Get(sub.Language, sub.Gender)
		if !ok || text != sub.Text {
			return false
		}
	}
	return true
}

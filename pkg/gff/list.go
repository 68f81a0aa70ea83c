package gff

// List is an ordered sequence of structs, always reached through a field of
// list type. The list owns its elements.
type List struct {
	structs []*Struct
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.structs) }

// At returns the i-th element, or nil if i is out of range.
func (l *List) At(i int) *Struct {
	if i < 0 || i >= len(l.structs) {
		return nil
	}
	return l.structs[i]
}

// Append adds a struct to the end of the list.
func (l *List) Append(s *Struct) { l.structs = append(l.structs, s) }

// Add appends a fresh struct with the given ID and returns it.
func (l *List) Add(id int32) *Struct {
	s := NewStruct(id)
	l.structs = append(l.structs, s)
	return s
}

// Structs returns the elements in order. The slice is a copy; the structs
// are not.
func (l *List) Structs() []*Struct {
	out := make([]*Struct, len(l.structs))
	copy(out, l.structs)
	return out
}

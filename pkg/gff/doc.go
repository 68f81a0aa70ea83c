// Package gff reads and writes GFF (Generic File Format) containers, the
// binary format BioWare-era game engines use to persist typed, hierarchical
// game data: records of primitives, nested records, and lists of records.
// Exactly one format revision, V3.2, is supported.
//
// # File Layout
//
// A file is a 56-byte header followed by six regions, each located by an
// absolute (offset, count) pair in the header:
//
//	[content tag (4)][version tag (4)]
//	[struct offset][struct count]
//	[field offset][field count]
//	[label offset][label count]
//	[field data offset][field data bytes]
//	[field indices offset][field indices bytes]
//	[list indices offset][list indices bytes]
//
// All integers are little-endian. Struct entries are 12 bytes: a signed
// 32-bit struct ID, a data-or-offset word, and a field count. Field entries
// are 12 bytes: a field type, a label index, and a data-or-offset word.
// Labels are 16-byte null-padded strings, deduplicated so each distinct
// label appears once regardless of how many fields use it.
//
// # Field Storage
//
// The data-or-offset word of a field entry is interpreted by storage class:
//
//   - Inline types (8/16/32-bit integers, 32-bit float) pack their value
//     into the word itself. Sub-word signed integers occupy only the low
//     bytes and are sign-extended on read.
//   - Complex types (64-bit integers, double, string, resref, localized
//     string, binary, vectors) store a byte offset into the field-data
//     region, where each type has its own micro-layout.
//   - A struct field stores a struct-table index; a list field stores a
//     byte offset into the list-index region, where an element count is
//     followed by that many struct-table indices.
//
// A struct with no fields stores an all-ones sentinel in its data word.
// A struct with exactly one field stores the field-table index directly.
// Only structs with two or more fields go through the field-index region.
//
// # Usage
//
// Build a tree through the typed setters and encode it:
//
//	g := gff.New("TEST")
//	g.Root.SetUint32("Count", 42)
//	items := gff.NewList()
//	items.Add(0).SetString("Name", "Alpha")
//	g.Root.SetList("Items", items)
//
//	data, err := gff.Encode(g)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := gff.Decode(data)
//	if err != nil {
//	    return err
//	}
//
// Decoding is atomic: a wrong version tag or any offset outside the buffer
// fails the whole call with an error wrapping ErrInvalidVersion,
// ErrInvalidContent or ErrOutOfBounds. Encoding fails only when a field
// carries a tag outside the closed FieldType set, wrapping
// ErrUnsupportedFieldType.
//
// # Concurrency
//
// Decode and Encode are pure functions over their arguments; concurrent
// calls on different buffers or trees need no synchronization. The mutable
// tree types (GFF, Struct, List, LocString) are not safe for concurrent
// mutation.
package gff

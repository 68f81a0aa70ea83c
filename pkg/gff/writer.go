package gff

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes a container into the binary layout Decode reads. The
// tree is walked depth-first exactly once; a field carrying a tag outside
// the closed FieldType set aborts the whole encode.
func Encode(g *GFF) ([]byte, error) {
	if !g.Content.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContent, string(g.Content))
	}
	if g.Root == nil {
		return nil, fmt.Errorf("%w: container has no root struct", ErrInvalidContent)
	}

	e := &encoder{}
	if err := e.writeStruct(g.Root); err != nil {
		return nil, err
	}

	// Streams are laid out in fixed order directly after the header;
	// offsets are absolute from the start of the buffer.
	structOffset := uint32(headerSize)
	fieldOffset := structOffset + e.structs.size()
	labelOffset := fieldOffset + e.fields.size()
	labelBytes := uint32(len(e.labels.labels)) * 16
	fieldDataOffset := labelOffset + labelBytes
	fieldIndicesOffset := fieldDataOffset + e.fieldData.size()
	listIndicesOffset := fieldIndicesOffset + e.fieldIndices.size()

	total := listIndicesOffset + e.listIndices.size()
	out := make([]byte, 0, total)
	out = append(out, g.Content...)
	out = append(out, Version...)

	var hdr [48]byte
	binary.LittleEndian.PutUint32(hdr[0:], structOffset)
	binary.LittleEndian.PutUint32(hdr[4:], e.structCount)
	binary.LittleEndian.PutUint32(hdr[8:], fieldOffset)
	binary.LittleEndian.PutUint32(hdr[12:], e.fieldCount)
	binary.LittleEndian.PutUint32(hdr[16:], labelOffset)
	binary.LittleEndian.PutUint32(hdr[20:], uint32(len(e.labels.labels)))
	binary.LittleEndian.PutUint32(hdr[24:], fieldDataOffset)
	binary.LittleEndian.PutUint32(hdr[28:], e.fieldData.size())
	binary.LittleEndian.PutUint32(hdr[32:], fieldIndicesOffset)
	binary.LittleEndian.PutUint32(hdr[36:], e.fieldIndices.size())
	binary.LittleEndian.PutUint32(hdr[40:], listIndicesOffset)
	binary.LittleEndian.PutUint32(hdr[44:], e.listIndices.size())
	out = append(out, hdr[:]...)

	out = append(out, e.structs.buf...)
	out = append(out, e.fields.buf...)
	for _, label := range e.labels.labels {
		var entry [16]byte
		copy(entry[:], label)
		out = append(out, entry[:]...)
	}
	out = append(out, e.fieldData.buf...)
	out = append(out, e.fieldIndices.buf...)
	out = append(out, e.listIndices.buf...)
	return out, nil
}

// stream is an append-mostly byte buffer with explicit patching of
// previously reserved slots. The five output streams grow independently and
// are concatenated once the tree walk is done.
type stream struct {
	buf []byte
}

func (s *stream) size() uint32 { return uint32(len(s.buf)) }

func (s *stream) appendU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

func (s *stream) appendU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

func (s *stream) appendBytes(b []byte) {
	s.buf = append(s.buf, b...)
}

// reserve appends n zero bytes and returns their offset for later patching.
func (s *stream) reserve(n int) int {
	off := len(s.buf)
	s.buf = append(s.buf, make([]byte, n)...)
	return off
}

func (s *stream) patchU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(s.buf[off:], v)
}

// labelTable deduplicates field labels: the same label string always maps
// to the same index, so the output carries one entry per distinct label.
type labelTable struct {
	labels []string
	index  map[string]uint32
}

func (t *labelTable) indexOf(label string) uint32 {
	if len(label) > 16 {
		label = label[:16]
	}
	if i, ok := t.index[label]; ok {
		return i
	}
	if t.index == nil {
		t.index = make(map[string]uint32)
	}
	i := uint32(len(t.labels))
	t.index[label] = i
	t.labels = append(t.labels, label)
	return i
}

type encoder struct {
	structs      stream
	fields       stream
	fieldData    stream
	fieldIndices stream
	listIndices  stream
	labels       labelTable

	structCount uint32
	fieldCount  uint32
}

// writeStruct appends one 12-byte struct entry and serializes the struct's
// fields. The three field-count cases mirror the reader: zero fields get
// the all-ones sentinel, a single field stores its field-table index
// directly, and multiple fields go through reserved field-index slots that
// are patched as each field is assigned its index.
func (e *encoder) writeStruct(st *Struct) error {
	e.structCount++
	e.structs.appendU32(uint32(st.ID))

	switch n := len(st.fields); n {
	case 0:
		e.structs.appendU32(0xffffffff)
		e.structs.appendU32(0)
	case 1:
		e.structs.appendU32(e.fieldCount)
		e.structs.appendU32(1)
		if err := e.writeField(st.fields[0]); err != nil {
			return err
		}
	default:
		e.structs.appendU32(e.fieldIndices.size())
		e.structs.appendU32(uint32(n))
		pos := e.fieldIndices.reserve(4 * n)
		for i, f := range st.fields {
			e.fieldIndices.patchU32(pos+i*4, e.fieldCount)
			if err := e.writeField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeField appends one 12-byte field entry and the field's payload,
// dispatching on the storage class. Inline values pack their low bytes into
// the data slot; complex values append their micro-layout to the field-data
// blob; structural values recurse.
func (e *encoder) writeField(f Field) error {
	e.fieldCount++
	e.fields.appendU32(uint32(f.Type))
	e.fields.appendU32(e.labels.indexOf(f.Label))

	switch f.Type {
	case FieldUInt8:
		e.fields.appendU32(uint32(f.value.(uint8)))
	case FieldInt8:
		e.fields.appendU32(uint32(uint8(f.value.(int8))))
	case FieldUInt16:
		e.fields.appendU32(uint32(f.value.(uint16)))
	case FieldInt16:
		e.fields.appendU32(uint32(uint16(f.value.(int16))))
	case FieldUInt32:
		e.fields.appendU32(f.value.(uint32))
	case FieldInt32:
		e.fields.appendU32(uint32(f.value.(int32)))
	case FieldSingle:
		e.fields.appendU32(math.Float32bits(f.value.(float32)))
	case FieldUInt64, FieldInt64, FieldDouble, FieldString, FieldResRef,
		FieldLocString, FieldBinary, FieldVector4, FieldVector3:
		e.fields.appendU32(e.fieldData.size())
		e.writeComplex(f)
	case FieldStruct:
		e.fields.appendU32(e.structCount)
		return e.writeStruct(f.value.(*Struct))
	case FieldList:
		e.fields.appendU32(e.listIndices.size())
		return e.writeList(f.value.(*List))
	default:
		return fmt.Errorf("%w: field type %d for label %q", ErrUnsupportedFieldType, uint32(f.Type), f.Label)
	}
	return nil
}

// writeComplex appends a complex field's payload to the field-data blob.
func (e *encoder) writeComplex(f Field) {
	switch f.Type {
	case FieldUInt64:
		e.fieldData.appendU64(f.value.(uint64))
	case FieldInt64:
		e.fieldData.appendU64(uint64(f.value.(int64)))
	case FieldDouble:
		e.fieldData.appendU64(math.Float64bits(f.value.(float64)))
	case FieldString:
		s := f.value.(string)
		e.fieldData.appendU32(uint32(len(s)))
		e.fieldData.appendBytes([]byte(s))
	case FieldResRef:
		r := string(f.value.(ResRef))
		if len(r) > resRefMaxLen {
			r = r[:resRefMaxLen]
		}
		e.fieldData.appendBytes([]byte{byte(len(r))})
		e.fieldData.appendBytes([]byte(r))
	case FieldLocString:
		e.writeLocString(f.value.(*LocString))
	case FieldBinary:
		b := f.value.([]byte)
		e.fieldData.appendU32(uint32(len(b)))
		e.fieldData.appendBytes(b)
	case FieldVector3:
		v := f.value.(Vector3)
		e.fieldData.appendU32(math.Float32bits(v.X))
		e.fieldData.appendU32(math.Float32bits(v.Y))
		e.fieldData.appendU32(math.Float32bits(v.Z))
	case FieldVector4:
		v := f.value.(Vector4)
		e.fieldData.appendU32(math.Float32bits(v.X))
		e.fieldData.appendU32(math.Float32bits(v.Y))
		e.fieldData.appendU32(math.Float32bits(v.Z))
		e.fieldData.appendU32(math.Float32bits(v.W))
	}
}

// writeLocString appends the bundle's self-describing layout: total byte
// size of everything after the size field, then string ref, substring
// count, and the id/length/text triple of every substring.
func (e *encoder) writeLocString(ls *LocString) {
	total := uint32(8)
	for _, sub := range ls.order {
		total += 8 + uint32(len(sub.Text))
	}
	e.fieldData.appendU32(total)
	e.fieldData.appendU32(uint32(ls.StringRef))
	e.fieldData.appendU32(uint32(len(ls.order)))
	for _, sub := range ls.order {
		e.fieldData.appendU32(substringID(sub.Language, sub.Gender))
		e.fieldData.appendU32(uint32(len(sub.Text)))
		e.fieldData.appendBytes([]byte(sub.Text))
	}
}

// writeList appends the element count to the list-index stream, reserves
// one slot per element, and patches each slot with the struct-table index
// its element receives as it is written.
func (e *encoder) writeList(l *List) error {
	e.listIndices.appendU32(uint32(len(l.structs)))
	pos := e.listIndices.reserve(4 * len(l.structs))
	for i, st := range l.structs {
		e.listIndices.patchU32(pos+i*4, e.structCount)
		if err := e.writeStruct(st); err != nil {
			return err
		}
	}
	return nil
}

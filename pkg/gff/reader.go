package gff

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// maxDepth bounds struct recursion so a malformed file with a
// self-referencing struct index fails instead of recursing forever.
const maxDepth = 1000

// Decode parses a complete binary container. It fails atomically: any
// unsupported version tag, malformed content tag or offset pointing outside
// the buffer aborts the whole decode.
func Decode(data []byte) (*GFF, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: buffer of %d bytes is shorter than the %d-byte header", ErrOutOfBounds, len(data), headerSize)
	}

	content := ContentType(data[0:4])
	if !content.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContent, string(data[0:4]))
	}
	if version := string(data[4:8]); version != Version {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	d := &decoder{data: data}
	hdr := data[8:headerSize]
	d.structOff = binary.LittleEndian.Uint32(hdr[0:])
	d.structCount = binary.LittleEndian.Uint32(hdr[4:])
	d.fieldOff = binary.LittleEndian.Uint32(hdr[8:])
	d.fieldCount = binary.LittleEndian.Uint32(hdr[12:])
	labelOff := binary.LittleEndian.Uint32(hdr[16:])
	labelCount := binary.LittleEndian.Uint32(hdr[20:])
	d.fieldDataOff = binary.LittleEndian.Uint32(hdr[24:])
	d.fieldIndicesOff = binary.LittleEndian.Uint32(hdr[32:])
	d.listIndicesOff = binary.LittleEndian.Uint32(hdr[40:])

	if err := d.readLabels(labelOff, labelCount); err != nil {
		return nil, err
	}

	root, err := d.readStruct(0, 0)
	if err != nil {
		return nil, err
	}
	return &GFF{Content: content, Root: root}, nil
}

type decoder struct {
	data   []byte
	labels []string

	structOff       uint32
	structCount     uint32
	fieldOff        uint32
	fieldCount      uint32
	fieldDataOff    uint32
	fieldIndicesOff uint32
	listIndicesOff  uint32
}

// slice returns n bytes at absolute offset off, bounds-checked against the
// buffer. The length is taken as uint64 so count*entrysize products from
// hostile headers cannot wrap around.
func (d *decoder) slice(off uint32, n uint64) ([]byte, error) {
	end := uint64(off) + n
	if end > uint64(len(d.data)) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, buffer is %d bytes", ErrOutOfBounds, n, off, len(d.data))
	}
	return d.data[off:end], nil
}

func (d *decoder) u32(off uint32) (uint32, error) {
	b, err := d.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readLabels loads the 16-byte null-padded label table.
func (d *decoder) readLabels(off, count uint32) error {
	raw, err := d.slice(off, uint64(count)*16)
	if err != nil {
		return fmt.Errorf("label table: %w", err)
	}
	d.labels = make([]string, count)
	for i := uint32(0); i < count; i++ {
		entry := raw[i*16 : (i+1)*16]
		d.labels[i] = strings.TrimRight(string(entry), "\x00")
	}
	return nil
}

// readStruct materializes the struct at the given struct-table index,
// recursing through nested structs and lists.
func (d *decoder) readStruct(index uint32, depth int) (*Struct, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: struct nesting deeper than %d", ErrOutOfBounds, maxDepth)
	}
	if index >= d.structCount {
		return nil, fmt.Errorf("%w: struct index %d, table holds %d", ErrOutOfBounds, index, d.structCount)
	}
	entry, err := d.slice(d.structOff+index*12, 12)
	if err != nil {
		return nil, fmt.Errorf("struct %d: %w", index, err)
	}
	id := int32(binary.LittleEndian.Uint32(entry[0:]))
	dataOrOffset := binary.LittleEndian.Uint32(entry[4:])
	fieldCount := binary.LittleEndian.Uint32(entry[8:])

	st := NewStruct(id)
	switch {
	case fieldCount == 0:
		// dataOrOffset is the all-ones sentinel here; nothing to read.
	case fieldCount == 1:
		// Single field: dataOrOffset is the field-table index itself.
		if err := d.readField(st, dataOrOffset, depth); err != nil {
			return nil, err
		}
	default:
		if err := d.readFields(st, dataOrOffset, fieldCount, depth); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// readFields handles the multi-field case: dataOrOffset is a byte offset
// into the field-index table holding fieldCount consecutive field-table
// indices. The indices are usually a small contiguous run, so the covered
// min..max range of the field table is fetched in one slice instead of one
// per field.
func (d *decoder) readFields(st *Struct, offset, fieldCount uint32, depth int) error {
	raw, err := d.slice(d.fieldIndicesOff+offset, uint64(fieldCount)*4)
	if err != nil {
		return fmt.Errorf("field indices: %w", err)
	}
	indices := make([]uint32, fieldCount)
	for i := range indices {
		indices[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}

	minIdx, maxIdx := indices[0], indices[0]
	for _, idx := range indices[1:] {
		if idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	batch, err := d.slice(d.fieldOff+minIdx*12, uint64(maxIdx-minIdx+1)*12)
	if err != nil {
		return fmt.Errorf("field table: %w", err)
	}
	for _, idx := range indices {
		entry := batch[(idx-minIdx)*12:]
		if err := d.loadFieldEntry(st, entry, depth); err != nil {
			return err
		}
	}
	return nil
}

// readField reads a single field-table entry by index.
func (d *decoder) readField(st *Struct, index uint32, depth int) error {
	entry, err := d.slice(d.fieldOff+index*12, 12)
	if err != nil {
		return fmt.Errorf("field %d: %w", index, err)
	}
	return d.loadFieldEntry(st, entry, depth)
}

// loadFieldEntry parses one 12-byte field entry and stores the decoded
// value on st.
func (d *decoder) loadFieldEntry(st *Struct, entry []byte, depth int) error {
	fieldType := FieldType(binary.LittleEndian.Uint32(entry[0:]))
	labelIndex := binary.LittleEndian.Uint32(entry[4:])
	dataOrOffset := binary.LittleEndian.Uint32(entry[8:])

	if labelIndex >= uint32(len(d.labels)) {
		return fmt.Errorf("%w: label index %d, table holds %d", ErrOutOfBounds, labelIndex, len(d.labels))
	}
	label := d.labels[labelIndex]

	switch fieldType {
	case FieldUInt8:
		st.SetUint8(label, uint8(dataOrOffset&0xff))
	case FieldInt8:
		// The slot holds only the low byte; extend the sign manually.
		v := dataOrOffset & 0xff
		if v&0x80 != 0 {
			v |= 0xffffff00
		}
		st.SetInt8(label, int8(int32(v)))
	case FieldUInt16:
		st.SetUint16(label, uint16(dataOrOffset&0xffff))
	case FieldInt16:
		v := dataOrOffset & 0xffff
		if v&0x8000 != 0 {
			v |= 0xffff0000
		}
		st.SetInt16(label, int16(int32(v)))
	case FieldUInt32:
		st.SetUint32(label, dataOrOffset)
	case FieldInt32:
		st.SetInt32(label, int32(dataOrOffset))
	case FieldSingle:
		st.SetSingle(label, math.Float32frombits(dataOrOffset))
	case FieldUInt64, FieldInt64, FieldDouble, FieldString, FieldResRef,
		FieldLocString, FieldBinary, FieldVector4, FieldVector3:
		return d.readComplex(st, fieldType, label, d.fieldDataOff+dataOrOffset)
	case FieldStruct:
		child, err := d.readStruct(dataOrOffset, depth+1)
		if err != nil {
			return err
		}
		st.SetStruct(label, child)
	case FieldList:
		return d.readList(st, label, dataOrOffset, depth)
	default:
		return fmt.Errorf("%w: field type %d for label %q", ErrUnsupportedFieldType, uint32(fieldType), label)
	}
	return nil
}

// readComplex decodes a field whose payload lives in the field-data blob at
// the given absolute offset.
func (d *decoder) readComplex(st *Struct, fieldType FieldType, label string, off uint32) error {
	switch fieldType {
	case FieldUInt64:
		b, err := d.slice(off, 8)
		if err != nil {
			return err
		}
		st.SetUint64(label, binary.LittleEndian.Uint64(b))
	case FieldInt64:
		b, err := d.slice(off, 8)
		if err != nil {
			return err
		}
		st.SetInt64(label, int64(binary.LittleEndian.Uint64(b)))
	case FieldDouble:
		b, err := d.slice(off, 8)
		if err != nil {
			return err
		}
		st.SetDouble(label, math.Float64frombits(binary.LittleEndian.Uint64(b)))
	case FieldString:
		length, err := d.u32(off)
		if err != nil {
			return err
		}
		b, err := d.slice(off+4, uint64(length))
		if err != nil {
			return err
		}
		st.SetString(label, string(b))
	case FieldResRef:
		b, err := d.slice(off, 1)
		if err != nil {
			return err
		}
		text, err := d.slice(off+1, uint64(b[0]))
		if err != nil {
			return err
		}
		st.SetResRef(label, NewResRef(string(text)))
	case FieldLocString:
		ls, err := d.readLocString(off)
		if err != nil {
			return err
		}
		st.SetLocString(label, ls)
	case FieldBinary:
		length, err := d.u32(off)
		if err != nil {
			return err
		}
		b, err := d.slice(off+4, uint64(length))
		if err != nil {
			return err
		}
		st.SetBinary(label, append([]byte(nil), b...))
	case FieldVector3:
		b, err := d.slice(off, 12)
		if err != nil {
			return err
		}
		st.SetVector3(label, Vector3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		})
	case FieldVector4:
		b, err := d.slice(off, 16)
		if err != nil {
			return err
		}
		st.SetVector4(label, Vector4{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
			W: math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
		})
	}
	return nil
}

// readLocString decodes a localized string bundle. Every substring is read,
// however many there are; the leading total-size field is validated against
// the buffer but the substring count is what drives the loop.
func (d *decoder) readLocString(off uint32) (*LocString, error) {
	hdr, err := d.slice(off, 12)
	if err != nil {
		return nil, err
	}
	totalSize := binary.LittleEndian.Uint32(hdr[0:])
	if _, err := d.slice(off+4, uint64(totalSize)); err != nil {
		return nil, err
	}
	stringRef := int32(binary.LittleEndian.Uint32(hdr[4:]))
	count := binary.LittleEndian.Uint32(hdr[8:])

	ls := NewLocString(stringRef)
	pos := off + 12
	for i := uint32(0); i < count; i++ {
		sub, err := d.slice(pos, 8)
		if err != nil {
			return nil, err
		}
		id := binary.LittleEndian.Uint32(sub[0:])
		length := binary.LittleEndian.Uint32(sub[4:])
		text, err := d.slice(pos+8, uint64(length))
		if err != nil {
			return nil, err
		}
		ls.setByID(id, string(text))
		pos += 8 + length
	}
	return ls, nil
}

// readList decodes a list field: dataOrOffset is a byte offset into the
// list-index table, where a count is followed by that many struct-table
// indices.
func (d *decoder) readList(st *Struct, label string, offset uint32, depth int) error {
	count, err := d.u32(d.listIndicesOff + offset)
	if err != nil {
		return fmt.Errorf("list %q: %w", label, err)
	}
	raw, err := d.slice(d.listIndicesOff+offset+4, uint64(count)*4)
	if err != nil {
		return fmt.Errorf("list %q: %w", label, err)
	}
	list := NewList()
	for i := uint32(0); i < count; i++ {
		index := binary.LittleEndian.Uint32(raw[i*4:])
		child, err := d.readStruct(index, depth+1)
		if err != nil {
			return err
		}
		list.Append(child)
	}
	st.SetList(label, list)
	return nil
}

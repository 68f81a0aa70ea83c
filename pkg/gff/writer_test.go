package gff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// header unpacks the six (offset, count) pairs of an encoded buffer.
type header struct {
	structOff, structCount           uint32
	fieldOff, fieldCount             uint32
	labelOff, labelCount             uint32
	fieldDataOff, fieldDataBytes     uint32
	fieldIndicesOff, fieldIndexBytes uint32
	listIndicesOff, listIndexBytes   uint32
}

func parseHeader(t *testing.T, data []byte) header {
	t.Helper()
	if len(data) < headerSize {
		t.Fatalf("encoded buffer is %d bytes, shorter than the header", len(data))
	}
	u := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off:]) }
	return header{
		structOff: u(8), structCount: u(12),
		fieldOff: u(16), fieldCount: u(20),
		labelOff: u(24), labelCount: u(28),
		fieldDataOff: u(32), fieldDataBytes: u(36),
		fieldIndicesOff: u(40), fieldIndexBytes: u(44),
		listIndicesOff: u(48), listIndexBytes: u(52),
	}
}

func TestEncode_SingleFieldLayout(t *testing.T) {
	g := New("TEST")
	g.Root.SetUint32("Count", 42)

	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if string(data[0:4]) != "TEST" {
		t.Errorf("content tag = %q", data[0:4])
	}
	if string(data[4:8]) != "V3.2" {
		t.Errorf("version tag = %q", data[4:8])
	}

	h := parseHeader(t, data)
	if h.structOff != 56 || h.structCount != 1 {
		t.Errorf("struct table = (%d, %d), want (56, 1)", h.structOff, h.structCount)
	}
	if h.fieldOff != 68 || h.fieldCount != 1 {
		t.Errorf("field table = (%d, %d), want (68, 1)", h.fieldOff, h.fieldCount)
	}
	if h.labelOff != 80 || h.labelCount != 1 {
		t.Errorf("label table = (%d, %d), want (80, 1)", h.labelOff, h.labelCount)
	}
	if h.fieldDataBytes != 0 || h.fieldIndexBytes != 0 || h.listIndexBytes != 0 {
		t.Errorf("data regions = (%d, %d, %d) bytes, want empty", h.fieldDataBytes, h.fieldIndexBytes, h.listIndexBytes)
	}
	if len(data) != 96 {
		t.Errorf("total size = %d, want 96", len(data))
	}

	// Root struct entry: id -1, data = field index 0, count 1.
	entry := data[h.structOff:]
	if id := int32(binary.LittleEndian.Uint32(entry)); id != -1 {
		t.Errorf("struct id = %d, want -1", id)
	}
	if v := binary.LittleEndian.Uint32(entry[4:]); v != 0 {
		t.Errorf("struct data = %d, want field index 0", v)
	}
	if v := binary.LittleEndian.Uint32(entry[8:]); v != 1 {
		t.Errorf("struct field count = %d, want 1", v)
	}

	// Field entry: type uint32, label 0, inline value.
	fe := data[h.fieldOff:]
	if v := binary.LittleEndian.Uint32(fe); FieldType(v) != FieldUInt32 {
		t.Errorf("field type = %d, want %d", v, FieldUInt32)
	}
	if v := binary.LittleEndian.Uint32(fe[4:]); v != 0 {
		t.Errorf("label index = %d, want 0", v)
	}
	if v := binary.LittleEndian.Uint32(fe[8:]); v != 42 {
		t.Errorf("inline value = %d, want 42", v)
	}

	// Label entry: null-padded to 16 bytes.
	label := data[h.labelOff : h.labelOff+16]
	want := append([]byte("Count"), make([]byte, 11)...)
	if !bytes.Equal(label, want) {
		t.Errorf("label entry = %q", label)
	}
}

func TestEncode_FieldCountBoundaries(t *testing.T) {
	t.Run("zero fields writes sentinel and no index entries", func(t *testing.T) {
		g := New("TEST")
		data, err := Encode(g)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		h := parseHeader(t, data)
		if h.fieldIndexBytes != 0 {
			t.Errorf("field index bytes = %d, want 0", h.fieldIndexBytes)
		}
		entry := data[h.structOff:]
		if v := binary.LittleEndian.Uint32(entry[4:]); v != 0xffffffff {
			t.Errorf("empty struct data = %#x, want 0xffffffff", v)
		}
		if v := binary.LittleEndian.Uint32(entry[8:]); v != 0 {
			t.Errorf("field count = %d, want 0", v)
		}
	})

	t.Run("one field bypasses the field-index table", func(t *testing.T) {
		g := New("TEST")
		g.Root.SetUint8("Only", 1)
		data, err := Encode(g)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if h := parseHeader(t, data); h.fieldIndexBytes != 0 {
			t.Errorf("field index bytes = %d, want 0", h.fieldIndexBytes)
		}
	})

	t.Run("multiple fields allocate exactly count slots", func(t *testing.T) {
		g := New("TEST")
		g.Root.SetUint8("A", 1)
		g.Root.SetUint8("B", 2)
		g.Root.SetUint8("C", 3)
		data, err := Encode(g)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		h := parseHeader(t, data)
		if h.fieldIndexBytes != 12 {
			t.Fatalf("field index bytes = %d, want 12", h.fieldIndexBytes)
		}
		// The reserved slots must be patched with the field-table
		// indices in struct order.
		for i := uint32(0); i < 3; i++ {
			got := binary.LittleEndian.Uint32(data[h.fieldIndicesOff+i*4:])
			if got != i {
				t.Errorf("field index slot %d = %d, want %d", i, got, i)
			}
		}
	})
}

func TestEncode_LabelDeduplication(t *testing.T) {
	// The same label in three different structs must produce exactly one
	// label entry, referenced by all three fields.
	g := New("TEST")
	g.Root.SetString("Name", "root")
	items := NewList()
	items.Add(0).SetString("Name", "first")
	items.Add(0).SetString("Name", "second")
	g.Root.SetList("Items", items)

	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	h := parseHeader(t, data)
	if h.labelCount != 2 { // "Name" and "Items"
		t.Fatalf("label count = %d, want 2", h.labelCount)
	}

	nameRefs := 0
	for i := uint32(0); i < h.fieldCount; i++ {
		entry := data[h.fieldOff+i*12:]
		if FieldType(binary.LittleEndian.Uint32(entry)) != FieldString {
			continue
		}
		if idx := binary.LittleEndian.Uint32(entry[4:]); idx != 0 {
			t.Errorf("string field %d references label %d, want 0", i, idx)
		}
		nameRefs++
	}
	if nameRefs != 3 {
		t.Errorf("found %d Name fields, want 3", nameRefs)
	}
}

func TestEncode_ListLayout(t *testing.T) {
	g := New("TEST")
	items := NewList()
	items.Add(10)
	items.Add(20)
	g.Root.SetList("Items", items)

	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	h := parseHeader(t, data)
	if h.structCount != 3 { // root + 2 elements
		t.Errorf("struct count = %d, want 3", h.structCount)
	}
	if h.listIndexBytes != 12 { // count word + 2 indices
		t.Fatalf("list index bytes = %d, want 12", h.listIndexBytes)
	}
	if count := binary.LittleEndian.Uint32(data[h.listIndicesOff:]); count != 2 {
		t.Errorf("list count = %d, want 2", count)
	}
	// Elements are structs 1 and 2, written right after the root.
	if v := binary.LittleEndian.Uint32(data[h.listIndicesOff+4:]); v != 1 {
		t.Errorf("list slot 0 = %d, want 1", v)
	}
	if v := binary.LittleEndian.Uint32(data[h.listIndicesOff+8:]); v != 2 {
		t.Errorf("list slot 1 = %d, want 2", v)
	}
}

func TestEncode_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content ContentType
	}{
		{"too short", "GFF"},
		{"too long", "LONGTAG"},
		{"non-printable", "GF\x00 "},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(New(tc.content))
			if !errors.Is(err, ErrInvalidContent) {
				t.Errorf("Encode(%q) err = %v, want ErrInvalidContent", tc.content, err)
			}
		})
	}
}

func TestEncode_UnsupportedFieldType(t *testing.T) {
	g := New("TEST")
	// A tag outside the closed set cannot be produced through the typed
	// setters, so place one directly.
	g.Root.set("bogus", FieldType(99), uint32(0))

	_, err := Encode(g)
	if !errors.Is(err, ErrUnsupportedFieldType) {
		t.Errorf("err = %v, want ErrUnsupportedFieldType", err)
	}
}

func TestEncode_NoRoot(t *testing.T) {
	if _, err := Encode(&GFF{Content: "TEST"}); err == nil {
		t.Error("Encode without root should fail")
	}
}

func TestEncode_LongLabelTruncated(t *testing.T) {
	g := New("TEST")
	g.Root.SetUint8("ThisLabelIsLongerThanSixteen", 1)

	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	h := parseHeader(t, data)
	label := data[h.labelOff : h.labelOff+16]
	if string(label) != "ThisLabelIsLonge" {
		t.Errorf("label entry = %q", label)
	}
}

package gff

import (
	"errors"
	"testing"
)

func TestStruct_SetGet(t *testing.T) {
	st := NewStruct(7)

	st.SetUint8("u8", 200)
	st.SetInt8("i8", -5)
	st.SetUint16("u16", 60000)
	st.SetInt16("i16", -12345)
	st.SetUint32("u32", 4000000000)
	st.SetInt32("i32", -2000000000)
	st.SetUint64("u64", 18446744073709551615)
	st.SetInt64("i64", -9223372036854775808)
	st.SetSingle("f32", 1.5)
	st.SetDouble("f64", 2.25)
	st.SetString("str", "hello")
	st.SetResRef("ref", NewResRef("p_bastilla"))
	st.SetBinary("bin", []byte{1, 2, 3})
	st.SetVector3("v3", Vector3{X: 1, Y: 2, Z: 3})
	st.SetVector4("v4", Vector4{X: 1, Y: 2, Z: 3, W: 4})

	if st.Len() != 15 {
		t.Fatalf("Len = %d, want 15", st.Len())
	}

	if v, err := st.GetUint8("u8"); err != nil || v != 200 {
		t.Errorf("GetUint8 = %d, %v", v, err)
	}
	if v, err := st.GetInt8("i8"); err != nil || v != -5 {
		t.Errorf("GetInt8 = %d, %v", v, err)
	}
	if v, err := st.GetUint16("u16"); err != nil || v != 60000 {
		t.Errorf("GetUint16 = %d, %v", v, err)
	}
	if v, err := st.GetInt16("i16"); err != nil || v != -12345 {
		t.Errorf("GetInt16 = %d, %v", v, err)
	}
	if v, err := st.GetUint32("u32"); err != nil || v != 4000000000 {
		t.Errorf("GetUint32 = %d, %v", v, err)
	}
	if v, err := st.GetInt32("i32"); err != nil || v != -2000000000 {
		t.Errorf("GetInt32 = %d, %v", v, err)
	}
	if v, err := st.GetUint64("u64"); err != nil || v != 18446744073709551615 {
		t.Errorf("GetUint64 = %d, %v", v, err)
	}
	if v, err := st.GetInt64("i64"); err != nil || v != -9223372036854775808 {
		t.Errorf("GetInt64 = %d, %v", v, err)
	}
	if v, err := st.GetSingle("f32"); err != nil || v != 1.5 {
		t.Errorf("GetSingle = %f, %v", v, err)
	}
	if v, err := st.GetDouble("f64"); err != nil || v != 2.25 {
		t.Errorf("GetDouble = %f, %v", v, err)
	}
	if v, err := st.GetString("str"); err != nil || v != "hello" {
		t.Errorf("GetString = %q, %v", v, err)
	}
	if v, err := st.GetResRef("ref"); err != nil || v != "p_bastilla" {
		t.Errorf("GetResRef = %q, %v", v, err)
	}
	if v, err := st.GetBinary("bin"); err != nil || len(v) != 3 {
		t.Errorf("GetBinary = %v, %v", v, err)
	}
	if v, err := st.GetVector3("v3"); err != nil || v != (Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("GetVector3 = %v, %v", v, err)
	}
	if v, err := st.GetVector4("v4"); err != nil || v != (Vector4{X: 1, Y: 2, Z: 3, W: 4}) {
		t.Errorf("GetVector4 = %v, %v", v, err)
	}
}

func TestStruct_MissingAndMismatch(t *testing.T) {
	st := NewStruct(0)
	st.SetUint32("count", 1)

	if _, err := st.GetUint32("absent"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("missing label: err = %v, want ErrFieldMissing", err)
	}
	if _, err := st.GetString("count"); !errors.Is(err, ErrFieldType) {
		t.Errorf("type mismatch: err = %v, want ErrFieldType", err)
	}
}

func TestStruct_ReplaceKeepsOrder(t *testing.T) {
	st := NewStruct(0)
	st.SetUint8("first", 1)
	st.SetUint8("second", 2)
	st.SetUint8("third", 3)

	// Replacing an existing label must keep its position, even when the
	// replacement changes the field's type.
	st.SetString("second", "two")

	fields := st.Fields()
	if len(fields) != 3 {
		t.Fatalf("Len = %d, want 3", len(fields))
	}
	want := []string{"first", "second", "third"}
	for i, label := range want {
		if fields[i].Label != label {
			t.Errorf("fields[%d].Label = %q, want %q", i, fields[i].Label, label)
		}
	}
	if fields[1].Type != FieldString {
		t.Errorf("replaced field type = %s, want string", fields[1].Type)
	}
	if v, err := st.GetString("second"); err != nil || v != "two" {
		t.Errorf("GetString(second) = %q, %v", v, err)
	}
}

func TestStruct_Delete(t *testing.T) {
	st := NewStruct(0)
	st.SetUint8("a", 1)
	st.SetUint8("b", 2)
	st.SetUint8("c", 3)

	if !st.Delete("b") {
		t.Fatal("Delete(b) = false, want true")
	}
	if st.Delete("b") {
		t.Fatal("second Delete(b) = true, want false")
	}
	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}

	// Remaining fields must stay reachable after the reindex.
	if v, err := st.GetUint8("a"); err != nil || v != 1 {
		t.Errorf("GetUint8(a) = %d, %v", v, err)
	}
	if v, err := st.GetUint8("c"); err != nil || v != 3 {
		t.Errorf("GetUint8(c) = %d, %v", v, err)
	}
	if _, err := st.GetUint8("b"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("GetUint8(b) = %v, want ErrFieldMissing", err)
	}
}

func TestStruct_TypeOf(t *testing.T) {
	st := NewStruct(0)
	st.SetDouble("pi", 3.14)

	if ft, ok := st.TypeOf("pi"); !ok || ft != FieldDouble {
		t.Errorf("TypeOf(pi) = %v, %v", ft, ok)
	}
	if _, ok := st.TypeOf("tau"); ok {
		t.Error("TypeOf(tau) = true, want false")
	}
}

func TestList_Operations(t *testing.T) {
	l := NewList()
	if l.Len() != 0 {
		t.Fatalf("empty list Len = %d", l.Len())
	}
	if l.At(0) != nil {
		t.Error("At(0) on empty list should be nil")
	}

	a := l.Add(1)
	b := l.Add(2)
	l.Append(NewStruct(3))

	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	if l.At(0) != a || l.At(1) != b {
		t.Error("At returned wrong element")
	}
	if l.At(2).ID != 3 {
		t.Errorf("At(2).ID = %d, want 3", l.At(2).ID)
	}
	if l.At(-1) != nil || l.At(3) != nil {
		t.Error("out-of-range At should be nil")
	}
	if got := l.Structs(); len(got) != 3 {
		t.Errorf("Structs() len = %d, want 3", len(got))
	}
}

func TestResRef_Truncation(t *testing.T) {
	r := NewResRef("  an_identifier_well_beyond_sixteen  ")
	if len(r) != 16 {
		t.Errorf("ResRef len = %d, want 16", len(r))
	}
	if r != "an_identifier_we" {
		t.Errorf("ResRef = %q", r)
	}
}

package gff

import "fmt"

// Field is a single labeled, typed value inside a Struct.
type Field struct {
	Label string
	Type  FieldType
	value any
}

// Value returns the field's value as stored: uint8..int64, float32, float64,
// string, ResRef, *LocString, []byte, Vector3, Vector4, *Struct or *List
// depending on Type.
func (f Field) Value() any { return f.value }

// Struct is an ordered, label-unique collection of typed fields. Setting a
// label that already exists replaces the field in place, keeping its
// position; setting a new label appends. Struct values reached through
// fields are owned by this struct: the containment forms a tree.
type Struct struct {
	// ID is an arbitrary 32-bit tag; -1 conventionally means untyped.
	ID int32

	fields []Field
	index  map[string]int
}

// NewStruct returns an empty struct with the given ID.
func NewStruct(id int32) *Struct {
	return &Struct{ID: id, index: make(map[string]int)}
}

// Len returns the number of fields.
func (s *Struct) Len() int { return len(s.fields) }

// Fields returns the fields in insertion order. The returned slice is a
// copy; the values it carries are not.
func (s *Struct) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// TypeOf returns the type of the named field.
func (s *Struct) TypeOf(label string) (FieldType, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.fields[i].Type, true
}

// Delete removes the named field, preserving the order of the rest. It
// reports whether the field was present.
func (s *Struct) Delete(label string) bool {
	i, ok := s.index[label]
	if !ok {
		return false
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, label)
	for j := i; j < len(s.fields); j++ {
		s.index[s.fields[j].Label] = j
	}
	return true
}

func (s *Struct) set(label string, t FieldType, v any) {
	if i, ok := s.index[label]; ok {
		s.fields[i].Type = t
		s.fields[i].value = v
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[label] = len(s.fields)
	s.fields = append(s.fields, Field{Label: label, Type: t, value: v})
}

func (s *Struct) get(label string, t FieldType) (any, error) {
	i, ok := s.index[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldMissing, label)
	}
	f := s.fields[i]
	if f.Type != t {
		return nil, fmt.Errorf("%w: %q holds %s, requested %s", ErrFieldType, label, f.Type, t)
	}
	return f.value, nil
}

func (s *Struct) SetUint8(label string, v uint8)    { s.set(label, FieldUInt8, v) }
func (s *Struct) SetInt8(label string, v int8)      { s.set(label, FieldInt8, v) }
func (s *Struct) SetUint16(label string, v uint16)  { s.set(label, FieldUInt16, v) }
func (s *Struct) SetInt16(label string, v int16)    { s.set(label, FieldInt16, v) }
func (s *Struct) SetUint32(label string, v uint32)  { s.set(label, FieldUInt32, v) }
func (s *Struct) SetInt32(label string, v int32)    { s.set(label, FieldInt32, v) }
func (s *Struct) SetUint64(label string, v uint64)  { s.set(label, FieldUInt64, v) }
func (s *Struct) SetInt64(label string, v int64)    { s.set(label, FieldInt64, v) }
func (s *Struct) SetSingle(label string, v float32) { s.set(label, FieldSingle, v) }
func (s *Struct) SetDouble(label string, v float64) { s.set(label, FieldDouble, v) }
func (s *Struct) SetString(label string, v string)  { s.set(label, FieldString, v) }
func (s *Struct) SetResRef(label string, v ResRef)  { s.set(label, FieldResRef, v) }
func (s *Struct) SetLocString(label string, v *LocString) {
	s.set(label, FieldLocString, v)
}
func (s *Struct) SetBinary(label string, v []byte)   { s.set(label, FieldBinary, v) }
func (s *Struct) SetVector3(label string, v Vector3) { s.set(label, FieldVector3, v) }
func (s *Struct) SetVector4(label string, v Vector4) { s.set(label, FieldVector4, v) }
func (s *Struct) SetStruct(label string, v *Struct)  { s.set(label, FieldStruct, v) }
func (s *Struct) SetList(label string, v *List)      { s.set(label, FieldList, v) }

func (s *Struct) GetUint8(label string) (uint8, error) {
	v, err := s.get(label, FieldUInt8)
	if err != nil {
		return 0, err
	}
	return v.(uint8), nil
}

func (s *Struct) GetInt8(label string) (int8, error) {
	v, err := s.get(label, FieldInt8)
	if err != nil {
		return 0, err
	}
	return v.(int8), nil
}

func (s *Struct) GetUint16(label string) (uint16, error) {
	v, err := s.get(label, FieldUInt16)
	if err != nil {
		return 0, err
	}
	return v.(uint16), nil
}

func (s *Struct) GetInt16(label string) (int16, error) {
	v, err := s.get(label, FieldInt16)
	if err != nil {
		return 0, err
	}
	return v.(int16), nil
}

func (s *Struct) GetUint32(label string) (uint32, error) {
	v, err := s.get(label, FieldUInt32)
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

func (s *Struct) GetInt32(label string) (int32, error) {
	v, err := s.get(label, FieldInt32)
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

func (s *Struct) GetUint64(label string) (uint64, error) {
	v, err := s.get(label, FieldUInt64)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

func (s *Struct) GetInt64(label string) (int64, error) {
	v, err := s.get(label, FieldInt64)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (s *Struct) GetSingle(label string) (float32, error) {
	v, err := s.get(label, FieldSingle)
	if err != nil {
		return 0, err
	}
	return v.(float32), nil
}

func (s *Struct) GetDouble(label string) (float64, error) {
	v, err := s.get(label, FieldDouble)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (s *Struct) GetString(label string) (string, error) {
	v, err := s.get(label, FieldString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Struct) GetResRef(label string) (ResRef, error) {
	v, err := s.get(label, FieldResRef)
	if err != nil {
		return "", err
	}
	return v.(ResRef), nil
}

func (s *Struct) GetLocString(label string) (*LocString, error) {
	v, err := s.get(label, FieldLocString)
	if err != nil {
		return nil, err
	}
	return v.(*LocString), nil
}

func (s *Struct) GetBinary(label string) ([]byte, error) {
	v, err := s.get(label, FieldBinary)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Struct) GetVector3(label string) (Vector3, error) {
	v, err := s.get(label, FieldVector3)
	if err != nil {
		return Vector3{}, err
	}
	return v.(Vector3), nil
}

func (s *Struct) GetVector4(label string) (Vector4, error) {
	v, err := s.get(label, FieldVector4)
	if err != nil {
		return Vector4{}, err
	}
	return v.(Vector4), nil
}

func (s *Struct) GetStruct(label string) (*Struct, error) {
	v, err := s.get(label, FieldStruct)
	if err != nil {
		return nil, err
	}
	return v.(*Struct), nil
}

func (s *Struct) GetList(label string) (*List, error) {
	v, err := s.get(label, FieldList)
	if err != nil {
		return nil, err
	}
	return v.(*List), nil
}

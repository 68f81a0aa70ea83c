package gff

// FieldType identifies the value carried by a field. The numeric values are
// part of the binary format and must not be reordered.
type FieldType uint32

const (
	FieldUInt8     FieldType = 0
	FieldInt8      FieldType = 1
	FieldUInt16    FieldType = 2
	FieldInt16     FieldType = 3
	FieldUInt32    FieldType = 4
	FieldInt32     FieldType = 5
	FieldUInt64    FieldType = 6
	FieldInt64     FieldType = 7
	FieldSingle    FieldType = 8
	FieldDouble    FieldType = 9
	FieldString    FieldType = 10
	FieldResRef    FieldType = 11
	FieldLocString FieldType = 12
	FieldBinary    FieldType = 13
	FieldStruct    FieldType = 14
	FieldList      FieldType = 15
	FieldVector4   FieldType = 16
	FieldVector3   FieldType = 17
)

var fieldTypeNames = map[FieldType]string{
	FieldUInt8:     "uint8",
	FieldInt8:      "int8",
	FieldUInt16:    "uint16",
	FieldInt16:     "int16",
	FieldUInt32:    "uint32",
	FieldInt32:     "int32",
	FieldUInt64:    "uint64",
	FieldInt64:     "int64",
	FieldSingle:    "single",
	FieldDouble:    "double",
	FieldString:    "string",
	FieldResRef:    "resref",
	FieldLocString: "locstring",
	FieldBinary:    "binary",
	FieldStruct:    "struct",
	FieldList:      "list",
	FieldVector4:   "vector4",
	FieldVector3:   "vector3",
}

var fieldTypeIDs = func() map[string]FieldType {
	m := make(map[string]FieldType, len(fieldTypeNames))
	for id, name := range fieldTypeNames {
		m[name] = id
	}
	return m
}()

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// fieldTypeFromName is the inverse of String; used by the JSON representation.
func fieldTypeFromName(name string) (FieldType, bool) {
	t, ok := fieldTypeIDs[name]
	return t, ok
}

// complex reports whether the field's value lives in the field-data blob,
// with the field entry holding a byte offset into it.
func (t FieldType) complex() bool {
	switch t {
	case FieldUInt64, FieldInt64, FieldDouble, FieldString, FieldResRef,
		FieldLocString, FieldBinary, FieldVector4, FieldVector3:
		return true
	}
	return false
}

// structural reports whether the field references a nested struct or list
// rather than carrying data of its own.
func (t FieldType) structural() bool {
	return t == FieldStruct || t == FieldList
}

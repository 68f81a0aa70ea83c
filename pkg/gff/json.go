package gff

import (
	"encoding/base64"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// The JSON representation mirrors the container as a typed tree: every
// field carries its label, type name and value. 64-bit integers are encoded
// as decimal strings so they survive JSON number handling; binary payloads
// are base64. The representation round-trips: UnmarshalJSON of MarshalJSON
// output reproduces the tree, field order included.

type jsonContainer struct {
	Content string      `json:"content"`
	Root    *jsonStruct `json:"root"`
}

type jsonStruct struct {
	ID     int32       `json:"id"`
	Fields []jsonField `json:"fields"`
}

type jsonField struct {
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type jsonLocString struct {
	StringRef  int32           `json:"strref"`
	Substrings []jsonSubstring `json:"substrings"`
}

type jsonSubstring struct {
	Language uint32 `json:"language"`
	Gender   uint32 `json:"gender"`
	Text     string `json:"text"`
}

type jsonVector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type jsonVector4 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// MarshalJSON encodes the container as a typed JSON tree.
func (g *GFF) MarshalJSON() ([]byte, error) {
	root, err := structToJSON(g.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonContainer{Content: string(g.Content), Root: root})
}

// UnmarshalJSON decodes a typed JSON tree produced by MarshalJSON.
func (g *GFF) UnmarshalJSON(data []byte) error {
	var c jsonContainer
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	if c.Root == nil {
		return fmt.Errorf("gff: json container has no root")
	}
	root, err := structFromJSON(c.Root)
	if err != nil {
		return err
	}
	g.Content = ContentType(c.Content)
	g.Root = root
	return nil
}

func structToJSON(st *Struct) (*jsonStruct, error) {
	out := &jsonStruct{ID: st.ID, Fields: make([]jsonField, 0, len(st.fields))}
	for _, f := range st.fields {
		raw, err := fieldValueToJSON(f)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, jsonField{Label: f.Label, Type: f.Type.String(), Value: raw})
	}
	return out, nil
}

func fieldValueToJSON(f Field) (json.RawMessage, error) {
	switch f.Type {
	case FieldUInt8, FieldInt8, FieldUInt16, FieldInt16, FieldUInt32, FieldInt32,
		FieldSingle, FieldDouble, FieldString:
		return json.Marshal(f.value)
	case FieldUInt64:
		return json.Marshal(strconv.FormatUint(f.value.(uint64), 10))
	case FieldInt64:
		return json.Marshal(strconv.FormatInt(f.value.(int64), 10))
	case FieldResRef:
		return json.Marshal(string(f.value.(ResRef)))
	case FieldLocString:
		ls := f.value.(*LocString)
		out := jsonLocString{StringRef: ls.StringRef}
		for _, sub := range ls.order {
			out.Substrings = append(out.Substrings, jsonSubstring{
				Language: uint32(sub.Language),
				Gender:   uint32(sub.Gender),
				Text:     sub.Text,
			})
		}
		return json.Marshal(out)
	case FieldBinary:
		return json.Marshal(base64.StdEncoding.EncodeToString(f.value.([]byte)))
	case FieldVector3:
		v := f.value.(Vector3)
		return json.Marshal(jsonVector3{X: v.X, Y: v.Y, Z: v.Z})
	case FieldVector4:
		v := f.value.(Vector4)
		return json.Marshal(jsonVector4{X: v.X, Y: v.Y, Z: v.Z, W: v.W})
	case FieldStruct:
		nested, err := structToJSON(f.value.(*Struct))
		if err != nil {
			return nil, err
		}
		return json.Marshal(nested)
	case FieldList:
		l := f.value.(*List)
		nodes := make([]*jsonStruct, 0, len(l.structs))
		for _, st := range l.structs {
			node, err := structToJSON(st)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		return json.Marshal(nodes)
	default:
		return nil, fmt.Errorf("%w: field type %d for label %q", ErrUnsupportedFieldType, uint32(f.Type), f.Label)
	}
}

func structFromJSON(node *jsonStruct) (*Struct, error) {
	st := NewStruct(node.ID)
	for _, f := range node.Fields {
		if err := setFieldFromJSON(st, f); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func setFieldFromJSON(st *Struct, f jsonField) error {
	t, ok := fieldTypeFromName(f.Type)
	if !ok {
		return fmt.Errorf("%w: json field %q has type %q", ErrUnsupportedFieldType, f.Label, f.Type)
	}
	switch t {
	case FieldUInt8:
		var v uint8
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetUint8(f.Label, v)
	case FieldInt8:
		var v int8
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetInt8(f.Label, v)
	case FieldUInt16:
		var v uint16
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetUint16(f.Label, v)
	case FieldInt16:
		var v int16
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetInt16(f.Label, v)
	case FieldUInt32:
		var v uint32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetUint32(f.Label, v)
	case FieldInt32:
		var v int32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetInt32(f.Label, v)
	case FieldUInt64:
		var s string
		if err := json.Unmarshal(f.Value, &s); err != nil {
			return jsonFieldErr(f, err)
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetUint64(f.Label, v)
	case FieldInt64:
		var s string
		if err := json.Unmarshal(f.Value, &s); err != nil {
			return jsonFieldErr(f, err)
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetInt64(f.Label, v)
	case FieldSingle:
		var v float32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetSingle(f.Label, v)
	case FieldDouble:
		var v float64
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetDouble(f.Label, v)
	case FieldString:
		var v string
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetString(f.Label, v)
	case FieldResRef:
		var v string
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetResRef(f.Label, NewResRef(v))
	case FieldLocString:
		var node jsonLocString
		if err := json.Unmarshal(f.Value, &node); err != nil {
			return jsonFieldErr(f, err)
		}
		ls := NewLocString(node.StringRef)
		for _, sub := range node.Substrings {
			ls.Set(Language(sub.Language), Gender(sub.Gender), sub.Text)
		}
		st.SetLocString(f.Label, ls)
	case FieldBinary:
		var s string
		if err := json.Unmarshal(f.Value, &s); err != nil {
			return jsonFieldErr(f, err)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetBinary(f.Label, b)
	case FieldVector3:
		var v jsonVector3
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetVector3(f.Label, Vector3{X: v.X, Y: v.Y, Z: v.Z})
	case FieldVector4:
		var v jsonVector4
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return jsonFieldErr(f, err)
		}
		st.SetVector4(f.Label, Vector4{X: v.X, Y: v.Y, Z: v.Z, W: v.W})
	case FieldStruct:
		var node jsonStruct
		if err := json.Unmarshal(f.Value, &node); err != nil {
			return jsonFieldErr(f, err)
		}
		nested, err := structFromJSON(&node)
		if err != nil {
			return err
		}
		st.SetStruct(f.Label, nested)
	case FieldList:
		var nodes []*jsonStruct
		if err := json.Unmarshal(f.Value, &nodes); err != nil {
			return jsonFieldErr(f, err)
		}
		list := NewList()
		for _, n := range nodes {
			el, err := structFromJSON(n)
			if err != nil {
				return err
			}
			list.Append(el)
		}
		st.SetList(f.Label, list)
	}
	return nil
}

func jsonFieldErr(f jsonField, err error) error {
	return fmt.Errorf("gff: json field %q (%s): %w", f.Label, f.Type, err)
}

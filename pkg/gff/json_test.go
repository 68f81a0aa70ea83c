package gff

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestJSON_Roundtrip(t *testing.T) {
	g := New("UTC ")
	g.Root.SetUint8("u8", 9)
	g.Root.SetInt16("i16", -4000)
	g.Root.SetUint64("u64", 18446744073709551615)
	g.Root.SetInt64("i64", -9000000000000000000)
	g.Root.SetString("name", "Revan")
	g.Root.SetResRef("ref", NewResRef("p_hk47"))
	g.Root.SetBinary("blob", []byte{1, 2, 3, 4})
	g.Root.SetVector3("pos", Vector3{X: 1, Y: 2, Z: 3})

	ls := NewLocString(42)
	ls.Set(LanguageEnglish, GenderMale, "hello")
	g.Root.SetLocString("loc", ls)

	items := NewList()
	items.Add(7).SetString("tag", "alpha")
	g.Root.SetList("items", items)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got GFF
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diffs := Compare(g, &got); len(diffs) != 0 {
		for _, d := range diffs {
			t.Errorf("json roundtrip diff: %s", d)
		}
	}
}

func TestJSON_64BitAsStrings(t *testing.T) {
	// Values past 2^53 do not survive as JSON numbers, so the encoding
	// carries them as decimal strings.
	g := New("TEST")
	g.Root.SetUint64("big", 18446744073709551615)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"18446744073709551615"`) {
		t.Errorf("output lacks the string-encoded value: %s", data)
	}
}

func TestJSON_FieldOrderPreserved(t *testing.T) {
	g := New("TEST")
	labels := []string{"third", "first", "second"}
	for i, l := range labels {
		g.Root.SetUint8(l, uint8(i))
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got GFF
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	fields := got.Root.Fields()
	for i, l := range labels {
		if fields[i].Label != l {
			t.Errorf("fields[%d].Label = %q, want %q", i, fields[i].Label, l)
		}
	}
}

func TestJSON_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no root", `{"content":"TEST"}`},
		{"unknown field type", `{"content":"TEST","root":{"id":-1,"fields":[{"label":"x","type":"quaternion","value":0}]}}`},
		{"type and value mismatch", `{"content":"TEST","root":{"id":-1,"fields":[{"label":"x","type":"uint8","value":"nope"}]}}`},
		{"bad uint64 string", `{"content":"TEST","root":{"id":-1,"fields":[{"label":"x","type":"uint64","value":"-3"}]}}`},
		{"bad base64", `{"content":"TEST","root":{"id":-1,"fields":[{"label":"x","type":"binary","value":"%%%"}]}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var g GFF
			if err := json.Unmarshal([]byte(tc.input), &g); err == nil {
				t.Error("Unmarshal should fail")
			}
		})
	}
}

func TestJSON_UnknownTypeWrapsSentinel(t *testing.T) {
	input := `{"content":"TEST","root":{"id":-1,"fields":[{"label":"x","type":"mystery","value":0}]}}`
	var g GFF
	err := json.Unmarshal([]byte(input), &g)
	if !errors.Is(err, ErrUnsupportedFieldType) {
		t.Errorf("err = %v, want ErrUnsupportedFieldType", err)
	}
}

func TestJSON_ToBinaryPipeline(t *testing.T) {
	// JSON in, binary out: the dump/build tool pair relies on this path.
	input := `{
	  "content": "TEST",
	  "root": {
	    "id": -1,
	    "fields": [
	      {"label": "Count", "type": "uint32", "value": 42},
	      {"label": "Items", "type": "list", "value": [
	        {"id": 0, "fields": [{"label": "Name", "type": "string", "value": "Alpha"}]}
	      ]}
	    ]
	  }
	}`

	var g GFF
	if err := json.Unmarshal([]byte(input), &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	data, err := Encode(&g)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v, err := got.Root.GetUint32("Count"); err != nil || v != 42 {
		t.Errorf("Count = %d, %v", v, err)
	}
	list, err := got.Root.GetList("Items")
	if err != nil || list.Len() != 1 {
		t.Fatalf("Items = %v, %v", list, err)
	}
	if v, _ := list.At(0).GetString("Name"); v != "Alpha" {
		t.Errorf("Items[0].Name = %q", v)
	}
}

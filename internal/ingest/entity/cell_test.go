package entity

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCellJSON(t *testing.T) {
	cases := []struct {
		cell Cell
		want string
	}{
		{cell: Null(), want: `null`},
		{cell: Cell{}, want: `null`},
		{cell: String("Ana"), want: `"Ana"`},
		{cell: String(`a "quoted" <b>`), want: `"a \"quoted\" \u003cb\u003e"`},
		{cell: Int(30), want: `30`},
		{cell: Int(-9007199254740993), want: `-9007199254740993`},
		{cell: Float(30), want: `30.0`},
		{cell: Float(2.5), want: `2.5`},
		{cell: Float(1e-7), want: `1e-07`},
		{cell: Float(1e21), want: `1e+21`},
		{cell: Float(0), want: `0.0`},
		{cell: Bool(true), want: `true`},
		{cell: Bool(false), want: `false`},
	}

	for _, tc := range cases {
		got, err := json.Marshal(tc.cell)
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.cell.Kind(), err)
		}
		if string(got) != tc.want {
			t.Fatalf("marshal = %s, want %s", got, tc.want)
		}
	}
}

func TestFloatNonFinite(t *testing.T) {
	if !Float(math.NaN()).IsNull() {
		t.Fatalf("expected NaN to become null")
	}
	inf := Float(math.Inf(1))
	if inf.Kind() != KindString || inf.Str() != "+Inf" {
		t.Fatalf("unexpected infinity cell: %v %q", inf.Kind(), inf.Str())
	}
}

func TestCellAccessors(t *testing.T) {
	if v, ok := Int(7).Int64(); !ok || v != 7 {
		t.Fatalf("unexpected Int64: %d %v", v, ok)
	}
	if _, ok := Float(7).Int64(); ok {
		t.Fatalf("float cell must not report an integer")
	}
	if got := Int(7).AsFloat(); !got.IsFloat() || got.Number() != 7 {
		t.Fatalf("unexpected AsFloat: %+v", got)
	}
	if got := String("x").AsFloat(); got.Kind() != KindString {
		t.Fatalf("AsFloat must keep non numbers")
	}
	if !Bool(true).Boolean() {
		t.Fatalf("expected true")
	}
	if KindNumber.String() != "number" || Kind(99).String() != "null" {
		t.Fatalf("unexpected kind names")
	}
}

func TestRecordKeepsColumnOrder(t *testing.T) {
	keys := []string{"name", "age", "active", "note"}
	rec := NewRecord(keys, []Cell{String("Ana"), Int(30), Bool(true), Null()})

	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"name":"Ana","age":30,"active":true,"note":null}`; string(got) != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}

func TestRecordsInsideSlice(t *testing.T) {
	keys := []string{"z", "a"}
	data := []Record{
		NewRecord(keys, []Cell{Int(1), String("x")}),
		NewRecord(keys, []Cell{Int(2), Null()}),
	}

	got, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `[{"z":1,"a":"x"},{"z":2,"a":null}]`; string(got) != want {
		t.Fatalf("marshal = %s, want %s", got, want)
	}
}

func TestNewRecordPanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewRecord([]string{"a"}, nil)
}

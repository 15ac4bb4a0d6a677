package entity

import (
	"math"
	"strconv"
	"strings"
)

// Kind tells which variant a Cell holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Cell is one value of a parsed table: null, string, number or boolean.
//
// Numbers remember whether they are integral so that JSON keeps 30 and 30.0
// apart. The zero value is a null cell.
type Cell struct {
	kind    Kind
	str     string
	integer int64
	float   float64
	isFloat bool
	boolean bool
}

// Null returns a null cell.
func Null() Cell {
	return Cell{}
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{kind: KindString, str: s}
}

// Int returns an integral number cell.
func Int(i int64) Cell {
	return Cell{kind: KindNumber, integer: i}
}

// Float returns a floating number cell. NaN becomes null and infinities
// become their string form, since JSON has no representation for either.
func Float(f float64) Cell {
	switch {
	case math.IsNaN(f):
		return Null()
	case math.IsInf(f, 0):
		return String(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return Cell{kind: KindNumber, float: f, isFloat: true}
}

// Bool returns a boolean cell.
func Bool(b bool) Cell {
	return Cell{kind: KindBool, boolean: b}
}

func (c Cell) Kind() Kind {
	return c.kind
}

func (c Cell) IsNull() bool {
	return c.kind == KindNull
}

// IsFloat reports whether a number cell holds a floating value.
func (c Cell) IsFloat() bool {
	return c.kind == KindNumber && c.isFloat
}

// Str returns the string payload; it is empty for other kinds.
func (c Cell) Str() string {
	return c.str
}

// Number returns the numeric payload as float64.
func (c Cell) Number() float64 {
	if c.isFloat {
		return c.float
	}
	return float64(c.integer)
}

// Int64 returns the integral payload and whether the cell holds one.
func (c Cell) Int64() (int64, bool) {
	return c.integer, c.kind == KindNumber && !c.isFloat
}

func (c Cell) Boolean() bool {
	return c.boolean
}

// AsFloat converts an integral number cell into a floating one. Other cells
// are returned unchanged.
func (c Cell) AsFloat() Cell {
	if c.kind != KindNumber || c.isFloat {
		return c
	}
	return Float(float64(c.integer))
}

// MarshalJSON encodes the cell as a JSON scalar. Floating numbers with an
// integral value keep a ".0" suffix.
func (c Cell) MarshalJSON() ([]byte, error) {
	return c.appendJSON(nil), nil
}

func (c Cell) appendJSON(dst []byte) []byte {
	switch c.kind {
	case KindString:
		return appendJSONString(dst, c.str)
	case KindNumber:
		if !c.isFloat {
			return strconv.AppendInt(dst, c.integer, 10)
		}
		return appendFloat(dst, c.float)
	case KindBool:
		return strconv.AppendBool(dst, c.boolean)
	default:
		return append(dst, "null"...)
	}
}

func appendFloat(dst []byte, f float64) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if !strings.ContainsAny(string(dst[start:]), ".e") {
		dst = append(dst, ".0"...)
	}
	return dst
}

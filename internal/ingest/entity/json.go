package entity

import "encoding/json"

func appendJSONString(dst []byte, s string) []byte {
	// json.Marshal never fails for a string
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

var (
	_ json.Marshaler = Cell{}
	_ json.Marshaler = Record{}
)

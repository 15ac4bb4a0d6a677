package pkguid

import (
	"fmt"
	"strconv"
	"strings"
)

// StringID generates unique string identifiers.
type StringID interface {
	// Generate generates a unique identifier as a string.
	Generate() string
}

// NumberID generates unique numeric identifiers.
type NumberID interface {
	// Generate generates a unique identifier as a uint64 number.
	Generate() int64
}

// Supported values for NewStringID.
const (
	KindUUID      = "uuid"
	KindSnowflake = "snowflake"
)

// NewStringID returns the string generator registered under kind.
// An empty kind selects UUID.
func NewStringID(kind string) (StringID, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindUUID:
		return NewUUID(), nil
	case KindSnowflake:
		sf, err := NewSnowflake()
		if err != nil {
			return nil, err
		}
		return numberString{id: sf}, nil
	default:
		return nil, fmt.Errorf("unknown id generator %q", kind)
	}
}

type numberString struct {
	id NumberID
}

func (n numberString) Generate() string {
	return strconv.FormatInt(n.id.Generate(), 10)
}

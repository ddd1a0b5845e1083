package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
)

// BigInt is an arbitrary-precision integer persisted as its decimal string.
type BigInt struct {
	Int *big.Int
}

// ParseBigInt parses a non-negative decimal integer of any size.
// Signs, fractions, exponents, whitespace and empty input are rejected.
func ParseBigInt(val string) (BigInt, error) {
	if !isDigits(val) {
		return BigInt{}, fmt.Errorf("%w: %q", ErrNotInteger, val)
	}
	n, ok := new(big.Int).SetString(val, 10)
	if !ok {
		return BigInt{}, fmt.Errorf("%w: %q", ErrNotInteger, val)
	}
	return BigInt{Int: n}, nil
}

// String returns the decimal representation, "0" when unset.
func (b BigInt) String() string {
	if b.Int == nil {
		return "0"
	}
	return b.Int.String()
}

// Value implements driver.Valuer.
func (b BigInt) Value() (driver.Value, error) {
	if b.Int == nil {
		return nil, nil
	}
	return b.Int.String(), nil
}

// Scan implements sql.Scanner.
func (b *BigInt) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		b.Int = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		b.Int = big.NewInt(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into BigInt", src)
	}
	parsed, err := ParseBigInt(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalJSON encodes the value as a quoted decimal string.
func (b BigInt) MarshalJSON() ([]byte, error) {
	if b.Int == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.Int.String())
}

// UnmarshalJSON accepts a quoted decimal string, a bare integer or null.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.Int = nil
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	parsed, err := ParseBigInt(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

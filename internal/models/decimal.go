package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Decimal accepts both JSON numbers and the quoted decimals the backend
// emits for fixed-point columns, and always encodes as a number.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*d = Decimal(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Decimal(v)
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(d))
}

func (d Decimal) Float64() float64 { return float64(d) }

// DecimalPtr is a helper for building partial updates
func DecimalPtr(v float64) *Decimal {
	d := Decimal(v)
	return &d
}

package tariff

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Bound is a bracket's upper limit. The zero value is the unbounded sentinel.
type Bound struct {
	limit   decimal.Decimal
	bounded bool
}

// UpTo returns a finite upper bound
func UpTo(limit decimal.Decimal) Bound {
	return Bound{limit: limit, bounded: true}
}

// Unbounded returns the open upper bound used by the top bracket
func Unbounded() Bound {
	return Bound{}
}

// Limit returns the finite limit and true, or zero and false when unbounded
func (b Bound) Limit() (decimal.Decimal, bool) {
	return b.limit, b.bounded
}

// IsUnbounded reports whether this is the open sentinel
func (b Bound) IsUnbounded() bool {
	return !b.bounded
}

// Equal compares two bounds by value
func (b Bound) Equal(o Bound) bool {
	if b.bounded != o.bounded {
		return false
	}
	return !b.bounded || b.limit.Equal(o.limit)
}

// String renders the limit, "∞" when unbounded
func (b Bound) String() string {
	if !b.bounded {
		return "∞"
	}
	return b.limit.String()
}

// MarshalJSON encodes an unbounded limit as null
func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(b.limit)
}

// UnmarshalJSON accepts null for unbounded, otherwise a decimal
func (b *Bound) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Unbounded()
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*b = UpTo(d)
	return nil
}

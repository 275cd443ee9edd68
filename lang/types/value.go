package types

import "strconv"

// Value is the interface implemented by any value produced by the lazy
// evaluation engine.
type Value interface {
	// String returns the string representation of the value.
	String() string

	// Type returns a short string describing the value's type.
	Type() string
}

// An Ordered type is a type whose values are ordered: if x and y are of the
// same Ordered type, then x must be less than y, greater than y, or equal to
// y.
type Ordered interface {
	Value
	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	Cmp(y Value) (int, error)
}

// Int is the type of an integer value.
type Int int64

var (
	_ Value   = Int(0)
	_ Ordered = Int(0)
)

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i Int) Type() string { return "int" }

func (i Int) Cmp(v Value) (int, error) {
	j := v.(Int)
	if i > j {
		return +1, nil
	} else if i < j {
		return -1, nil
	}
	return 0, nil
}

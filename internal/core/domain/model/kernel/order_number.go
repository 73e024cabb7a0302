package kernel

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"courierbot/internal/pkg/errs"
)

// OrderNumberWidth is the display width of an order number. Numbers that need more
// digits are rendered wider; the padding is a display convention only.
const OrderNumberWidth = 4

// ErrOrderNumberIsNotConstructed is returned by Validate on the zero value.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError("orderNumber")

// OrderNumber identifies an order for its whole lifetime, including after completion.
// It is allocated by a Sequence and never reused.
type OrderNumber struct {
	value uint64
}

// NewOrderNumber wraps a positive sequence value.
func NewOrderNumber(value uint64) (OrderNumber, error) {
	if value == 0 {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("orderNumber", value, 1, ^uint64(0))
	}
	return OrderNumber{value: value}, nil
}

// ParseOrderNumber parses the decimal representation of an order number.
// Padding is optional on input: "1", "01" and "0001" are the same order.
func ParseOrderNumber(s string) (OrderNumber, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if s == "" {
		return OrderNumber{}, ErrOrderNumberIsNotConstructed
	}

	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}

	return NewOrderNumber(value)
}

// MustParseOrderNumber is ParseOrderNumber for literals known to be valid. It panics on error.
func MustParseOrderNumber(s string) OrderNumber {
	n, err := ParseOrderNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the number zero-padded to OrderNumberWidth digits.
func (n OrderNumber) String() string {
	return fmt.Sprintf("%0*d", OrderNumberWidth, n.value)
}

// Value returns the raw sequence value.
func (n OrderNumber) Value() uint64 {
	return n.value
}

// IsEqual reports whether both numbers identify the same order.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Less orders numbers by allocation.
func (n OrderNumber) Less(other OrderNumber) bool {
	return n.value < other.value
}

// Compare returns -1, 0 or +1 like cmp.Compare, for use with slices.SortFunc.
func (n OrderNumber) Compare(other OrderNumber) int {
	return cmp.Compare(n.value, other.value)
}

// Validate rejects the zero value.
func (n OrderNumber) Validate() error {
	if n.value == 0 {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}

// Sequence allocates order numbers. It is a single monotonically increasing
// counter starting at 1; it is safe for concurrent use.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence returns a sequence whose first number is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next order number.
func (s *Sequence) Next() OrderNumber {
	return OrderNumber{value: s.last.Add(1)}
}

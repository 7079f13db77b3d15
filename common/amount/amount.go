package amount

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// errors
var (
	ErrOverflow       = errors.New("arithmetic overflow")
	ErrUnderflow      = errors.New("arithmetic underflow")
	ErrDivideByZero   = errors.New("divide by zero")
	ErrPercentOutside = errors.New("percent must be between 0 and 100")
)

// Add returns a+b or ErrOverflow
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(ErrOverflow, "%v + %v", a, b)
	}
	return a + b, nil
}

// Sub returns a-b or ErrUnderflow
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(ErrUnderflow, "%v - %v", a, b)
	}
	return a - b, nil
}

// Mul returns a*b or ErrOverflow
func Mul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, errors.Wrapf(ErrOverflow, "%v * %v", a, b)
	}
	return a * b, nil
}

// MulDiv returns floor(a*b/c) with a 256-bit intermediate product.
// The result must fit in 64 bits.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivideByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(a), uint256.NewInt(b), uint256.NewInt(c))
	if overflow || !z.IsUint64() {
		return 0, errors.Wrapf(ErrOverflow, "%v * %v / %v", a, b, c)
	}
	return z.Uint64(), nil
}

// Percent returns floor(v*pct/100)
func Percent(v uint64, pct uint64) (uint64, error) {
	if pct > 100 {
		return 0, ErrPercentOutside
	}
	return MulDiv(v, pct, 100)
}

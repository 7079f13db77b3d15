package amount

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCheckedArithmetic(t *testing.T) {
	v, err := Add(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	_, err = Add(math.MaxUint64, 1)
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = Sub(1, 2)
	assert.True(t, errors.Is(err, ErrUnderflow))

	v, err = Mul(1000, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5000), v)

	_, err = Mul(math.MaxUint64/2+1, 2)
	assert.True(t, errors.Is(err, ErrOverflow))

	v, err = Mul(0, math.MaxUint64)
	assert.NoError(t, err)
	assert.Zero(t, v)
}

func TestMulDiv(t *testing.T) {
	v, err := MulDiv(2500, 1000, 10000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(250), v)

	// floor
	v, err = MulDiv(1, 10, 3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	// intermediate product exceeds 64 bits
	v, err = MulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, err = MulDiv(math.MaxUint64, 2, 1)
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = MulDiv(1, 1, 0)
	assert.Equal(t, ErrDivideByZero, err)
}

func TestPercent(t *testing.T) {
	v, err := Percent(1000, 90)
	assert.NoError(t, err)
	assert.Equal(t, uint64(900), v)

	v, err = Percent(1001, 10)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), v)

	_, err = Percent(1, 101)
	assert.Equal(t, ErrPercentOutside, err)
}

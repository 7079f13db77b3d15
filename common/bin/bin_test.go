package bin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/meverselabs/partyround/common"
)

func TestBytesLengthPrefixes(t *testing.T) {
	for _, size := range []int{0, 1, 253, 254, 65535, 65536} {
		var buf bytes.Buffer
		bs := bytes.Repeat([]byte{0xab}, size)
		wrote, err := WriteBytes(&buf, bs)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), wrote)

		got, read, err := ReadBytes(&buf)
		require.NoError(t, err)
		require.Equal(t, wrote, read)
		require.Equal(t, bs, got, "size %v", size)
	}
}

func TestLimitedStringRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	sw := NewSumWriter()
	_, err := sw.LimitedString(&buf, strings.Repeat("a", 33), 32)
	require.True(t, errors.Is(err, ErrExceedLimit))
	require.Zero(t, buf.Len())

	_, err = sw.LimitedString(&buf, strings.Repeat("a", 33), 64)
	require.NoError(t, err)
	var s string
	_, err = NewSumReader().LimitedString(&buf, &s, 32)
	require.True(t, errors.Is(err, ErrExceedLimit))
}

func TestAddressesBound(t *testing.T) {
	addrs := []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02")}
	var buf bytes.Buffer
	_, err := NewSumWriter().Addresses(&buf, addrs, 1)
	require.True(t, errors.Is(err, ErrExceedLimit))

	buf.Reset()
	sum, err := NewSumWriter().Addresses(&buf, addrs, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2+2*common.AddressLength), sum)

	var got []common.Address
	_, err = NewSumReader().Addresses(&buf, &got, 2)
	require.NoError(t, err)
	require.Equal(t, addrs, got)
}

func TestTruncatedInputFails(t *testing.T) {
	var v uint64
	_, err := NewSumReader().Uint64(bytes.NewReader([]byte{1, 2, 3}), &v)
	require.Error(t, err)
}

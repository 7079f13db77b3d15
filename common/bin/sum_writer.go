package bin

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/pkg/errors"
)

// SumWriter accumulates the written byte count of a record
type SumWriter struct {
	sum int64
}

func NewSumWriter() *SumWriter {
	return &SumWriter{
		sum: 0,
	}
}

func (sw *SumWriter) add(n int64, err error) (int64, error) {
	sw.sum += n
	return sw.sum, err
}

func (sw *SumWriter) Uint8(w io.Writer, v uint8) (int64, error) {
	return sw.add(WriteUint8(w, v))
}

func (sw *SumWriter) Uint16(w io.Writer, v uint16) (int64, error) {
	return sw.add(WriteUint16(w, v))
}

func (sw *SumWriter) Uint32(w io.Writer, v uint32) (int64, error) {
	return sw.add(WriteUint32(w, v))
}

func (sw *SumWriter) Uint64(w io.Writer, v uint64) (int64, error) {
	return sw.add(WriteUint64(w, v))
}

func (sw *SumWriter) Int64(w io.Writer, v int64) (int64, error) {
	return sw.add(WriteUint64(w, uint64(v)))
}

func (sw *SumWriter) Bytes(w io.Writer, v []byte) (int64, error) {
	return sw.add(WriteBytes(w, v))
}

func (sw *SumWriter) String(w io.Writer, v string) (int64, error) {
	return sw.add(WriteString(w, v))
}

// LimitedString rejects strings longer than max bytes
func (sw *SumWriter) LimitedString(w io.Writer, v string, max int) (int64, error) {
	if len(v) > max {
		return sw.sum, errors.Wrapf(ErrExceedLimit, "string length %v > %v", len(v), max)
	}
	return sw.add(WriteString(w, v))
}

func (sw *SumWriter) Bool(w io.Writer, v bool) (int64, error) {
	return sw.add(WriteBool(w, v))
}

func (sw *SumWriter) Hash256(w io.Writer, v hash.Hash256) (int64, error) {
	return sw.add(writeFull(w, v[:]))
}

func (sw *SumWriter) Signature(w io.Writer, v common.Signature) (int64, error) {
	return sw.add(WriteBytes(w, v))
}

func (sw *SumWriter) Address(w io.Writer, v common.Address) (int64, error) {
	return sw.add(writeFull(w, v[:]))
}

// Addresses writes a uint16 count followed by the addresses, at most max entries
func (sw *SumWriter) Addresses(w io.Writer, v []common.Address, max int) (int64, error) {
	if len(v) > max {
		return sw.sum, errors.Wrapf(ErrExceedLimit, "address count %v > %v", len(v), max)
	}
	if sum, err := sw.Uint16(w, uint16(len(v))); err != nil {
		return sum, err
	}
	for _, addr := range v {
		if sum, err := sw.Address(w, addr); err != nil {
			return sum, err
		}
	}
	return sw.sum, nil
}

func (sw *SumWriter) WriterTo(w io.Writer, v io.WriterTo) (int64, error) {
	return sw.add(v.WriteTo(w))
}

func (sw *SumWriter) Sum() int64 {
	return sw.sum
}

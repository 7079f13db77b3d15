package bin

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/pkg/errors"
)

// SumReader accumulates the read byte count of a record
type SumReader struct {
	sum int64
}

func NewSumReader() *SumReader {
	return &SumReader{
		sum: 0,
	}
}

func (sr *SumReader) Uint8(r io.Reader, p *uint8) (int64, error) {
	v, n, err := ReadUint8(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Uint16(r io.Reader, p *uint16) (int64, error) {
	v, n, err := ReadUint16(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Uint32(r io.Reader, p *uint32) (int64, error) {
	v, n, err := ReadUint32(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Uint64(r io.Reader, p *uint64) (int64, error) {
	v, n, err := ReadUint64(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Int64(r io.Reader, p *int64) (int64, error) {
	v, n, err := ReadUint64(r)
	sr.sum += n
	*p = int64(v)
	return sr.sum, err
}

func (sr *SumReader) Bytes(r io.Reader, p *[]byte) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) String(r io.Reader, p *string) (int64, error) {
	v, n, err := ReadString(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

// LimitedString rejects strings longer than max bytes
func (sr *SumReader) LimitedString(r io.Reader, p *string, max int) (int64, error) {
	if sum, err := sr.String(r, p); err != nil {
		return sum, err
	}
	if len(*p) > max {
		return sr.sum, errors.Wrapf(ErrExceedLimit, "string length %v > %v", len(*p), max)
	}
	return sr.sum, nil
}

func (sr *SumReader) Bool(r io.Reader, p *bool) (int64, error) {
	v, n, err := ReadBool(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Hash256(r io.Reader, p *hash.Hash256) (int64, error) {
	n, err := FillBytes(r, p[:])
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Signature(r io.Reader, p *common.Signature) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	*p = v
	return sr.sum, err
}

func (sr *SumReader) Address(r io.Reader, p *common.Address) (int64, error) {
	n, err := FillBytes(r, p[:])
	sr.sum += n
	return sr.sum, err
}

// Addresses reads a uint16 count followed by the addresses, at most max entries
func (sr *SumReader) Addresses(r io.Reader, p *[]common.Address, max int) (int64, error) {
	var Len uint16
	if sum, err := sr.Uint16(r, &Len); err != nil {
		return sum, err
	}
	if int(Len) > max {
		return sr.sum, errors.Wrapf(ErrExceedLimit, "address count %v > %v", Len, max)
	}
	addrs := make([]common.Address, Len)
	for i := range addrs {
		if sum, err := sr.Address(r, &addrs[i]); err != nil {
			return sum, err
		}
	}
	*p = addrs
	return sr.sum, nil
}

func (sr *SumReader) ReaderFrom(r io.Reader, p io.ReaderFrom) (int64, error) {
	n, err := p.ReadFrom(r)
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Sum() int64 {
	return sr.sum
}

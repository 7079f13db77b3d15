package types

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

const maxEventAttrs = 32

// Attr is a named event value
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is emitted by a contract and delivered after the transaction commits
type Event struct {
	Index    uint16         `json:"index"`
	Contract common.Address `json:"contract"`
	Type     string         `json:"type"`
	Attrs    []Attr         `json:"attrs"`
}

// Attr returns the value of the named attribute
func (e *Event) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Event) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint16(w, e.Index); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, e.Contract); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, e.Type); err != nil {
		return sum, err
	}
	if len(e.Attrs) > maxEventAttrs {
		return sw.Sum(), ErrTooManyEventAttrs
	}
	if sum, err := sw.Uint8(w, uint8(len(e.Attrs))); err != nil {
		return sum, err
	}
	for _, a := range e.Attrs {
		if sum, err := sw.String(w, a.Key); err != nil {
			return sum, err
		}
		if sum, err := sw.String(w, a.Value); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (e *Event) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint16(r, &e.Index); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &e.Contract); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &e.Type); err != nil {
		return sum, err
	}
	var Len uint8
	if sum, err := sr.Uint8(r, &Len); err != nil {
		return sum, err
	}
	if Len > maxEventAttrs {
		return sr.Sum(), ErrTooManyEventAttrs
	}
	e.Attrs = make([]Attr, Len)
	for i := range e.Attrs {
		if sum, err := sr.String(r, &e.Attrs[i].Key); err != nil {
			return sum, err
		}
		if sum, err := sr.String(r, &e.Attrs[i].Value); err != nil {
			return sum, err
		}
	}
	return sr.Sum(), nil
}

package chain

import "github.com/pkg/errors"

// errors
var (
	ErrChainClosed      = errors.New("chain closed")
	ErrInvalidSequence  = errors.New("invalid sequence")
	ErrExistServiceName = errors.New("exist service name")
	ErrNotExistContract = errors.New("not exist contract")
	ErrInvalidSignedTx  = errors.New("invalid signed transaction")
)

type namedError interface {
	Name() string
}

// Reason returns the failure name a contract attached to err, or its root message
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var ne namedError
	if errors.As(err, &ne) {
		return ne.Name()
	}
	return errors.Cause(err).Error()
}

package chain

import (
	"github.com/meverselabs/partyround/core/types"
)

// Service is notified after each transaction is persisted
type Service interface {
	Name() string
	OnLoadChain(cn *Chain) error
	OnTransactionApplied(r *Receipt) error
}

// ServiceBase is a base handler of the chain service
type ServiceBase struct{}

// OnLoadChain called when the chain loaded
func (s *ServiceBase) OnLoadChain(cn *Chain) error {
	return nil
}

// OnTransactionApplied called when a transaction is persisted
func (s *ServiceBase) OnTransactionApplied(r *Receipt) error {
	return nil
}

// Receipt is the outcome of an executed transaction
type Receipt struct {
	TxHash    string         `json:"txHash"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Method    string         `json:"method"`
	Seq       uint64         `json:"seq"`
	Timestamp int64          `json:"timestamp"`
	Result    []string       `json:"result,omitempty"`
	Err       string         `json:"error,omitempty"`
	Events    []*types.Event `json:"events"`
}

// Success returns true when the call did not fail
func (r *Receipt) Success() bool {
	return r.Err == ""
}

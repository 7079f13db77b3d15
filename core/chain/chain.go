package chain

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/core/store"
	"github.com/meverselabs/partyround/core/types"
)

// Chain serializes execution over the store, one transaction at a time
type Chain struct {
	sync.Mutex
	store      *store.Store
	clock      types.Clock
	services   []Service
	serviceMap map[string]Service
	isClose    bool
	log        *zap.SugaredLogger
}

// NewChain returns a Chain
func NewChain(st *store.Store, clock types.Clock) *Chain {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Chain{
		store:      st,
		clock:      clock,
		services:   []Service{},
		serviceMap: map[string]Service{},
		log:        rlog.Named("chain").Sugar(),
	}
}

// RegisterService adds the service, it must be called before Init
func (cn *Chain) RegisterService(s Service) error {
	cn.Lock()
	defer cn.Unlock()
	if _, has := cn.serviceMap[s.Name()]; has {
		return errors.WithStack(ErrExistServiceName)
	}
	cn.services = append(cn.services, s)
	cn.serviceMap[s.Name()] = s
	return nil
}

// Init notifies the services that the chain is loaded
func (cn *Chain) Init() error {
	for _, s := range cn.services {
		if err := s.OnLoadChain(cn); err != nil {
			return err
		}
	}
	cn.log.Infow("chain loaded", "stateHash", cn.store.StateHash().String())
	return nil
}

// Close stops accepting transactions and closes the store
func (cn *Chain) Close() {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return
	}
	cn.isClose = true
	cn.store.Close()
}

// Store returns the store of the chain
func (cn *Chain) Store() *store.Store {
	return cn.store
}

// Clock returns the clock of the chain
func (cn *Chain) Clock() types.Clock {
	return cn.clock
}

// NewContext returns a context over the committed state at the current time
func (cn *Chain) NewContext() *types.Context {
	return types.NewContext(cn.store, cn.clock.Now())
}

// Seq returns the next sequence expected from the address
func (cn *Chain) Seq(addr common.Address) uint64 {
	return cn.store.AddrSeq(addr)
}

// DeployContract deploys and persists the contract owned by the sender
func (cn *Chain) DeployContract(sender common.Address, ClassID uint64, Args []byte) (common.Address, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return common.ZeroAddr, errors.WithStack(ErrChainClosed)
	}
	ctx := cn.NewContext()
	cont, err := ctx.DeployContract(sender, ClassID, Args)
	if err != nil {
		return common.ZeroAddr, err
	}
	if err := cn.store.Apply(ctx); err != nil {
		return common.ZeroAddr, err
	}
	cn.log.Infow("contract deployed", "address", cont.Address().String(), "class", types.ContractName(ClassID), "owner", sender.String())
	return cont.Address(), nil
}

// Call runs the method without persisting anything
func (cn *Chain) Call(from common.Address, to common.Address, method string, args []interface{}) ([]interface{}, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}
	ctx := cn.NewContext()
	return types.ExecFrom(ctx, from, to, method, args)
}

// Execute verifies the signed transaction and applies it.
// The sequence of the signer advances even when the call fails so the transaction cannot be replayed.
func (cn *Chain) Execute(stx *types.SignedTransaction) (*Receipt, error) {
	if stx == nil || stx.Transaction == nil {
		return nil, errors.WithStack(ErrInvalidSignedTx)
	}
	from, err := stx.Signer()
	if err != nil {
		return nil, err
	}
	tx := stx.Transaction

	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}
	if seq := cn.store.AddrSeq(from); tx.Seq != seq {
		return nil, errors.Wrapf(ErrInvalidSequence, "got %v want %v", tx.Seq, seq)
	}
	if !cn.store.IsContract(tx.To) {
		return nil, errors.WithStack(ErrNotExistContract)
	}
	TxHash := tx.Hash()
	r, execErr := cn.apply(from, tx.To, tx.Method, tx.Arguments())
	r.TxHash = TxHash.String()
	r.Seq = tx.Seq
	cn.notify(r)
	return r, execErr
}

// Exec applies an unsigned call from the address, used by genesis setup and tests
func (cn *Chain) Exec(from common.Address, to common.Address, method string, args []interface{}) ([]interface{}, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}
	return cn.applyRaw(from, to, method, args)
}

func (cn *Chain) applyRaw(from common.Address, to common.Address, method string, args []interface{}) ([]interface{}, error) {
	ctx := cn.NewContext()
	result, err := types.ExecFrom(ctx, from, to, method, args)
	if err != nil {
		return nil, err
	}
	if err := cn.store.Apply(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (cn *Chain) apply(from common.Address, to common.Address, method string, args []interface{}) (*Receipt, error) {
	begin := time.Now()
	ctx := cn.NewContext()
	ctx.AddAddrSeq(from)

	r := &Receipt{
		From:      from.String(),
		To:        to.String(),
		Method:    method,
		Timestamp: ctx.Timestamp(),
	}
	result, execErr := types.ExecFrom(ctx, from, to, method, args)
	if execErr != nil {
		r.Err = Reason(execErr)
	} else {
		for _, v := range result {
			r.Result = append(r.Result, types.FormatResult(v))
		}
	}
	for i, e := range ctx.Events() {
		e.Index = uint16(i)
	}
	r.Events = ctx.Events()
	if err := cn.store.Apply(ctx); err != nil {
		return r, err
	}
	for _, e := range r.Events {
		eventCounter.WithLabelValues(e.Type).Inc()
	}
	observeTx(method, execErr == nil, time.Since(begin).Seconds())
	if execErr != nil {
		cn.log.Debugw("transaction failed", "from", r.From, "to", r.To, "method", method, "err", execErr)
	}
	return r, execErr
}

func (cn *Chain) notify(r *Receipt) {
	for _, s := range cn.services {
		if err := s.OnTransactionApplied(r); err != nil {
			cn.log.Warnw("service failed", "service", s.Name(), "err", err)
		}
	}
}

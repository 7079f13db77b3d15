package apiserver

import (
	"sync"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/core/chain"
)

// APIServer provides json rpc and web service for the chain
type APIServer struct {
	chain.ServiceBase
	sync.Mutex
	e       *echo.Echo
	subMap  map[string]*JRPCSub
	cn      *chain.Chain
	hub     *hub
	reqCh   chan *reqData
	workers int
	runOnce sync.Once
	log     *zap.SugaredLogger
}

// NewAPIServer returns a APIServer
func NewAPIServer() *APIServer {
	log := rlog.Named("apiserver").Sugar()
	s := &APIServer{
		e:       echo.New(),
		subMap:  map[string]*JRPCSub{},
		hub:     newHub(log),
		reqCh:   make(chan *reqData),
		workers: 50,
		log:     log,
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.routes()
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "partyround.apiserver"
}

// OnLoadChain called when the chain loaded
func (s *APIServer) OnLoadChain(cn *chain.Chain) error {
	s.Lock()
	defer s.Unlock()
	s.cn = cn
	return nil
}

// OnTransactionApplied pushes the receipt to the event stream subscribers
func (s *APIServer) OnTransactionApplied(r *chain.Receipt) error {
	s.hub.broadcast(r)
	return nil
}

// Chain returns the loaded chain
func (s *APIServer) Chain() (*chain.Chain, error) {
	s.Lock()
	defer s.Unlock()
	if s.cn == nil {
		return nil, ErrNotLoaded
	}
	return s.cn, nil
}

// Subscribers returns the number of open event stream sessions
func (s *APIServer) Subscribers() int {
	return s.hub.count()
}

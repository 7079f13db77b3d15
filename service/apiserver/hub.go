package apiserver

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/chain"
)

const sessionBufferSize = 1000

// hub fans receipts out to the websocket event stream sessions
type hub struct {
	sync.Mutex
	sessions map[*session]struct{}
	log      *zap.SugaredLogger
}

func newHub(log *zap.SugaredLogger) *hub {
	return &hub{
		sessions: map[*session]struct{}{},
		log:      log,
	}
}

func (h *hub) add(s *session) {
	h.Lock()
	defer h.Unlock()
	h.sessions[s] = struct{}{}
}

func (h *hub) remove(s *session) {
	h.Lock()
	defer h.Unlock()
	delete(h.sessions, s)
}

func (h *hub) count() int {
	h.Lock()
	defer h.Unlock()
	return len(h.sessions)
}

func (h *hub) broadcast(r *chain.Receipt) {
	h.Lock()
	defer h.Unlock()
	for s := range h.sessions {
		if s.accepts(r) {
			s.send(r)
		}
	}
}

// session is a single event stream connection, optionally filtered by contract
type session struct {
	conn         *websocket.Conn
	contract     *common.Address
	receiptCh    chan *chain.Receipt
	pingInterval time.Duration
	log          *zap.SugaredLogger
}

func newSession(conn *websocket.Conn, contract *common.Address, log *zap.SugaredLogger) *session {
	return &session{
		conn:         conn,
		contract:     contract,
		receiptCh:    make(chan *chain.Receipt, sessionBufferSize),
		pingInterval: 5 * time.Second,
		log:          log,
	}
}

func (s *session) accepts(r *chain.Receipt) bool {
	if s.contract == nil {
		return true
	}
	target := s.contract.String()
	if r.To == target {
		return true
	}
	for _, e := range r.Events {
		if e.Contract == *s.contract {
			return true
		}
	}
	return false
}

func (s *session) send(r *chain.Receipt) {
	select {
	case s.receiptCh <- r:
	default:
		s.log.Warnw("receipt channel is full, dropping receipt", "txHash", r.TxHash)
	}
}

// run writes receipts until the context is done or the connection fails
func (s *session) run(ctx context.Context) error {
	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case r := <-s.receiptCh:
			if err = s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err == nil {
				err = s.conn.WriteJSON(r)
			}
		case <-time.After(s.pingInterval):
			err = s.conn.WriteMessage(websocket.PingMessage, []byte{})
		}
		if err != nil {
			s.log.Debugw("event session closed", "err", err)
			return err
		}
	}
}

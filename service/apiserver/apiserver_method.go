package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/chain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type reqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

func (s *APIServer) routes() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.POST("/api/endpoints/http", func(c echo.Context) error {
		defer c.Request().Body.Close()
		req, err := decodeRequest(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, &JRPCResponse{JSONRPC: "2.0", Error: err.Error()})
		}
		res := s.dispatch(req)
		if res == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.JSON(http.StatusOK, res)
	})
	s.e.GET("/api/endpoints/websocket", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return nil
			}
			req, err := decodeRequest(bytes.NewReader(data))
			if err != nil {
				return err
			}
			res := s.dispatch(req)
			if res != nil {
				if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
					return err
				}
				if err := conn.WriteJSON(res); err != nil {
					return err
				}
			}
		}
	})
	s.e.GET("/api/events", func(c echo.Context) error {
		var filter *common.Address
		if v := c.QueryParam("contract"); v != "" {
			addr, err := common.ParseAddress(v)
			if err != nil {
				return c.String(http.StatusBadRequest, err.Error())
			}
			filter = &addr
		}
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request().Context())
		defer cancel()
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ss := newSession(conn, filter, s.log)
		s.hub.add(ss)
		defer s.hub.remove(ss)
		ss.run(ctx)
		return nil
	})
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func decodeRequest(r io.Reader) (*JRPCRequest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var req JRPCRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *APIServer) startWorkers() {
	s.runOnce.Do(func() {
		for i := 0; i < s.workers; i++ {
			go func() {
				for r := range s.reqCh {
					r.resCh <- s.handleJRPC(r.req)
				}
			}()
		}
	})
}

func (s *APIServer) dispatch(req *JRPCRequest) *JRPCResponse {
	s.startWorkers()
	resCh := make(chan *JRPCResponse, 1)
	s.reqCh <- &reqData{
		req:   req,
		resCh: resCh,
	}
	return <-resCh
}

// Handler returns the http handler of the apiserver
func (s *APIServer) Handler() http.Handler {
	return s.e
}

// Run starts web service of the apiserver
func (s *APIServer) Run(BindAddress string) error {
	s.startWorkers()
	s.log.Infow("apiserver started", "bind", BindAddress)
	return s.e.Start(BindAddress)
}

// Shutdown stops the web service
func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, ErrExistSubName
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	invalid := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
		Error:   ErrInvalidMethod.Error(),
	}
	ls := strings.SplitN(req.Method, ".", 2)
	if len(ls) != 2 {
		return invalid
	}

	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	if !has {
		return invalid
	}

	sub.Lock()
	fn, has := sub.funcMap[ls[1]]
	sub.Unlock()
	if !has {
		if req.ID == nil {
			return nil
		}
		return invalid
	}

	ret, err := fn(req.ID, NewArgument(req.Params))
	if req.ID == nil {
		return nil
	}
	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}
	if err != nil {
		s.log.Debugw("jrpc failed", "method", req.Method, "err", err)
		res.Error = chain.Reason(err)
	} else {
		res.Result = ret
	}
	return res
}

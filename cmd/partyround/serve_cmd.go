package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/meverselabs/partyround/cmd/app"
	"github.com/meverselabs/partyround/cmd/closer"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/store"
	"github.com/meverselabs/partyround/core/types"
	"github.com/meverselabs/partyround/service/apiserver"
	"github.com/meverselabs/partyround/service/apiserver/viewchain"
)

func serveCommand(pCfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "runs the node and its json rpc server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*pCfgPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *Config) error {
	rlog.SetLevel(cfg.LogLevel)
	defer rlog.Sync()

	k, err := cfg.adminKey()
	if err != nil {
		return err
	}

	cm := closer.NewManager()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cm.CloseAll()

	st, err := store.NewStore(cfg.contextPath(), cfg.CacheSize)
	if err != nil {
		return err
	}
	cn := chain.NewChain(st, types.SystemClock{})
	cm.Add("chain", cn)

	rpcapi := apiserver.NewAPIServer()
	if err := cn.RegisterService(rpcapi); err != nil {
		return err
	}
	if err := cn.Init(); err != nil {
		return err
	}
	if err := viewchain.NewViewchain(rpcapi, cn); err != nil {
		return err
	}

	d, err := app.LoadDeployment(cfg.deploymentPath())
	if err != nil {
		return err
	}
	if d == nil {
		g, err := cfg.genesis(k.Address())
		if err != nil {
			return err
		}
		if d, err = app.Deploy(cn, g); err != nil {
			return err
		}
		if err := app.SaveDeployment(cfg.deploymentPath(), d); err != nil {
			return err
		}
	} else if _, err := app.RegisterContractClass(); err != nil {
		return err
	}
	rlog.Infow("node ready",
		"admin", k.Address().String(),
		"partyRound", d.PartyRound.String(),
		"baseToken", d.BaseToken.String(),
		"ownershipToken", d.OwnershipToken.String(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- rpcapi.Run(cfg.RPCBind)
	}()
	cm.Add("apiserver", closer.CloserFunc(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rpcapi.Shutdown(ctx); err != nil {
			rlog.Warnw("apiserver shutdown", "err", err)
		}
	}))

	select {
	case <-sigc:
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

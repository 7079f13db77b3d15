package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/meverselabs/partyround/cmd/app"
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/store"
	"github.com/meverselabs/partyround/core/types"
)

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

func stateCommand(pCfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "dumps the party round state from a stopped node's store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*pCfgPath)
			if err != nil {
				return err
			}
			d, err := app.LoadDeployment(cfg.deploymentPath())
			if err != nil {
				return err
			}
			if d == nil {
				return errors.New("the store has no deployment, run serve first")
			}
			if _, err := app.RegisterContractClass(); err != nil {
				return err
			}
			st, err := store.NewStore(cfg.contextPath(), cfg.CacheSize)
			if err != nil {
				return err
			}
			cn := chain.NewChain(st, types.SystemClock{})
			defer cn.Close()

			out := map[string]interface{}{}
			for _, m := range []string{"FundraiseState", "TreasuryBalance", "TreasuryTokens", "HasMultisig", "Owners", "Threshold", "OwnerSetSeqno", "ProposalCount"} {
				is, err := cn.Call(common.ZeroAddr, d.PartyRound, m, nil)
				if err != nil {
					return errors.Wrap(err, m)
				}
				if len(is) > 0 {
					out[m] = is[0]
				}
			}
			fmt.Println("deployment:", d.PartyRound.String())
			dumper.Dump(out)
			fmt.Println("stateHash:", st.StateHash().String())
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/key"
	"github.com/meverselabs/partyround/core/types"
)

func callCommand(pHostURL *string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "call [contract] [method] (args...)",
		Short: "reads a contract method without sending a transaction",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := []interface{}{args[0], args[1], toParams(args[2:])}
			if from != "" {
				params = append(params, from)
			}
			res, err := DoRequest(*pHostURL, "view.call", params)
			if err != nil {
				return err
			}
			fmt.Println(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "caller address of the call")
	return cmd
}

func sendCommand(pHostURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "send [keyhex] [contract] [method] (args...)",
		Short: "signs and sends a transaction",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.NewMemoryKeyFromHex(args[0])
			if err != nil {
				return err
			}
			to, err := common.ParseAddress(args[1])
			if err != nil {
				return err
			}
			res, err := DoRequest(*pHostURL, "view.seq", []interface{}{k.Address().String()})
			if err != nil {
				return err
			}
			sseq, ok := res.(string)
			if !ok {
				return errors.Errorf("invalid seq response %v", res)
			}
			seq, err := hexutil.DecodeUint64(sseq)
			if err != nil {
				return errors.WithStack(err)
			}

			tx := &types.Transaction{
				Seq:    seq,
				To:     to,
				Method: args[2],
				Args:   args[3:],
			}
			sig, err := k.Sign(tx.Hash())
			if err != nil {
				return err
			}
			res, err = DoRequest(*pHostURL, "view.sendTx", []interface{}{to.String(), tx.Method, toParams(tx.Args), seq, hexutil.Encode(sig)})
			if err != nil {
				return err
			}
			fmt.Println(tx.Hash().String(), res)
			return nil
		},
	}
}

func toParams(args []string) []interface{} {
	params := make([]interface{}, 0, len(args))
	for _, a := range args {
		params = append(params, a)
	}
	return params
}

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meverselabs/partyround/common/key"
)

func keyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "manages signing keys",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "creates a new key and prints it with its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.NewMemoryKey()
			if err != nil {
				return err
			}
			fmt.Println("key     :", hex.EncodeToString(k.Bytes()))
			fmt.Println("address :", k.Address().String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "address [keyhex]",
		Short: "prints the address of the key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.NewMemoryKeyFromHex(args[0])
			if err != nil {
				return err
			}
			fmt.Println(k.Address().String())
			return nil
		},
	})
	return cmd
}

package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending transactions into a block.",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := NewClient(url, timeout).Mine()
		if err != nil {
			log.Fatal(err)
		}

		if result.Block == nil {
			pterm.Info.Println(result.Status)
			return
		}

		pterm.Success.Printfln("mined block %d: %s: nonce %d", result.Block.Number, result.Block.Hash, result.Block.Nonce)
		if err := renderTransactions(result.Block.Transactions); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

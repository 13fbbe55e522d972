package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the transactions waiting to be mined.",
	Run: func(cmd *cobra.Command, args []string) {
		txs, err := NewClient(url, timeout).Pending()
		if err != nil {
			log.Fatal(err)
		}

		data := pterm.TableData{
			{"Sender", "Receiver", "Amount", "Kind"},
		}
		for _, tx := range txs {
			data = append(data, []string{tx.Sender, tx.Receiver, tx.Amount.String(), tx.Kind})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

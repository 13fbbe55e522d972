package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sender   string
	receiver string
	amount   string
	kind     string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node.",
	Run: func(cmd *cobra.Command, args []string) {
		tx := Tx{
			Sender:   sender,
			Receiver: receiver,
			Amount:   amount,
			Kind:     kind,
		}

		status, err := NewClient(url, timeout).Send(tx)
		if err != nil {
			log.Fatal(err)
		}

		pterm.Success.Println(status.Status)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Party the value comes from.")
	sendCmd.Flags().StringVarP(&receiver, "receiver", "r", "", "Party the value goes to.")
	sendCmd.Flags().StringVarP(&amount, "amount", "a", "", "Decimal amount to send.")
	sendCmd.Flags().StringVarP(&kind, "kind", "k", "transfer", "Kind of transaction.")
}

package cmd

import (
	"log"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ask the node to validate its chain.",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := NewClient(url, timeout).Validate()
		if err != nil {
			log.Fatal(err)
		}

		if v.Valid {
			pterm.Success.Printfln("chain of %d blocks is valid", v.Length)
			return
		}

		var number uint64
		if v.Block != nil {
			number = *v.Block
		}
		pterm.Error.Printfln("chain is invalid at block %d: %s: %s", number, v.Check, v.Error)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var file string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate an exported chain without a node.",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(file)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		msg, err := verifyChain(f)
		if err != nil {
			pterm.Error.Println(msg)
			os.Exit(1)
		}

		pterm.Success.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&file, "file", "f", "chain.json", "Path to the exported chain.")
}

// verifyChain validates the exported chain and describes the result.
func verifyChain(r io.Reader) (string, error) {
	n, err := state.VerifyExport(r, nil)
	if err != nil {
		var be *database.BlockError
		if errors.As(err, &be) {
			return fmt.Sprintf("chain is invalid at block %d: %s: %s", be.Number, be.Check, be.Err), err
		}
		return fmt.Sprintf("chain can't be checked: %s", err), err
	}

	return fmt.Sprintf("chain of %d blocks is valid", n), nil
}

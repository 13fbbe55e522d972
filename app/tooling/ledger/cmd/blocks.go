package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var number int64

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks of the chain.",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(url, timeout)

		if number >= 0 {
			block, err := client.Block(uint64(number))
			if err != nil {
				log.Fatal(err)
			}

			if err := renderBlocks([]database.BlockData{block}); err != nil {
				log.Fatal(err)
			}
			if err := renderTransactions(block.Transactions); err != nil {
				log.Fatal(err)
			}
			return
		}

		blocks, err := client.Blocks()
		if err != nil {
			log.Fatal(err)
		}

		if err := renderBlocks(blocks); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().Int64VarP(&number, "number", "n", -1, "Only print the block with this number.")
}

// blockRows builds the table for a set of blocks.
func blockRows(blocks []database.BlockData) pterm.TableData {
	data := pterm.TableData{
		{"Number", "Timestamp", "Previous", "Merkle Root", "Nonce", "Hash", "Txs"},
	}

	for _, b := range blocks {
		root := "-"
		if b.MerkleRoot != nil {
			root = short(*b.MerkleRoot)
		}

		data = append(data, []string{
			fmt.Sprint(b.Number),
			b.TimeStamp.UTC().Format(database.TimeLayout),
			short(b.PrevHash),
			root,
			fmt.Sprint(b.Nonce),
			short(b.Hash),
			fmt.Sprint(len(b.Transactions)),
		})
	}

	return data
}

func renderBlocks(blocks []database.BlockData) error {
	return pterm.DefaultTable.WithHasHeader().WithData(blockRows(blocks)).Render()
}

func renderTransactions(trans []database.TxData) error {
	data := pterm.TableData{
		{"Index", "Sender", "Receiver", "Amount"},
	}

	for i, tx := range trans {
		data = append(data, []string{fmt.Sprint(i), tx.Sender, tx.Receiver, tx.Amount.String()})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// short trims a hex digest for display.
func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16]
}

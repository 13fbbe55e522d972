package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/shopspring/decimal"
)

// Tx is the payload posted to the node for a new transaction.
type Tx struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
}

// PendingTx is a transaction waiting to be mined.
type PendingTx struct {
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     string          `json:"kind"`
}

// Validation is the result of the node walking its chain.
type Validation struct {
	Valid  bool    `json:"valid"`
	Length int     `json:"length"`
	Block  *uint64 `json:"block,omitempty"`
	Check  string  `json:"check,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Status is the simple response the node gives for some calls.
type Status struct {
	Status string `json:"status"`
}

// MineResult is either a sealed block or a status when nothing was mined.
type MineResult struct {
	Block  *database.BlockData
	Status string
}

// =============================================================================

// Client provides access to the node API.
type Client struct {
	url  string
	http *http.Client
}

// NewClient constructs a client for the node at the specified url.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  strings.TrimSuffix(url, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Send submits a transaction to the node.
func (c *Client) Send(tx Tx) (Status, error) {
	var status Status
	if err := c.do(http.MethodPost, "/v1/tx/submit", tx, &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Pending returns the transactions waiting to be mined.
func (c *Client) Pending() ([]PendingTx, error) {
	var txs []PendingTx
	if err := c.do(http.MethodGet, "/v1/tx/pending/list", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Mine asks the node to seal the pending transactions into a block.
func (c *Client) Mine() (MineResult, error) {
	var raw json.RawMessage
	if err := c.do(http.MethodPost, "/v1/blocks/mine", nil, &raw); err != nil {
		return MineResult{}, err
	}

	var status Status
	if err := json.Unmarshal(raw, &status); err == nil && status.Status != "" {
		return MineResult{Status: status.Status}, nil
	}

	var bd database.BlockData
	if err := json.Unmarshal(raw, &bd); err != nil {
		return MineResult{}, fmt.Errorf("decoding block: %w", err)
	}

	return MineResult{Block: &bd}, nil
}

// Blocks returns every block in the chain.
func (c *Client) Blocks() ([]database.BlockData, error) {
	var blocks []database.BlockData
	if err := c.do(http.MethodGet, "/v1/blocks/list", nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Block returns the specified block.
func (c *Client) Block(number uint64) (database.BlockData, error) {
	var block database.BlockData
	if err := c.do(http.MethodGet, fmt.Sprintf("/v1/blocks/list/%d", number), nil, &block); err != nil {
		return database.BlockData{}, err
	}
	return block, nil
}

// Validate asks the node to validate its chain.
func (c *Client) Validate() (Validation, error) {
	var v Validation
	if err := c.do(http.MethodGet, "/v1/chain/validate", nil, &v); err != nil {
		return Validation{}, err
	}
	return v, nil
}

func (c *Client) do(method string, path string, body any, resp any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.url+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var er errs.Response
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil {
			return fmt.Errorf("node returned %s", res.Status)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("node returned %s: %s: %v", res.Status, er.Error, er.Fields)
		}
		return fmt.Errorf("node returned %s: %s", res.Status, er.Error)
	}

	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

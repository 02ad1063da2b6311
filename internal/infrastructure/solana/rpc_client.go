package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domainerrors "mint-market.backend/internal/domain/errors"
)

// TokenProgramID is the SPL Token program (Tokenkeg...)
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// RPCClient defines the minimal Solana RPC surface the marketplace needs.
type RPCClient interface {
	// GetTokenAccountsByOwner calls getTokenAccountsByOwner with
	// jsonParsed encoding for the SPL token program.
	GetTokenAccountsByOwner(ctx context.Context, owner string) (*TokenAccountsResult, error)
	// GetParsedAccountInfo calls getAccountInfo with jsonParsed encoding.
	// The result value is nil when the account does not exist.
	GetParsedAccountInfo(ctx context.Context, address string) (*ParsedAccountValue, error)
	// GetAccountData calls getAccountInfo with base64 encoding and returns
	// the raw account data, or nil when the account does not exist.
	GetAccountData(ctx context.Context, address string) ([]byte, error)
}

// JSONRPCClient is an HTTP JSON-RPC client for a Solana node.
type JSONRPCClient struct {
	endpoint   string
	commitment string
	http       *http.Client
}

// NewJSONRPCClient creates a Solana JSON-RPC client.
func NewJSONRPCClient(endpoint, commitment string, timeout time.Duration) *JSONRPCClient {
	if commitment == "" {
		commitment = "confirmed"
	}
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &JSONRPCClient{
		endpoint:   endpoint,
		commitment: commitment,
		http:       &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// call performs a single JSON-RPC round trip. Transport and node errors
// are translated to ErrChainUnavailable here so callers never inspect raw
// messages.
func (c *JSONRPCClient) call(ctx context.Context, method string, params any, out any) error {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("solana rpc: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("solana rpc: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domainerrors.ErrChainUnavailable, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s: http status %d", domainerrors.ErrChainUnavailable, method, resp.StatusCode)
	}

	var rr rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domainerrors.ErrChainUnavailable, method, err)
	}
	if rr.Error != nil {
		return fmt.Errorf("%w: %s: rpc code=%d message=%s", domainerrors.ErrChainUnavailable, method, rr.Error.Code, rr.Error.Message)
	}

	if out != nil {
		if err := json.Unmarshal(rr.Result, out); err != nil {
			return fmt.Errorf("%w: %s: unmarshal result: %v", domainerrors.ErrChainUnavailable, method, err)
		}
	}
	return nil
}

// ParsedTokenInfo is the jsonParsed spl-token account payload
type ParsedTokenInfo struct {
	Mint        string `json:"mint"`
	Owner       string `json:"owner"`
	TokenAmount struct {
		Amount   string `json:"amount"`
		Decimals int    `json:"decimals"`
	} `json:"tokenAmount"`
}

// ParsedAccountData is account data under jsonParsed encoding
type ParsedAccountData struct {
	Program string `json:"program"`
	Parsed  struct {
		Info ParsedTokenInfo `json:"info"`
		Type string          `json:"type"`
	} `json:"parsed"`
}

// ParsedAccountValue is a single account under jsonParsed encoding
type ParsedAccountValue struct {
	Pubkey string
	Data   ParsedAccountData
}

// TokenAccountsResult is the decoded result of getTokenAccountsByOwner.
type TokenAccountsResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value []struct {
		Pubkey  string `json:"pubkey"`
		Account struct {
			Data  ParsedAccountData `json:"data"`
			Owner string            `json:"owner"`
		} `json:"account"`
	} `json:"value"`
}

// GetTokenAccountsByOwner lists the owner's SPL token accounts with parsed
// balances.
func (c *JSONRPCClient) GetTokenAccountsByOwner(ctx context.Context, owner string) (*TokenAccountsResult, error) {
	params := []any{
		owner,
		map[string]any{"programId": TokenProgramID},
		map[string]any{"commitment": c.commitment, "encoding": "jsonParsed"},
	}

	var out TokenAccountsResult
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type accountInfoParsedResult struct {
	Value *struct {
		Data  ParsedAccountData `json:"data"`
		Owner string            `json:"owner"`
	} `json:"value"`
}

// GetParsedAccountInfo fetches a single account with parsed data. Returns
// nil when the account does not exist on-chain.
func (c *JSONRPCClient) GetParsedAccountInfo(ctx context.Context, address string) (*ParsedAccountValue, error) {
	params := []any{
		address,
		map[string]any{"commitment": c.commitment, "encoding": "jsonParsed"},
	}

	var out accountInfoParsedResult
	if err := c.call(ctx, "getAccountInfo", params, &out); err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, nil
	}
	return &ParsedAccountValue{Pubkey: address, Data: out.Value.Data}, nil
}

type accountInfoRawResult struct {
	Value *struct {
		// Data is ["<base64>", "base64"]
		Data  []string `json:"data"`
		Owner string   `json:"owner"`
	} `json:"value"`
}

// GetAccountData fetches raw base64 account data. Returns nil when the
// account does not exist on-chain.
func (c *JSONRPCClient) GetAccountData(ctx context.Context, address string) ([]byte, error) {
	params := []any{
		address,
		map[string]any{"commitment": c.commitment, "encoding": "base64"},
	}

	var out accountInfoRawResult
	if err := c.call(ctx, "getAccountInfo", params, &out); err != nil {
		return nil, err
	}
	if out.Value == nil || len(out.Value.Data) == 0 {
		return nil, nil
	}
	data, err := decodeBase64(out.Value.Data[0])
	if err != nil {
		return nil, fmt.Errorf("%w: getAccountInfo: bad account data: %v", domainerrors.ErrChainUnavailable, err)
	}
	return data, nil
}

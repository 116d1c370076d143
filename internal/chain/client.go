package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps go-ethereum RPC for read-only chain checks.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// HasCode reports whether a contract is deployed at address.
func (c *Client) HasCode(ctx context.Context, address common.Address) (bool, error) {
	code, err := c.ethClient.CodeAt(ctx, address, nil)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// Verify checks that the endpoint serves the chain described by meta and that
// its comptrollers are deployed.
func (c *Client) Verify(ctx context.Context, meta Metadata) error {
	id, err := c.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !id.IsUint64() || ChainID(id.Uint64()) != meta.ChainID {
		return fmt.Errorf("chain id mismatch: rpc=%s metadata=%d", id, meta.ChainID)
	}

	comptrollers := []string{meta.CorePoolComptrollerContractAddress}
	if meta.StakedEthPoolComptrollerContractAddress != "" {
		comptrollers = append(comptrollers, meta.StakedEthPoolComptrollerContractAddress)
	}
	for _, raw := range comptrollers {
		address, err := ParseAddress(raw)
		if err != nil {
			return err
		}
		ok, err := c.HasCode(ctx, address)
		if err != nil {
			return fmt.Errorf("code at %s: %w", address.Hex(), err)
		}
		if !ok {
			return fmt.Errorf("no contract deployed at %s", address.Hex())
		}
	}
	return nil
}

var _ ethereum.ContractCaller = (*Client)(nil)

// CallContract executes a read-only call at the given block, or latest when
// block is nil.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	return c.ethClient.CallContract(ctx, msg, block)
}

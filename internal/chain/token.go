package chain

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"marketScope/internal/model"
)

const erc20ABIStringJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

const erc20ABIBytes32JSON = `[
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

var (
	erc20ABIString      abi.ABI
	erc20ABIStringOnce  sync.Once
	erc20ABIStringErr   error
	erc20ABIBytes32     abi.ABI
	erc20ABIBytes32Once sync.Once
	erc20ABIBytes32Err  error
)

func erc20ABIStringInstance() (abi.ABI, error) {
	erc20ABIStringOnce.Do(func() {
		erc20ABIString, erc20ABIStringErr = abi.JSON(strings.NewReader(erc20ABIStringJSON))
	})
	return erc20ABIString, erc20ABIStringErr
}

func erc20ABIBytes32Instance() (abi.ABI, error) {
	erc20ABIBytes32Once.Do(func() {
		erc20ABIBytes32, erc20ABIBytes32Err = abi.JSON(strings.NewReader(erc20ABIBytes32JSON))
	})
	return erc20ABIBytes32, erc20ABIBytes32Err
}

// TokenCache caches token metadata by address.
type TokenCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.Token
}

func NewTokenCache() *TokenCache {
	return &TokenCache{data: make(map[common.Address]model.Token)}
}

func (c *TokenCache) Get(address common.Address) (model.Token, bool) {
	c.mu.RLock()
	token, ok := c.data[address]
	c.mu.RUnlock()
	return token, ok
}

func (c *TokenCache) Set(address common.Address, token model.Token) {
	c.mu.Lock()
	c.data[address] = token
	c.mu.Unlock()
}

// FetchToken loads ERC20 decimals and symbol. Symbols published as bytes32
// are accepted.
func FetchToken(ctx context.Context, caller ethereum.ContractCaller, token common.Address) (model.Token, error) {
	meta := model.Token{Address: token.Hex()}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		resp, err := caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	values, err := call("decimals", stringABI)
	if err != nil {
		return meta, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return meta, fmt.Errorf("unsupported decimals type %T", values[0])
	}
	meta.Decimals = decimals

	if values, err := call("symbol", stringABI); err == nil {
		meta.Symbol, _ = values[0].(string)
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		meta.Symbol, _ = bytes32ToString(values[0])
	} else {
		return meta, err
	}

	return meta, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

// TokenEnricher fills underlying token metadata missing from pool snapshots.
type TokenEnricher struct {
	Caller ethereum.ContractCaller
	Cache  *TokenCache
	Logger *zap.Logger
}

// EnrichPools fills the symbol and decimals of every underlying token whose
// symbol is empty. Native-asset markets without an underlying address are
// left alone.
func (e *TokenEnricher) EnrichPools(ctx context.Context, pools []model.Pool) error {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := e.Cache
	if cache == nil {
		cache = NewTokenCache()
	}

	for i := range pools {
		for j := range pools[i].Assets {
			underlying := &pools[i].Assets[j].VToken.UnderlyingToken
			if underlying.Symbol != "" || underlying.Address == "" {
				continue
			}
			address, err := ParseAddress(underlying.Address)
			if err != nil {
				return err
			}

			token, ok := cache.Get(address)
			if !ok {
				token, err = FetchToken(ctx, e.Caller, address)
				if err != nil {
					return fmt.Errorf("fetch token %s: %w", address.Hex(), err)
				}
				cache.Set(address, token)
				logger.Debug("token fetched",
					zap.String("token", address.Hex()),
					zap.String("symbol", token.Symbol),
					zap.Uint8("decimals", token.Decimals),
				)
			}

			underlying.Symbol = token.Symbol
			underlying.Decimals = token.Decimals
		}
	}
	return nil
}

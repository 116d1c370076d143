package collateral

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const comptrollerABIJSON = `[
  {"inputs": [{"name": "vTokens", "type": "address[]"}], "name": "enterMarkets", "outputs": [{"type": "uint256[]"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "vToken", "type": "address"}], "name": "exitMarket", "outputs": [{"type": "uint256"}], "stateMutability": "nonpayable", "type": "function"}
]`

var (
	comptrollerABI     abi.ABI
	comptrollerABIOnce sync.Once
	comptrollerABIErr  error
)

// ComptrollerABI returns the parsed comptroller collateral methods.
func ComptrollerABI() (abi.ABI, error) {
	comptrollerABIOnce.Do(func() {
		comptrollerABI, comptrollerABIErr = abi.JSON(strings.NewReader(comptrollerABIJSON))
	})
	return comptrollerABI, comptrollerABIErr
}

package chain

import (
	"errors"
	"fmt"
	"sort"
)

// ChainID identifies an EVM chain.
type ChainID uint64

const (
	Ethereum   ChainID = 1
	BSCMainnet ChainID = 56
	BSCTestnet ChainID = 97
)

var ErrUnknownChain = errors.New("unknown chain")

// Metadata describes the pools deployed on a chain.
type Metadata struct {
	ChainID                                 ChainID
	Name                                    string
	ShortName                               string
	CorePoolComptrollerContractAddress      string
	StakedEthPoolComptrollerContractAddress string
}

var chainMetadata = map[ChainID]Metadata{
	BSCMainnet: {
		ChainID:                            BSCMainnet,
		Name:                               "BNB Chain",
		ShortName:                          "BSC",
		CorePoolComptrollerContractAddress: "0xfD36E2c2a6789Db23113685031d7F16329158384",
	},
	BSCTestnet: {
		ChainID:                            BSCTestnet,
		Name:                               "BNB Chain Testnet",
		ShortName:                          "BSC Testnet",
		CorePoolComptrollerContractAddress: "0x94d1820b2D1c7c7452A163983Dc888CEC546b77D",
	},
	Ethereum: {
		ChainID:                                 Ethereum,
		Name:                                    "Ethereum",
		ShortName:                               "ETH",
		CorePoolComptrollerContractAddress:      "0x687a01ecF6d3907658f7A7c714749fAC32336D1B",
		StakedEthPoolComptrollerContractAddress: "0xF522cd0360EF8c2FF48B648d53EA1717Ec0F3Ac3",
	},
}

// GetMetadata returns the metadata registered for id.
func GetMetadata(id ChainID) (Metadata, error) {
	meta, ok := chainMetadata[id]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return meta, nil
}

// ChainIDs returns the supported chain IDs in ascending order.
func ChainIDs() []ChainID {
	ids := make([]ChainID, 0, len(chainMetadata))
	for id := range chainMetadata {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WithOverrides replaces comptroller addresses with non-empty overrides.
func (m Metadata) WithOverrides(corePool, stakedEthPool string) Metadata {
	if corePool != "" {
		m.CorePoolComptrollerContractAddress = corePool
	}
	if stakedEthPool != "" {
		m.StakedEthPoolComptrollerContractAddress = stakedEthPool
	}
	return m
}

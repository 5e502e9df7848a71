// Package addresses holds the per-chain table of deployed Raffle contracts.
package addresses

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/compose-network/lottery-entrance/internal/infra/filesystem"
	"github.com/ethereum/go-ethereum/common"
)

// Table maps a chain id to the Raffle deployments on that chain, newest first.
// A Table is immutable once built.
type Table struct {
	byChain map[int64][]common.Address
}

// NewTable copies entries into a Table.
func NewTable(entries map[int64][]common.Address) Table {
	byChain := make(map[int64][]common.Address, len(entries))
	for chainID, addrs := range entries {
		byChain[chainID] = append([]common.Address(nil), addrs...)
	}
	return Table{byChain: byChain}
}

// Resolve returns the first configured address for chainID. An unknown chain, or a
// chain configured with an empty list, yields false.
func (t Table) Resolve(chainID int64) (common.Address, bool) {
	addrs := t.byChain[chainID]
	if len(addrs) == 0 {
		return common.Address{}, false
	}
	return addrs[0], true
}

// Chains returns the number of chains in the table.
func (t Table) Chains() int {
	return len(t.byChain)
}

// Load reads a table file. The layout is an object keyed by decimal chain id whose
// values are lists of hex addresses; .yaml/.yml files are read as YAML, anything else
// as JSON.
func Load(reader filesystem.Reader, path string) (Table, error) {
	var raw map[string][]string

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = reader.ReadYAML(path, &raw)
	default:
		err = reader.ReadJSON(path, &raw)
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to read contract addresses from %s: %w", path, err)
	}

	return parse(raw)
}

func parse(raw map[string][]string) (Table, error) {
	entries := make(map[int64][]common.Address, len(raw))
	for key, values := range raw {
		chainID, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return Table{}, fmt.Errorf("invalid chain id %q: %w", key, err)
		}

		addrs := make([]common.Address, 0, len(values))
		for _, value := range values {
			if !common.IsHexAddress(value) {
				return Table{}, fmt.Errorf("invalid address %q for chain %d", value, chainID)
			}
			addrs = append(addrs, common.HexToAddress(value))
		}
		entries[chainID] = addrs
	}

	return Table{byChain: entries}, nil
}

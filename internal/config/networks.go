package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// TokenClaimInfo describes one claimable reward token on a network.
type TokenClaimInfo struct {
	Label    string `yaml:"label"`
	Rewarder string `yaml:"rewarder"`
	Token    string `yaml:"token"`
	Manifest string `yaml:"manifest"`
}

type ContractAddresses struct {
	MerkleRedeem string `yaml:"merkleRedeem"`
}

type NetworkConfig struct {
	Contracts   ContractAddresses `yaml:"contracts"`
	RewardToken string            `yaml:"rewardToken"`
	TokenClaims []TokenClaimInfo  `yaml:"tokenClaims"`
}

func (nc NetworkConfig) clone() NetworkConfig {
	cp := nc
	if nc.TokenClaims != nil {
		cp.TokenClaims = make([]TokenClaimInfo, len(nc.TokenClaims))
		copy(cp.TokenClaims, nc.TokenClaims)
	}
	return cp
}

type NetworkTable map[Network]NetworkConfig

const balMiningReports = "https://raw.githubusercontent.com/balancer-labs/bal-mining-scripts/master/reports"

// DefaultNetworkTable returns the built-in deployment table.
func DefaultNetworkTable() NetworkTable {
	table := NetworkTable{
		Network_Mainnet: {
			Contracts: ContractAddresses{
				MerkleRedeem: "0x6d19b2bF3A36A61530909Ae65445a906D98A2Fa8",
			},
			RewardToken: "0xba100000625a3754423978a60c9317c58a424e3d",
			TokenClaims: []TokenClaimInfo{
				{
					Label:    "BAL",
					Rewarder: "0x6d19b2bF3A36A61530909Ae65445a906D98A2Fa8",
					Token:    "0xba100000625a3754423978a60c9317c58a424e3d",
					Manifest: fmt.Sprintf("%s/_current.json", balMiningReports),
				},
			},
		},
		Network_Kovan: {
			Contracts: ContractAddresses{
				MerkleRedeem: "0x3bc73D276EEE8cA9424Ecb922375A0357c1833B3",
			},
			RewardToken: "0xba100000625a3754423978a60c9317c58a424e3d",
		},
		Network_Polygon: {
			Contracts: ContractAddresses{
				MerkleRedeem: "0xd2EB7Bd802A7CA68d9AcD209bEc4E664A9abDD7b",
			},
			RewardToken: "0x9a71012b13ca4d3d0cdc72a177df3ef03b0e76a3",
			TokenClaims: []TokenClaimInfo{
				{
					Label:    "BAL",
					Rewarder: "0xd2EB7Bd802A7CA68d9AcD209bEc4E664A9abDD7b",
					Token:    "0x9a71012b13ca4d3d0cdc72a177df3ef03b0e76a3",
					Manifest: fmt.Sprintf("%s/_current-polygon.json", balMiningReports),
				},
			},
		},
		Network_Arbitrum: {
			Contracts: ContractAddresses{
				MerkleRedeem: "0x6bd0B17713aaa29A2d7c9A39dDc120114f9fD809",
			},
			RewardToken: "0x040d1edc9569d4bab2d15287dc5a4f10f56a56b8",
			TokenClaims: []TokenClaimInfo{
				{
					Label:    "BAL",
					Rewarder: "0x6bd0B17713aaa29A2d7c9A39dDc120114f9fD809",
					Token:    "0x040d1edc9569d4bab2d15287dc5a4f10f56a56b8",
					Manifest: fmt.Sprintf("%s/_current-arbitrum.json", balMiningReports),
				},
			},
		},
	}
	normalized, err := table.normalize()
	if err != nil {
		panic(err)
	}
	return normalized
}

// normalize validates every address in the table and rewrites token addresses
// to checksum form.
func (t NetworkTable) normalize() (NetworkTable, error) {
	out := make(NetworkTable, len(t))
	for n, nc := range t {
		cp := nc.clone()
		if cp.Contracts.MerkleRedeem != "" && !common.IsHexAddress(cp.Contracts.MerkleRedeem) {
			return nil, fmt.Errorf("network %s: invalid merkleRedeem address '%s'", n, cp.Contracts.MerkleRedeem)
		}
		if cp.RewardToken != "" && !common.IsHexAddress(cp.RewardToken) {
			return nil, fmt.Errorf("network %s: invalid reward token address '%s'", n, cp.RewardToken)
		}
		for i, tc := range cp.TokenClaims {
			if !common.IsHexAddress(tc.Token) {
				return nil, fmt.Errorf("network %s: token claim '%s' has invalid token address '%s'", n, tc.Label, tc.Token)
			}
			if !common.IsHexAddress(tc.Rewarder) {
				return nil, fmt.Errorf("network %s: token claim '%s' has invalid rewarder address '%s'", n, tc.Label, tc.Rewarder)
			}
			if tc.Manifest == "" {
				return nil, fmt.Errorf("network %s: token claim '%s' has no manifest", n, tc.Label)
			}
			cp.TokenClaims[i].Token = common.HexToAddress(tc.Token).Hex()
		}
		out[n] = cp
	}
	return out, nil
}

type networkTableFile struct {
	Networks map[string]NetworkConfig `yaml:"networks"`
}

// ParseNetworkTableOverrides parses a YAML document of per-network entries keyed by
// network name or chain id.
func ParseNetworkTableOverrides(data []byte) (NetworkTable, error) {
	var f networkTableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse network table: %w", err)
	}

	table := make(NetworkTable, len(f.Networks))
	for key, nc := range f.Networks {
		n, err := ParseNetwork(key)
		if err != nil {
			return nil, err
		}
		table[n] = nc
	}
	return table.normalize()
}

// LoadNetworkTableOverrides reads ClaimsConfig.ConfigFile, if set, and replaces the
// matching network entries of the default table. Networks absent from the file keep
// their defaults.
func (c *Config) LoadNetworkTableOverrides() error {
	if c.ClaimsConfig.ConfigFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.ClaimsConfig.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read claims config file: %w", err)
	}
	overrides, err := ParseNetworkTableOverrides(data)
	if err != nil {
		return err
	}

	merged := make(NetworkTable, len(c.Networks)+len(overrides))
	for n, nc := range c.Networks {
		merged[n] = nc
	}
	for n, nc := range overrides {
		merged[n] = nc
	}
	c.Networks = merged
	return nil
}

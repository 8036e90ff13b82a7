package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "REWARDS_CLAIMER"

type Network uint64

const (
	Network_Mainnet  Network = 1
	Network_Kovan    Network = 42
	Network_Polygon  Network = 137
	Network_Arbitrum Network = 42161
)

var networkNames = map[Network]string{
	Network_Mainnet:  "mainnet",
	Network_Kovan:    "kovan",
	Network_Polygon:  "polygon",
	Network_Arbitrum: "arbitrum",
}

func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return strconv.FormatUint(uint64(n), 10)
}

// ParseNetwork accepts either a known network name or a numeric chain id.
func ParseNetwork(name string) (Network, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return 0, fmt.Errorf("network not provided")
	}
	for n, nName := range networkNames {
		if nName == name {
			return n, nil
		}
	}
	id, err := strconv.ParseUint(name, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("unsupported network '%s'", name)
	}
	return Network(id), nil
}

type EthereumRpcConfig struct {
	RpcUrl string
}

type IpfsConfig struct {
	Gateway string
}

type LiquidityMiningConfig struct {
	ApiUrl string
}

type ClaimsConfig struct {
	ConfigFile             string
	ReportFetchConcurrency int
}

type ReportCacheConfig struct {
	Size int
	Dir  string
}

type PrometheusConfig struct {
	Enabled bool
	Port    int
}

type StatsdConfig struct {
	Enabled bool
	Url     string
}

type TracingConfig struct {
	Enabled bool
}

type DataDogConfig struct {
	StatsdConfig  StatsdConfig
	TracingConfig TracingConfig
}

type SignerConfig struct {
	PrivateKey string
}

type Config struct {
	Debug                 bool
	Network               Network
	EthereumRpcConfig     EthereumRpcConfig
	IpfsConfig            IpfsConfig
	LiquidityMiningConfig LiquidityMiningConfig
	ClaimsConfig          ClaimsConfig
	ReportCacheConfig     ReportCacheConfig
	PrometheusConfig      PrometheusConfig
	DataDogConfig         DataDogConfig
	SignerConfig          SignerConfig

	// Networks is the per-network table of contracts, reward token and token claims.
	// It is never mutated after construction.
	Networks NetworkTable
}

var (
	Debug          = "debug"
	NetworkName    = "network"
	EthereumRpcUrl = "ethereum.rpc-url"

	IpfsGateway           = "ipfs.gateway"
	LiquidityMiningApiUrl = "liquidity-mining.api-url"

	ClaimsConfigFile             = "claims.config-file"
	ClaimsReportFetchConcurrency = "claims.report-fetch-concurrency"

	ReportCacheSize = "report-cache.size"
	ReportCacheDir  = "report-cache.dir"

	PrometheusEnabled = "prometheus.enabled"
	PrometheusPort    = "prometheus.port"

	DataDogStatsdEnabled  = "datadog.statsd.enabled"
	DataDogStatsdUrl      = "datadog.statsd.url"
	DataDogTracingEnabled = "datadog.tracing.enabled"

	SignerPrivateKey = "signer.private-key"
)

const (
	DefaultIpfsGateway           = "https://ipfs.io"
	DefaultLiquidityMiningApiUrl = "https://api.balancer.finance"
	DefaultReportCacheSize       = 256
)

// NewConfig builds the Config from values bound into viper by the cli.
// The network table starts from the built-in defaults; a claims config file, when set,
// is loaded by LoadNetworkTableOverrides. An unknown or missing network is an error.
func NewConfig() (*Config, error) {
	network, err := ParseNetwork(viper.GetString(normalizeFlagName(NetworkName)))
	if err != nil {
		return nil, err
	}

	return &Config{
		Debug:   viper.GetBool(normalizeFlagName(Debug)),
		Network: network,

		EthereumRpcConfig: EthereumRpcConfig{
			RpcUrl: viper.GetString(normalizeFlagName(EthereumRpcUrl)),
		},

		IpfsConfig: IpfsConfig{
			Gateway: stringWithDefault(viper.GetString(normalizeFlagName(IpfsGateway)), DefaultIpfsGateway),
		},

		LiquidityMiningConfig: LiquidityMiningConfig{
			ApiUrl: stringWithDefault(viper.GetString(normalizeFlagName(LiquidityMiningApiUrl)), DefaultLiquidityMiningApiUrl),
		},

		ClaimsConfig: ClaimsConfig{
			ConfigFile:             viper.GetString(normalizeFlagName(ClaimsConfigFile)),
			ReportFetchConcurrency: viper.GetInt(normalizeFlagName(ClaimsReportFetchConcurrency)),
		},

		ReportCacheConfig: ReportCacheConfig{
			Size: viper.GetInt(normalizeFlagName(ReportCacheSize)),
			Dir:  viper.GetString(normalizeFlagName(ReportCacheDir)),
		},

		PrometheusConfig: PrometheusConfig{
			Enabled: viper.GetBool(normalizeFlagName(PrometheusEnabled)),
			Port:    viper.GetInt(normalizeFlagName(PrometheusPort)),
		},

		DataDogConfig: DataDogConfig{
			StatsdConfig: StatsdConfig{
				Enabled: viper.GetBool(normalizeFlagName(DataDogStatsdEnabled)),
				Url:     viper.GetString(normalizeFlagName(DataDogStatsdUrl)),
			},
			TracingConfig: TracingConfig{
				Enabled: viper.GetBool(normalizeFlagName(DataDogTracingEnabled)),
			},
		},

		SignerConfig: SignerConfig{
			PrivateKey: viper.GetString(normalizeFlagName(SignerPrivateKey)),
		},

		Networks: DefaultNetworkTable(),
	}, nil
}

// GetNetworkConfig returns a copy of the table entry for the network, or nil if the
// network is not configured at all.
func (c *Config) GetNetworkConfig(n Network) *NetworkConfig {
	nc, ok := c.Networks[n]
	if !ok {
		return nil
	}
	cp := nc.clone()
	return &cp
}

// GetTokenClaimsInfo returns the token claim entries for the network with token
// addresses in checksum form. Returns nil when the network has no token claims.
func (c *Config) GetTokenClaimsInfo(n Network) []TokenClaimInfo {
	nc := c.GetNetworkConfig(n)
	if nc == nil || nc.TokenClaims == nil {
		return nil
	}
	return nc.TokenClaims
}

// GetContractsMapForNetwork returns the deployed contract addresses, or nil for an unknown network.
func (c *Config) GetContractsMapForNetwork(n Network) *ContractAddresses {
	nc := c.GetNetworkConfig(n)
	if nc == nil {
		return nil
	}
	return &nc.Contracts
}

// GetRewardTokenForNetwork returns the address of the token tracked by the rewards estimate API.
func (c *Config) GetRewardTokenForNetwork(n Network) string {
	nc := c.GetNetworkConfig(n)
	if nc == nil {
		return ""
	}
	return nc.RewardToken
}

func stringWithDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func normalizeFlagName(name string) string {
	return KebabToSnakeCase(name)
}

func KebabToSnakeCase(str string) string {
	notSnake := regexp.MustCompile(`[_-]`)
	return notSnake.ReplaceAllString(str, "_")
}

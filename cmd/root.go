package cmd

import (
	"os"
	"strings"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rewards-claimer",
	Short: "Inspect, verify and claim weekly MerkleRedeem token rewards",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().StringP(config.NetworkName, "n", "mainnet", "The network to use (mainnet, kovan, polygon, arbitrum or a chain id)")

	rootCmd.PersistentFlags().String(config.EthereumRpcUrl, "", `e.g. "http://<hostname>:8545"`)

	rootCmd.PersistentFlags().String(config.IpfsGateway, config.DefaultIpfsGateway, `Gateway used to resolve IPFS hashes of manifests and reports`)
	rootCmd.PersistentFlags().String(config.LiquidityMiningApiUrl, config.DefaultLiquidityMiningApiUrl, `Base url of the liquidity mining estimates API`)

	rootCmd.PersistentFlags().String(config.ClaimsConfigFile, "", `YAML file overriding the per-network contracts and token claims`)
	rootCmd.PersistentFlags().Int(config.ClaimsReportFetchConcurrency, 8, `Maximum number of reports fetched in parallel per token`)

	rootCmd.PersistentFlags().Int(config.ReportCacheSize, config.DefaultReportCacheSize, `Number of reports kept by the in-memory cache`)
	rootCmd.PersistentFlags().String(config.ReportCacheDir, "", `Directory of an on-disk LevelDB report cache (optional)`)

	rootCmd.PersistentFlags().Bool(config.DataDogStatsdEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().String(config.DataDogStatsdUrl, "", `e.g. "localhost:8125"`)
	rootCmd.PersistentFlags().Bool(config.DataDogTracingEnabled, false, `e.g. "true" or "false"`)

	rootCmd.PersistentFlags().Bool(config.PrometheusEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().Int(config.PrometheusPort, 2112, `The port to run the prometheus server on`)

	rootCmd.PersistentFlags().String(config.SignerPrivateKey, "", `Hex encoded private key of the claiming account`)

	// setup sub commands
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(userClaimsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// bind any subcommand flags
	for _, c := range []*cobra.Command{pendingCmd, estimateCmd, userClaimsCmd, verifyCmd, watchCmd} {
		c.Flags().String(accountFlag, "", "Address of the account to inspect (required)")
	}
	pendingCmd.Flags().String(outputFlag, outputJson, `Output format, "json" or "csv"`)
	userClaimsCmd.Flags().String(outputFlag, outputJson, `Output format, "json" or "csv"`)
	claimCmd.Flags().Bool(dryRunFlag, false, "Sign the claim transaction without sending it")
	watchCmd.Flags().Duration(intervalFlag, defaultWatchInterval, "How often pending claims are recomputed")

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}

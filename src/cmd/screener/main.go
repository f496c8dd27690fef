package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-income-screener/src/marketdata"
	"github.com/jiaming2012/option-income-screener/src/optionmodels"
	"github.com/jiaming2012/option-income-screener/src/report"
	"github.com/jiaming2012/option-income-screener/src/screener"
	"github.com/jiaming2012/option-income-screener/src/store"
	"github.com/jiaming2012/option-income-screener/src/utils"
)

type PutsRunArgs struct {
	Funds              float64
	Results            int
	IncludeNonstandard bool
	Date               string
	ConfigPath         string
}

type CallsRunArgs struct {
	Symbol             string
	IncludeNonstandard bool
	ConfigPath         string
}

type FetchRunArgs struct {
	Symbols    []string
	GoEnv      string
	ConfigPath string
}

func openStore(configPath string) (*optionmodels.ScreenerConfigYAML, *store.Store, error) {
	config, err := utils.LoadScreenerConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("openStore: %w", err)
	}

	if err := utils.SetupLogging(config); err != nil {
		return nil, nil, fmt.Errorf("openStore: %w", err)
	}

	dbPath, err := utils.StockDBPath(config)
	if err != nil {
		return nil, nil, fmt.Errorf("openStore: %w", err)
	}

	chainStore, err := store.NewStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("openStore: %w", err)
	}

	return config, chainStore, nil
}

func RunPuts(args PutsRunArgs) (string, error) {
	_, chainStore, err := openStore(args.ConfigPath)
	if err != nil {
		return "", err
	}

	defer chainStore.Close()

	var customDate *time.Time
	if args.Date != "" {
		date, err := time.Parse("2006-01-02", args.Date)
		if err != nil {
			return "", fmt.Errorf("RunPuts: invalid expiration date %s: %w", args.Date, err)
		}

		customDate = &date
	}

	analyzer := screener.NewAnalyzer(chainStore, args.IncludeNonstandard, customDate)
	s := screener.NewScreener(analyzer, args.Results)

	funds := decimal.NewFromFloat(args.Funds)
	if funds.IsNegative() {
		return "", fmt.Errorf("RunPuts: available funds must not be negative, got %s", funds)
	}

	return report.CreateOptionsReport(funds, s, time.Now())
}

func RunCalls(args CallsRunArgs) (string, error) {
	_, chainStore, err := openStore(args.ConfigPath)
	if err != nil {
		return "", err
	}

	defer chainStore.Close()

	analyzer := screener.NewAnalyzer(chainStore, args.IncludeNonstandard, nil)
	s := screener.NewScreener(analyzer, 0)

	symbol := optionmodels.StockSymbol(strings.ToUpper(args.Symbol))

	return report.CreateCoveredCallsReport(symbol, s, time.Now())
}

func RunFetch(args FetchRunArgs) error {
	config, chainStore, err := openStore(args.ConfigPath)
	if err != nil {
		return err
	}

	defer chainStore.Close()

	if projectsDir := os.Getenv("PROJECTS_DIR"); projectsDir != "" {
		if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
			return fmt.Errorf("RunFetch: error loading environment variables: %w", err)
		}
	}

	token := os.Getenv("TRADIER_BEARER_TOKEN")
	if token == "" {
		return fmt.Errorf("RunFetch: missing TRADIER_BEARER_TOKEN environment variable")
	}

	symbolNames := args.Symbols
	if len(symbolNames) == 0 {
		symbolNames = config.Symbols
	}

	if len(symbolNames) == 0 {
		return fmt.Errorf("RunFetch: no symbols given via --symbols or config")
	}

	symbols := make([]optionmodels.StockSymbol, 0, len(symbolNames))
	for _, name := range symbolNames {
		symbols = append(symbols, optionmodels.StockSymbol(strings.ToUpper(strings.TrimSpace(name))))
	}

	rateLimitDelay := time.Duration(config.MarketData.RateLimitSeconds * float64(time.Second))
	collector := marketdata.NewCollector(config.MarketData.BaseURL, token, rateLimitDelay)

	return collector.Collect(chainStore, symbols, 90, time.Now())
}

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Screen option chains for cash-secured put and covered call income",
}

var putsCmd = &cobra.Command{
	Use:   "puts",
	Short: "Screen cash-secured put candidates against available funds",
	Run: func(cmd *cobra.Command, args []string) {
		funds, err := cmd.Flags().GetFloat64("funds")
		if err != nil {
			log.Fatalf("error getting funds: %v", err)
		}

		results, err := cmd.Flags().GetInt("results")
		if err != nil {
			log.Fatalf("error getting results: %v", err)
		}

		includeNonstandard, err := cmd.Flags().GetBool("include-nonstandard")
		if err != nil {
			log.Fatalf("error getting include-nonstandard: %v", err)
		}

		date, err := cmd.Flags().GetString("date")
		if err != nil {
			log.Fatalf("error getting date: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		output, err := RunPuts(PutsRunArgs{
			Funds:              funds,
			Results:            results,
			IncludeNonstandard: includeNonstandard,
			Date:               date,
			ConfigPath:         configPath,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(output)
	},
}

var callsCmd = &cobra.Command{
	Use:   "calls SYMBOL",
	Short: "Analyze covered calls for one stock symbol",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		includeNonstandard, err := cmd.Flags().GetBool("include-nonstandard")
		if err != nil {
			log.Fatalf("error getting include-nonstandard: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		output, err := RunCalls(CallsRunArgs{
			Symbol:             args[0],
			IncludeNonstandard: includeNonstandard,
			ConfigPath:         configPath,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(output)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect option chains into the local database",
	Run: func(cmd *cobra.Command, args []string) {
		symbols, err := cmd.Flags().GetStringSlice("symbols")
		if err != nil {
			log.Fatalf("error getting symbols: %v", err)
		}

		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if err := RunFetch(FetchRunArgs{
			Symbols:    symbols,
			GoEnv:      goEnv,
			ConfigPath: configPath,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to the screener YAML config.")

	putsCmd.Flags().Float64P("funds", "f", 0, "Available funds for trading.")
	putsCmd.Flags().IntP("results", "r", 10, "Number of top results to display.")
	putsCmd.Flags().Bool("include-nonstandard", false, "Include non-standard options (adjusted for splits/mergers).")
	putsCmd.Flags().StringP("date", "d", "", "Expiration date in YYYY-MM-DD format (default: next Friday).")
	putsCmd.MarkFlagRequired("funds")

	callsCmd.Flags().Bool("include-nonstandard", false, "Include non-standard options (adjusted for splits/mergers).")

	fetchCmd.Flags().StringSlice("symbols", []string{}, "Symbols to collect chains for (default: config symbols).")
	fetchCmd.Flags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.AddCommand(putsCmd, callsCmd, fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

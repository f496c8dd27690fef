package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
	"github.com/jiaming2012/option-income-screener/src/screener"
)

// CreateOptionsReport runs a full puts screening and renders it.
func CreateOptionsReport(availableFunds decimal.Decimal, s *screener.Screener, now time.Time) (string, error) {
	result, err := s.FindBestOptions(availableFunds, now)
	if err != nil {
		log.Errorf("Error generating options report: %v", err)
		return "", fmt.Errorf("CreateOptionsReport: %w", err)
	}

	p := message.NewPrinter(language.English)

	display := &strings.Builder{}
	display.WriteString("\nOptions Analysis Report\n")
	display.WriteString("----------------------\n")
	display.WriteString(fmt.Sprintf("Run ID: %s\n", uuid.New()))
	display.WriteString(p.Sprintf("Available Funds: $%.2f\n", availableFunds.InexactFloat64()))
	display.WriteString(fmt.Sprintf("Timestamp: %s\n", now.Format("2006-01-02 15:04:05")))

	display.WriteString(FormatOptionsTable(result))

	if summary := premiumSummary(result.Puts); summary != "" {
		display.WriteString("\n" + summary + "\n")
	}

	return display.String(), nil
}

// CreateCoveredCallsReport runs the covered call analysis for one
// symbol and renders it, or a clear empty-result message.
func CreateCoveredCallsReport(symbol optionmodels.StockSymbol, s *screener.Screener, now time.Time) (string, error) {
	metrics, err := s.FindCoveredCalls(symbol, now)
	if err != nil {
		log.Errorf("Error generating covered calls report: %v", err)
		return "", fmt.Errorf("CreateCoveredCallsReport: %w", err)
	}

	if len(metrics) == 0 {
		return fmt.Sprintf("\nNo valid options found for %s\n", symbol), nil
	}

	display := &strings.Builder{}
	display.WriteString(fmt.Sprintf("\nCovered Calls Report: %s\n", symbol))
	display.WriteString("----------------------\n")
	display.WriteString(fmt.Sprintf("Timestamp: %s\n\n", now.Format("2006-01-02 15:04:05")))
	display.WriteString(FormatCoveredCallsTable(metrics))

	return display.String(), nil
}

func premiumSummary(puts []optionmodels.OptionMetrics) string {
	if len(puts) == 0 {
		return ""
	}

	premiums := make([]float64, 0, len(puts))
	for _, m := range puts {
		premiums = append(premiums, m.Premiums.InexactFloat64())
	}

	mean, err := stats.Mean(premiums)
	if err != nil {
		return ""
	}

	max, err := stats.Max(premiums)
	if err != nil {
		return ""
	}

	p := message.NewPrinter(language.English)

	return p.Sprintf("Screened %d PUT candidates: mean premium $%.2f, max $%.2f", len(puts), mean, max)
}

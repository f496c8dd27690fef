package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
	"github.com/jiaming2012/option-income-screener/src/screener"
)

// FormatOptionsTable renders the ranked result, PUT section first.
func FormatOptionsTable(result *screener.ScreenResult) string {
	display := &strings.Builder{}

	writeMetricsGroup(display, optionmodels.OptionTypePut, result.Puts)
	writeMetricsGroup(display, optionmodels.OptionTypeCall, result.Calls)

	return display.String()
}

func writeMetricsGroup(display *strings.Builder, optionType optionmodels.OptionType, group []optionmodels.OptionMetrics) {
	if group == nil {
		return
	}

	display.WriteString(fmt.Sprintf("\n%s Options:\n", optionType))

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Symbol", "Expiration", "Type", "Strike", "Contracts", "Premium", "Exercise"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, m := range group {
		table.Append([]string{
			string(m.Symbol),
			truncateExpiration(m.Expiration),
			string(m.OptionType),
			m.Strike.StringFixed(2),
			strconv.FormatInt(m.Contracts, 10),
			m.Premiums.StringFixed(0),
			m.Exercise.StringFixed(0),
		})
	}

	table.Render()
}

// FormatCoveredCallsTable renders the per-expiration covered call rows
// for one symbol.
func FormatCoveredCallsTable(metrics []optionmodels.CoveredCallMetrics) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Expiration", "Strike", "Days", "Premium", "Exercise", "Delta", "Theta", "Annual Return %", "ROI If Called %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, m := range metrics {
		table.Append([]string{
			truncateExpiration(m.Expiration),
			m.Strike.StringFixed(2),
			strconv.FormatInt(m.DaysToExpiry, 10),
			m.Premiums.StringFixed(2),
			m.Exercise.StringFixed(2),
			fmt.Sprintf("%.4f", m.Delta),
			fmt.Sprintf("%.4f", m.Theta),
			m.AnnualReturn.StringFixed(2),
			m.ROIIfCalled().StringFixed(2),
		})
	}

	table.Render()

	return display.String()
}

// truncateExpiration keeps the date part when the source hands back a
// full ISO-8601 timestamp.
func truncateExpiration(expiration string) string {
	if len(expiration) > 10 {
		return expiration[:10]
	}

	return expiration
}

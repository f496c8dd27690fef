package optionmodels

type StockSymbol string

type OptionSymbol string

// IsStandard reports whether the option ticker refers to a standard
// contract. Tickers adjusted for splits or mergers carry a digit in the
// first 6 characters of the root, e.g. "ABC12 250117P00045000".
func (s OptionSymbol) IsStandard() bool {
	root := string(s)
	if len(root) > 6 {
		root = root[:6]
	}

	for _, c := range root {
		if c >= '0' && c <= '9' {
			return false
		}
	}

	return true
}

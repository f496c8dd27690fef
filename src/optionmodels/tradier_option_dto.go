package optionmodels

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GreeksDTO struct {
	Delta float64 `json:"delta"`
	Theta float64 `json:"theta"`
}

// TradierOptionDTO is a single contract row from the Tradier option
// chains endpoint.
type TradierOptionDTO struct {
	Symbol         string    `json:"symbol"`
	Description    string    `json:"description"`
	Underlying     string    `json:"underlying"`
	Strike         float64   `json:"strike"`
	Bid            float64   `json:"bid"`
	Ask            float64   `json:"ask"`
	OptionType     string    `json:"option_type"`
	ExpirationDate string    `json:"expiration_date"`
	OpenInterest   int64     `json:"open_interest"`
	Volume         int64     `json:"volume"`
	Greeks         GreeksDTO `json:"greeks"`
}

func (dto *TradierOptionDTO) ConvertToOptionRecord(underlyingPrice float64, now time.Time) (*OptionRecord, error) {
	var optionType OptionType
	switch strings.ToLower(dto.OptionType) {
	case "put":
		optionType = OptionTypePut
	case "call":
		optionType = OptionTypeCall
	default:
		return nil, fmt.Errorf("TradierOptionDTO: ConvertToOptionRecord: invalid option type: %s", dto.OptionType)
	}

	expiration, err := time.Parse("2006-01-02", dto.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("TradierOptionDTO: ConvertToOptionRecord: failed to parse expiration date %s: %w", dto.ExpirationDate, err)
	}

	daysToExpiration := int64(expiration.Sub(now.Truncate(24*time.Hour)).Hours() / 24)

	strike := decimal.NewFromFloat(dto.Strike)
	bid := decimal.NewFromFloat(dto.Bid)
	ask := decimal.NewFromFloat(dto.Ask)
	underlying := decimal.NewFromFloat(underlyingPrice)

	var intrinsic decimal.Decimal
	if optionType == OptionTypePut {
		intrinsic = strike.Sub(underlying)
	} else {
		intrinsic = underlying.Sub(strike)
	}
	if intrinsic.IsNegative() {
		intrinsic = decimal.Zero
	}

	record := &OptionRecord{
		Symbol:           StockSymbol(dto.Underlying),
		OptionSymbol:     OptionSymbol(dto.Symbol),
		PutCall:          optionType,
		Strike:           strike,
		Bid:              bid,
		Ask:              ask,
		Mark:             bid.Add(ask).Div(decimal.NewFromInt(2)),
		UnderlyingPrice:  underlying,
		IntrinsicValue:   intrinsic,
		ExpirationDate:   dto.ExpirationDate,
		DaysToExpiration: daysToExpiration,
		OpenInterest:     dto.OpenInterest,
		TotalVolume:      dto.Volume,
		Delta:            dto.Greeks.Delta,
		Theta:            dto.Greeks.Theta,
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("TradierOptionDTO: ConvertToOptionRecord: %w", err)
	}

	return record, nil
}

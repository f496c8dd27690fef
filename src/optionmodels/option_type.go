package optionmodels

import "fmt"

type OptionType string

const (
	OptionTypePut  OptionType = "PUT"
	OptionTypeCall OptionType = "CALL"
)

func (o OptionType) Validate() error {
	if o != OptionTypePut && o != OptionTypeCall {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

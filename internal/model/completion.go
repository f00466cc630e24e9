package model

import "errors"

var (
	ErrTemperatureOutOfRange = errors.New("temperature out of range [0, 2]")
	ErrMaxTokensNotPositive  = errors.New("max tokens must be positive")
	ErrModelNotSet           = errors.New("model not set")
)

type CompletionOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

func (o CompletionOptions) Validate() error {
	if o.Model == "" {
		return ErrModelNotSet
	}
	if o.Temperature < 0 || o.Temperature > 2 {
		return ErrTemperatureOutOfRange
	}
	if o.MaxTokens <= 0 {
		return ErrMaxTokensNotPositive
	}
	return nil
}

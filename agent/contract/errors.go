package contract

import "errors"

var (
	ErrModelInvoke            = errors.New("model invoke failed")
	ErrToolInvoke             = errors.New("tool invoke failed")
	ErrFormatting             = errors.New("response formatting failed")
	ErrValidation             = errors.New("validation failed")
	ErrInvalidMessage         = errors.New("message is empty")
	ErrMaxTurnsExceeded       = errors.New("max turns exceeded")
	ErrUnknownResumptionToken = errors.New("unknown resumption token")
)

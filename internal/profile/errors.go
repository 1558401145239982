package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCombination is returned when no deployment rule exists
	// for a device class / deployment mode pair.
	ErrUnsupportedCombination = errors.New("unsupported device class and deployment mode combination")

	// ErrInvalidLocale is returned when the language setting is neither the
	// os-default sentinel nor a known culture name.
	ErrInvalidLocale = errors.New("unknown locale")

	// Device name template failures, checked in this order.
	ErrTemplateTooLong      = errors.New("device name template is longer than 15 characters")
	ErrTemplateAllDigits    = errors.New("device name template cannot consist only of digits")
	ErrTemplateWhitespace   = errors.New("device name template cannot contain whitespace")
	ErrTemplateInvalidChars = errors.New("device name template contains invalid characters")
)

// ValidationError reports a field whose value is fixed for the requested
// device class and deployment mode but was supplied with something else. It
// carries enough context to correct the configuration row without reading
// code.
type ValidationError struct {
	Field          string
	Actual         string
	Required       string
	DeviceClass    DeviceClass
	DeploymentMode DeploymentMode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be %s for %s/%s profiles, got %s",
		e.Field, e.Required, e.DeviceClass, e.DeploymentMode, e.Actual)
}

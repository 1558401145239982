package profile

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTemplateLength = 15

var (
	allDigitsRegex     = regexp.MustCompile(`^[0-9]+$`)
	whitespaceRegex    = regexp.MustCompile(`\s`)
	allowedCharsRegex  = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	serialMacroLiteral = "%SERIAL%"
	randMacroRegex     = regexp.MustCompile(`%RAND:[0-9]+%`)
)

// validateTemplate checks a non-empty device name template. The checks run
// in a fixed order against the raw string; macro tokens do not exempt a
// template from the whitespace check, so "NA %SERIAL%" is rejected even
// though the macro itself is valid.
func validateTemplate(template string) error {
	if len(template) > maxTemplateLength {
		return fmt.Errorf("%w: %q is %d characters", ErrTemplateTooLong, template, len(template))
	}
	if allDigitsRegex.MatchString(template) {
		return fmt.Errorf("%w: %q", ErrTemplateAllDigits, template)
	}
	if whitespaceRegex.MatchString(template) {
		return fmt.Errorf("%w: %q", ErrTemplateWhitespace, template)
	}
	if !allowedCharsRegex.MatchString(template) &&
		!containsMacro(template) {
		return fmt.Errorf("%w: %q (letters, digits, hyphens, %%SERIAL%% and %%RAND:n%% are allowed)", ErrTemplateInvalidChars, template)
	}
	return nil
}

func containsMacro(template string) bool {
	return strings.Contains(template, serialMacroLiteral) || randMacroRegex.MatchString(template)
}

package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{"plain name", "ABC-123", nil},
		{"serial macro", "HOLO%SERIAL%", nil},
		{"rand macro", "PC-%RAND:4%", nil},
		{"max length", "ABCDEFGHIJKLMNO", nil},
		{"too long", "ABCDEFGHIJKLMNOP", ErrTemplateTooLong},
		{"macros do not exempt length", "DESKTOP-%SERIAL%", ErrTemplateTooLong},
		{"all digits", "12345", ErrTemplateAllDigits},
		{"whitespace", "NA %SERIAL%", ErrTemplateWhitespace},
		{"tab", "NA\t01", ErrTemplateWhitespace},
		{"underscore", "PC_01", ErrTemplateInvalidChars},
		{"unknown macro", "PC-%MAC%", ErrTemplateInvalidChars},
		{"rand without count", "PC-%RAND:%", ErrTemplateInvalidChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTemplate(tt.template)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

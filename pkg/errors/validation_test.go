package errors

import (
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "go", false},
		{"with punctuation", "lang.go-1_2", false},
		{"unicode", "日本語", false},
		{"max length", strings.Repeat("a", 256), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"control char", "go\x00lang", true},
		{"newline", "go\nlang", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItems) {
				t.Errorf("error code = %q, want INVALID_ITEMS", GetCode(err))
			}
		})
	}
}

func TestValidateCloudName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "languages", false},
		{"with spaces", "my cloud 2026", false},
		{"max length", strings.Repeat("n", 128), false},
		{"empty", "", true},
		{"too long", strings.Repeat("n", 129), true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control char", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCloudName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCloudName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error code = %q, want INVALID_NAME", GetCode(err))
			}
		})
	}
}

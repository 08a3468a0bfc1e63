package skill

import (
	"strings"
	"testing"
)

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name      string
		manifest  Manifest
		expected  string
		wantField string
	}{
		{
			name:     "valid",
			manifest: Manifest{Name: "gemini-ui", Description: "does things"},
			expected: "gemini-ui",
		},
		{
			name:     "no expected name skips match",
			manifest: Manifest{Name: "other", Description: "does things"},
		},
		{
			name:      "missing name",
			manifest:  Manifest{Description: "does things"},
			expected:  "gemini-ui",
			wantField: "name",
		},
		{
			name:      "uppercase name",
			manifest:  Manifest{Name: "Gemini-UI", Description: "does things"},
			wantField: "name",
		},
		{
			name:      "double hyphen",
			manifest:  Manifest{Name: "gemini--ui", Description: "does things"},
			wantField: "name",
		},
		{
			name:      "too long name",
			manifest:  Manifest{Name: strings.Repeat("a", maxNameLength+1), Description: "does things"},
			wantField: "name",
		},
		{
			name:      "name mismatch",
			manifest:  Manifest{Name: "gemini-ux", Description: "does things"},
			expected:  "gemini-ui",
			wantField: "name",
		},
		{
			name:      "blank description",
			manifest:  Manifest{Name: "gemini-ui", Description: "   "},
			expected:  "gemini-ui",
			wantField: "description",
		},
		{
			name:      "long description",
			manifest:  Manifest{Name: "gemini-ui", Description: strings.Repeat("x", maxDescriptionLength+1)},
			expected:  "gemini-ui",
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.manifest.Validate(tt.expected)
			if tt.wantField == "" {
				if result.HasErrors() {
					t.Fatalf("Validate() unexpected errors: %v", result)
				}
				return
			}
			if !result.HasErrors() {
				t.Fatalf("Validate() expected error on %q", tt.wantField)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", result.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidationResult_Error(t *testing.T) {
	r := &ValidationResult{}
	if r.Error() != "" {
		t.Errorf("empty result Error() = %q, want empty", r.Error())
	}

	r.Add("name", "is required")
	r.Add("", "bare message")
	msg := r.Error()
	if !strings.Contains(msg, "2 error(s)") {
		t.Errorf("Error() = %q, want error count", msg)
	}
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "bare message") {
		t.Errorf("Error() = %q, missing messages", msg)
	}
}

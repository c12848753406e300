package roster

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantClients  []string
		wantInternal []string
	}{
		{
			name:         "both sides",
			raw:          "Alice (Client)\nBob (iFoundries)",
			wantClients:  []string{"Alice"},
			wantInternal: []string{"Bob"},
		},
		{
			name:         "untagged lines dropped from lists",
			raw:          "Alice (Client)\nsomeone else\nCara (Client)",
			wantClients:  []string{"Alice", "Cara"},
			wantInternal: nil,
		},
		{
			name:         "empty input",
			raw:          "",
			wantClients:  nil,
			wantInternal: nil,
		},
		{
			name:         "tag only line dropped",
			raw:          "(Client)\nDan (iFoundries)",
			wantClients:  nil,
			wantInternal: []string{"Dan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.raw)
			if r.Raw != tt.raw {
				t.Errorf("Raw = %q, want unchanged input", r.Raw)
			}
			if !reflect.DeepEqual(r.Clients, tt.wantClients) {
				t.Errorf("Clients = %v, want %v", r.Clients, tt.wantClients)
			}
			if !reflect.DeepEqual(r.Internal, tt.wantInternal) {
				t.Errorf("Internal = %v, want %v", r.Internal, tt.wantInternal)
			}
		})
	}
}

func TestRepsFormatting(t *testing.T) {
	r := Parse("Alice (Client)\nCara (Client)\nBob (iFoundries)\nDan (iFoundries)")

	if got := r.ClientReps(); got != "Alice\nCara" {
		t.Errorf("ClientReps() = %q", got)
	}
	if got := r.InternalReps(); got != "Bob, Dan" {
		t.Errorf("InternalReps() = %q", got)
	}
}

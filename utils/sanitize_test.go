package utils

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PVR Forum", "PVR_Forum"},
		{"INOX: Nehru Place/Delhi", "INOX__Nehru_Place_Delhi"},
		{"Café Ciné", "Cafe_Cine"},
		{"  Screen-1.v2 ", "Screen-1.v2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestASCIIFold(t *testing.T) {
	if got := ASCIIFold("Ñandú"); got != "Nandu" {
		t.Errorf("ASCIIFold = %q", got)
	}
}

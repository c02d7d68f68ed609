package statistics

import "testing"

func TestColorFor(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"", "hsl(0, 70%, 50%)"},
		{"a", "hsl(97, 70%, 50%)"},
		{"Comida", "hsl(229, 70%, 50%)"},
		{"Ingreso", "hsl(337, 70%, 50%)"},
		{"Sueldo", "hsl(116, 70%, 50%)"},
		{"Freelance", "hsl(319, 70%, 50%)"},
		{"Educación", "hsl(339, 70%, 50%)"},
		{"Entretenimiento", "hsl(122, 70%, 50%)"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ColorFor(tt.label); got != tt.expected {
				t.Errorf("ColorFor(%q) = %s, expected %s", tt.label, got, tt.expected)
			}
		})
	}
}

func TestColorFor_Stable(t *testing.T) {
	first := ColorFor("Transporte")
	for i := 0; i < 10; i++ {
		if got := ColorFor("Transporte"); got != first {
			t.Fatalf("expected stable color %s, got %s", first, got)
		}
	}
}

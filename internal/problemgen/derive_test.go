package problemgen

import "testing"

func TestDeriveAnswer(t *testing.T) {
	tests := []struct {
		question string
		want     string
		ok       bool
	}{
		{"Calcula: 450 + 30", "480", true},
		{"¿Cuánto es 900 - 250?", "650", true},
		{"Calcula: 12 x 11", "132", true},
		{"25 × 4 =", "100", true},
		{"Calcula: 4500 : 90", "50", true},
		{"4.500 ÷ 90", "50", true},
		{"Calcula: 100 : 7", "", false},
		{"Calcula: 10 : 0", "", false},
		{"El doble de 145", "290", true},
		{"¿Cuál es la mitad de 860?", "430", true},
		{"La mitad de 15", "", false},
		{"¿Cuánto es el 25% de 80?", "20", true},
		{"El 50 % de 31", "", false},
		{"Escribe todos los divisores de 24", "1, 2, 3, 4, 6, 8, 12, 24", true},
		{"Escribe los múltiplos de 8 que hay entre 30 y 70", "32, 40, 48, 56, 64", true},
		{"Escribe los múltiplos de 7 que hay entre 1 y 6", "", false},
		{"¿Es 72 múltiplo de 8?", "Sí", true},
		{"¿Es 70 múltiplo de 8?", "No", true},
		{"¿Es 6 divisor de 45?", "No", true},
		{"¿Es el 9 un divisor de 81?", "Sí", true},
		{"Un astronauta tiene 3 cohetes con 12 motores. ¿Cuántos motores hay?", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := DeriveAnswer(tt.question)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DeriveAnswer(%q) = (%q, %v), want (%q, %v)", tt.question, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizeQuestion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Calcula: 450 + 30", "450 + 30"},
		{"¿Cuánto es  12 x 3?", "12 x 3"},
		{"25 x 4 =", "25 x 4"},
		{"La mitad de 860.", "la mitad de 860"},
	}
	for _, tt := range tests {
		if got := normalizeQuestion(tt.in); got != tt.want {
			t.Errorf("normalizeQuestion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package paymentmethod

import "testing"

func TestRequiresReference(t *testing.T) {
	for _, m := range All {
		t.Run(m.Name, func(t *testing.T) {
			want := m != Methods.Cash
			if got := m.RequiresReference(); got != want {
				t.Errorf("RequiresReference() = %v, want %v", got, want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Method
	}{
		{name: "upper", input: "CARD", want: &Methods.Card},
		{name: "lower", input: "mobile_payment", want: &Methods.MobilePayment},
		{name: "unknown", input: "CHEQUE", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByName(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ByName(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ByName(%q) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

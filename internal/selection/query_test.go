package selection

import (
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"empty", State{}, ""},
		{"skips empty categories", State{"material": {}, "category": {"rings"}}, "category=rings"},
		{
			"sorted keys and comma-joined values",
			State{"material": {"gold", "silver"}, "category": {"rings"}},
			"category=rings&material=gold%2Csilver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.state); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want State
	}{
		{"empty", "", State{}},
		{"leading question mark", "?material=gold", State{"material": {"gold"}}},
		{"escaped commas", "material=gold%2Csilver", State{"material": {"gold", "silver"}}},
		{"literal commas and spaces", "material=gold, silver ,", State{"material": {"gold", "silver"}}},
		{"repeated params merge", "material=gold&material=silver,gold", State{"material": {"gold", "silver"}}},
		{"blank value", "material=", State{"material": {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode_InvalidEscape(t *testing.T) {
	if _, err := Decode("material=%zz"); err == nil {
		t.Fatal("expected error for bad escape")
	}
}

func TestEncodeDecode_PreservesSelectionOrder(t *testing.T) {
	in := State{"material": {"silver", "gold"}, "priceRange": {"100-500"}}

	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("got %v, want %v", out, in)
	}
}

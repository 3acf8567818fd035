package bigfield

import (
	"testing"

	airfield "github.com/vybium/airvm/internal/airvm/field"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		literal string
		want    airfield.Base
		wantErr bool
	}{
		{name: "small literal", literal: "8", want: airfield.NewBase(8)},
		{name: "zero", literal: "0", want: airfield.ZeroBase},
		{
			name:    "literal wider than 64 bits reduces mod p",
			literal: "36893488147419103231", // 2^65 - 1
			want:    airfield.NewBase(36893488147419103231 % airfield.Modulus),
		},
		{name: "malformed literal", literal: "not-a-number", wantErr: true},
		{name: "negative literal rejected", literal: "-1", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.literal)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got nil", tc.literal)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.literal, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.literal, got, tc.want)
			}
		})
	}
}

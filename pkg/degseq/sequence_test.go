package degseq

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Sequence
		wantErr bool
	}{
		{"3,3,2,2,1,1", Sequence{3, 3, 2, 2, 1, 1}, false},
		{"3 3 2 2 1 1", Sequence{3, 3, 2, 2, 1, 1}, false},
		{"[3, 3, 2]", Sequence{3, 3, 2}, false},
		{"", Sequence{}, false},
		{"2,-1", Sequence{2, -1}, false},
		{"2,x", nil, true},
		{"2,,1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSequence_Validate(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		want error
	}{
		{"sorted", Sequence{3, 2, 2, 1}, nil},
		{"empty", Sequence{}, nil},
		{"zeros", Sequence{0, 0}, nil},
		{"ascending", Sequence{1, 2}, ErrUnsorted},
		{"dip then rise", Sequence{3, 1, 2}, ErrUnsorted},
		{"negative", Sequence{1, -1}, ErrNegativeDegree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seq.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSequence_IsGraphical(t *testing.T) {
	tests := []struct {
		seq  Sequence
		want bool
	}{
		{Sequence{}, true},
		{Sequence{0}, true},
		{Sequence{1, 1}, true},
		{Sequence{2, 2, 2}, true},
		{Sequence{3, 3, 2, 2, 1, 1}, true},
		{Sequence{1}, false},
		{Sequence{3, 1}, false},
		{Sequence{3, 3, 1, 1}, false},
		{Sequence{4, 4, 4, 1, 1}, false},
		{Sequence{3, 3, 3, 3}, true},
	}
	for _, tt := range tests {
		if got := tt.seq.IsGraphical(); got != tt.want {
			t.Errorf("%v.IsGraphical() = %v, want %v", tt.seq, got, tt.want)
		}
	}
}

func TestSequence_String(t *testing.T) {
	s := Sequence{3, 2, 2}
	if s.String() != "3,2,2" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Orbits().String() != "[0|1,2]" {
		t.Errorf("Orbits() = %s", s.Orbits())
	}
	if s.Sum() != 7 {
		t.Errorf("Sum() = %d, want 7", s.Sum())
	}
}

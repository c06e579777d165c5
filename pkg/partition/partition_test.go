package partition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromDegrees(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want string
	}{
		{"empty", nil, "[]"},
		{"single", []int{0}, "[0]"},
		{"regular", []int{2, 2, 2}, "[0,1,2]"},
		{"mixed", []int{3, 2, 2, 1, 1, 1}, "[0|1,2|3,4,5]"},
		{"all distinct", []int{4, 3, 2}, "[0|1|2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDegrees(tt.seq).String(); got != tt.want {
				t.Errorf("FromDegrees(%v) = %s, want %s", tt.seq, got, tt.want)
			}
		})
	}
}

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Partition
		n       int
		wantErr bool
	}{
		{"unit", Unit(4), 4, false},
		{"discrete", Discrete(3), 3, false},
		{"missing vertex", New([]int{0, 1}, []int{3}), 4, true},
		{"repeated vertex", New([]int{0, 1}, []int{1, 2}), 3, true},
		{"out of range", New([]int{0, 5}), 2, true},
		{"empty on empty", Partition{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNotAPartition) {
				t.Errorf("expected ErrNotAPartition, got %v", err)
			}
		})
	}
}

func TestPartition_PopIsLocal(t *testing.T) {
	p := New([]int{4, 2, 3}, []int{0, 1})
	q := p.Clone()

	v, ok := q.Pop(0)
	if !ok || v != 2 {
		t.Fatalf("Pop(0) = %d, %v; want 2, true", v, ok)
	}
	if diff := cmp.Diff([]int{3, 4}, q.Cell(0)); diff != "" {
		t.Errorf("cell after pop mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3, 4}, p.Cell(0)); diff != "" {
		t.Errorf("original modified (-want +got):\n%s", diff)
	}

	q.Pop(0)
	q.Pop(0)
	if _, ok := q.Pop(0); ok {
		t.Error("Pop on an empty cell should report false")
	}
	if q.First(0) != -1 {
		t.Errorf("First of empty cell = %d, want -1", q.First(0))
	}
}

func TestPartition_Accessors(t *testing.T) {
	var p Partition
	p.AddSingletonCell(3)
	p.AddSingletonCell(0)
	p.AddToCell(1, 2)
	p.AddToCell(1, 1)
	p.AddToCell(1, 2)

	if got := p.String(); got != "[3|0,1,2]" {
		t.Errorf("String() = %s, want [3|0,1,2]", got)
	}
	if p.Size() != 2 || p.Order() != 4 {
		t.Errorf("Size, Order = %d, %d; want 2, 4", p.Size(), p.Order())
	}
	if p.CellOf(2) != 1 || p.CellOf(3) != 0 || p.CellOf(9) != -1 {
		t.Error("CellOf returned wrong cell")
	}
	if p.IsDiscrete() || !Discrete(2).IsDiscrete() {
		t.Error("IsDiscrete misreported")
	}
	if !p.Equal(p.Clone()) || p.Equal(Unit(4)) {
		t.Error("Equal misreported")
	}
}

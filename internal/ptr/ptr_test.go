package ptr_test

import (
	"testing"

	"github.com/myrjola/fitplanner/internal/ptr"
)

func TestRef(t *testing.T) {
	score := 42.5
	p := ptr.Ref(score)
	score = 0
	if *p != 42.5 {
		t.Errorf("Ref() = %v, want a copy holding 42.5", *p)
	}
}

func TestDeref(t *testing.T) {
	tests := []struct {
		name string
		p    *float64
		want float64
	}{
		{name: "nil uses fallback", p: nil, want: 50},
		{name: "zero is kept", p: ptr.Ref(0.0), want: 0},
		{name: "value", p: ptr.Ref(87.0), want: 87},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ptr.Deref(tt.p, 50); got != tt.want {
				t.Errorf("Deref() = %v, want %v", got, tt.want)
			}
		})
	}
}

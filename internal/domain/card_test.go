package domain

import "testing"

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b Rank
		want bool
	}{
		{name: "one above", a: Five, b: Four, want: true},
		{name: "one below", a: Three, b: Four, want: true},
		{name: "king on ace wraps", a: King, b: Ace, want: true},
		{name: "ace on king wraps", a: Ace, b: King, want: true},
		{name: "same rank", a: Seven, b: Seven, want: false},
		{name: "two apart", a: Nine, b: Jack, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjacent(tt.a, tt.b); got != tt.want {
				t.Fatalf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCanPlayOn(t *testing.T) {
	wild := &Card{Kind: Wild}
	queen := &Card{Rank: Queen}
	jack := &Card{Rank: Jack}

	if !jack.CanPlayOn(queen) {
		t.Fatalf("jack should play on queen")
	}
	if !queen.CanPlayOn(wild) {
		t.Fatalf("any card should play on a wild top")
	}
	if wild.CanPlayOn(queen) {
		t.Fatalf("a wild board card only matches a wild top")
	}
	if jack.CanPlayOn(nil) {
		t.Fatalf("nothing plays on an empty waste")
	}
}

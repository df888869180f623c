package geom

import "testing"

func TestVec2_Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, 2)

	if got := a.Add(b); got != V2(4, 6) {
		t.Errorf("Add = %v, want {4 6}", got)
	}
	if got := a.Sub(b); got != V2(2, 2) {
		t.Errorf("Sub = %v, want {2 2}", got)
	}
	if got := a.Mul(b); got != V2(3, 8) {
		t.Errorf("Mul = %v, want {3 8}", got)
	}
}

func TestSize_Empty(t *testing.T) {
	tests := []struct {
		name string
		size Sizei
		want bool
	}{
		{"zero", Sizei{}, true},
		{"zero width", Sizei{0, 10}, true},
		{"negative height", Sizei{10, -1}, true},
		{"regular", Sizei{640, 480}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.size.Empty(); got != tt.want {
				t.Errorf("%v.Empty() = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	outer := RectFromSize(V2(0, 0), Sizei{100, 50})

	tests := []struct {
		name  string
		inner Recti
		want  bool
	}{
		{"same", outer, true},
		{"inside", RectFromSize(V2(10, 10), Sizei{20, 20}), true},
		{"overflow right", RectFromSize(V2(90, 0), Sizei{20, 10}), false},
		{"overflow bottom", RectFromSize(V2(0, 45), Sizei{10, 10}), false},
		{"negative origin", RectFromSize(V2(-1, 0), Sizei{10, 10}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

package viewport

import "testing"

func TestDefaultMargins(t *testing.T) {
	m := DefaultMargins()
	if m.Top != 2 || m.Bottom != 2 || m.Left != 4 || m.Right != 4 {
		t.Errorf("DefaultMargins = %+v", m)
	}
	if NoMargins() != (MarginConfig{}) {
		t.Error("NoMargins should return all zeros")
	}
}

func TestEffectiveMarginsClamped(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		set           MarginConfig
		want          MarginConfig
	}{
		{"fits", 80, 24, MarginConfig{Top: 3, Bottom: 4, Left: 5, Right: 6}, MarginConfig{Top: 3, Bottom: 4, Left: 5, Right: 6}},
		{"small view", 9, 6, MarginConfig{Top: 5, Bottom: 5, Left: 10, Right: 10}, MarginConfig{Top: 2, Bottom: 2, Left: 3, Right: 3}},
		{"negative", 80, 24, MarginConfig{Top: -1, Left: -2}, MarginConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.width, tt.height)
			v.SetMargins(tt.set)
			if got := v.EffectiveMargins(); got != tt.want {
				t.Errorf("EffectiveMargins = %+v, want %+v", got, tt.want)
			}
		})
	}
}

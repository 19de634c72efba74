package domain

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"zone", ModeZone, false},
		{"breath", ModeBreath, false},
		{"drift", ModeDrift, false},
		{"nap", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMode_LimitMinutes(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{ModeZone, 180},
		{ModeBreath, 30},
		{ModeDrift, 90},
	}

	for _, tt := range tests {
		if got := tt.mode.LimitMinutes(); got != tt.want {
			t.Errorf("%v.LimitMinutes() = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestMode_Label(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeZone, "Zone"},
		{ModeBreath, "Breath"},
		{ModeDrift, "Drift"},
		{Mode("nap"), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestMode_IsRest(t *testing.T) {
	if ModeZone.IsRest() {
		t.Error("zone is not a rest")
	}
	if !ModeBreath.IsRest() || !ModeDrift.IsRest() {
		t.Error("breath and drift are rests")
	}
}

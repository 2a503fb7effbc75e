package theme

import "testing"

func TestInitializeEmptyDisables(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize(\"\") = %v", err)
	}
	if IsEnabled() || Current() != nil || Name() != "" {
		t.Error("empty theme name should disable theming")
	}
	if got := ColorToString(DesktopBg()); got != "#008080" {
		t.Errorf("fallback desktop background = %s, want #008080", got)
	}
}

func TestInitializeUnknownFallsBack(t *testing.T) {
	defer Initialize("")

	if err := Initialize("definitely-not-a-theme"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
	if !IsEnabled() || Name() != "default" {
		t.Errorf("unknown theme: enabled=%v name=%q", IsEnabled(), Name())
	}
	if Current() == nil {
		t.Error("Current() is nil with theming enabled")
	}
}

func TestColorToString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"black", "#000000", "#000000"},
		{"teal", "#008080", "#008080"},
		{"white", "#ffffff", "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorToString(pick(tt.in, nil)); got != tt.want {
				t.Errorf("ColorToString(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
}

package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{" warn ", false},
		{"error", false},
		{"", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if err == nil && logger == nil {
				t.Error("expected logger")
			}
		})
	}
}

func TestNewLevelEnabled(t *testing.T) {
	logger, err := New("warn")
	if err != nil {
		t.Fatal(err)
	}
	core := logger.Desugar().Core()
	if core.Enabled(-1) {
		t.Error("debug should be disabled at warn level")
	}
	if !core.Enabled(1) {
		t.Error("warn should be enabled")
	}
}

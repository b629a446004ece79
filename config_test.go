package lz77

import (
	"errors"
	"testing"
)

func TestConfigVerify(t *testing.T) {
	tests := []struct {
		cfg Config
		ok  bool
	}{
		{DefaultConfig(), true},
		{Config{WindowSize: 1, MinMatch: 1}, true},
		{Config{WindowSize: MaxWindowSize, MinMatch: 3, MaxMatch: 3}, true},
		{Config{WindowSize: 0, MinMatch: 3}, false},
		{Config{WindowSize: -1, MinMatch: 3}, false},
		{Config{WindowSize: MaxWindowSize + 1, MinMatch: 3}, false},
		{Config{WindowSize: 4096, MinMatch: 0}, false},
		{Config{WindowSize: 4096, MinMatch: 3, MaxMatch: 2}, false},
		{Config{WindowSize: 4096, MinMatch: 3, MaxChain: -1}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Verify()
		if tt.ok && err != nil {
			t.Errorf("%+v: unexpected error %v", tt.cfg, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%+v: expected ErrInvalidConfig, got %v", tt.cfg, err)
		}
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want %+v", cfg, DefaultConfig())
	}

	cfg = Config{WindowSize: 100, MinMatch: 5, MaxMatch: 9}
	cfg.ApplyDefaults()
	if cfg != (Config{WindowSize: 100, MinMatch: 5, MaxMatch: 9}) {
		t.Fatalf("ApplyDefaults changed explicit values: %+v", cfg)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{WindowSize: -5})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEncodePanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Encode did not panic")
		}
	}()
	Encode(nil, []byte("data"), Config{MinMatch: -1})
}

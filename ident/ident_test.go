// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := ShortID("m")
		if err != nil {
			t.Fatalf("ShortID() error = %v", err)
		}
		if !strings.HasPrefix(id, "m") {
			t.Errorf("ShortID() = %q, want prefix m", id)
		}
		if len(id) < 2 || len(id) > 12 {
			t.Errorf("ShortID() length = %d, want 2..12", len(id))
		}
		if seen[id] {
			t.Errorf("ShortID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestBase62Encode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"zero", []byte{0}, "0"},
		{"one", []byte{1}, "1"},
		{"sixty-one", []byte{61}, "Z"},
		{"sixty-two", []byte{62}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base62Encode(tt.data); got != tt.want {
				t.Errorf("base62Encode(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("10.0.0.1", "salt")
	h2 := HashIP("10.0.0.1", "salt")
	if h1 != h2 {
		t.Error("HashIP() is not deterministic")
	}
	if len(h1) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(h1))
	}
	if HashIP("10.0.0.2", "salt") == h1 {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("10.0.0.1", "other") == h1 {
		t.Error("HashIP() produced same hash for different salts")
	}
}

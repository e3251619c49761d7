package passgen

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate_LengthAndCount(t *testing.T) {
	pws, err := Generate(Options{Length: 20, Count: 3, Lower: true, Digits: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(pws) != 3 {
		t.Fatalf("count = %d, want 3", len(pws))
	}
	for _, pw := range pws {
		if len(pw.Value) != 20 {
			t.Fatalf("length = %d, want 20", len(pw.Value))
		}
		for _, r := range pw.Value {
			if !strings.ContainsRune(lower+digits, r) {
				t.Fatalf("character %q outside selected classes in %q", r, pw.Value)
			}
		}
	}
}

func TestGenerate_Clamps(t *testing.T) {
	pws, err := Generate(Options{Length: 2, Count: 99, Lower: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(pws) != MaxCount {
		t.Fatalf("count = %d, want clamped to %d", len(pws), MaxCount)
	}
	if len(pws[0].Value) != MinLength {
		t.Fatalf("length = %d, want clamped to %d", len(pws[0].Value), MinLength)
	}
}

func TestGenerate_NoCharset(t *testing.T) {
	if _, err := Generate(Options{Length: 16, Count: 1}); !errors.Is(err, ErrNoCharset) {
		t.Fatalf("expected ErrNoCharset, got %v", err)
	}
}

func TestGenerate_Unique(t *testing.T) {
	pws, err := Generate(Options{Length: 32, Count: 5, Upper: true, Lower: true, Digits: true, Special: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	seen := make(map[string]bool)
	for _, pw := range pws {
		if seen[pw.Value] {
			t.Fatalf("duplicate password generated: %q", pw.Value)
		}
		seen[pw.Value] = true
	}
}

func TestStrengthLabel(t *testing.T) {
	cases := map[float64]string{
		30:   "Weak",
		49.9: "Weak",
		60:   "Medium",
		90:   "Strong",
		120:  "Very Strong",
	}
	for entropy, want := range cases {
		if got := strengthLabel(entropy); got != want {
			t.Fatalf("strengthLabel(%v) = %q, want %q", entropy, got, want)
		}
	}
}

func TestGenerate_EntropyEstimate(t *testing.T) {
	// 16 chars over the 26-letter class: 16*log2(26) ~= 75.2 bits. A
	// rounded-up 5 bits/char would give 80 and wrongly promote to Strong.
	pws, err := Generate(Options{Length: 16, Count: 1, Lower: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	got := pws[0].EntropyBits
	if got < 75.2 || got > 75.3 {
		t.Fatalf("entropy = %v, want ~75.21", got)
	}
	if pws[0].Strength != "Medium" {
		t.Fatalf("strength = %q, want Medium", pws[0].Strength)
	}
}

// Package passgen generates random passwords with a CSPRNG and estimates
// their strength.
package passgen

import (
	"crypto/rand"
	"errors"
	"math"
	"math/big"
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	special = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	MinLength = 8
	MaxLength = 128
	MaxCount  = 10
)

// ErrNoCharset is returned when every character class is disabled.
var ErrNoCharset = errors.New("at least one character type must be selected")

// Options selects the character classes and output shape. Length is clamped
// to MinLength..MaxLength and Count to 1..MaxCount rather than rejected.
type Options struct {
	Length  int
	Count   int
	Upper   bool
	Lower   bool
	Digits  bool
	Special bool
}

// Password is one generated value with its strength estimate.
type Password struct {
	Value       string
	EntropyBits float64
	Strength    string
}

func charset(o Options) string {
	var cs string
	if o.Upper {
		cs += upper
	}
	if o.Lower {
		cs += lower
	}
	if o.Digits {
		cs += digits
	}
	if o.Special {
		cs += special
	}
	return cs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// strengthLabel maps an entropy estimate to the displayed label.
func strengthLabel(entropy float64) string {
	switch {
	case entropy < 50:
		return "Weak"
	case entropy < 80:
		return "Medium"
	case entropy < 100:
		return "Strong"
	default:
		return "Very Strong"
	}
}

// Generate produces Count passwords of Length characters from the selected
// classes.
func Generate(o Options) ([]Password, error) {
	cs := charset(o)
	if cs == "" {
		return nil, ErrNoCharset
	}
	length := clamp(o.Length, MinLength, MaxLength)
	count := clamp(o.Count, 1, MaxCount)

	// exact log2(charset) per character; rounding up would overstate the
	// estimate and can cross a strength threshold
	entropy := float64(length) * math.Log2(float64(len(cs)))
	max := big.NewInt(int64(len(cs)))

	out := make([]Password, 0, count)
	for i := 0; i < count; i++ {
		buf := make([]byte, length)
		for j := range buf {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return nil, err
			}
			buf[j] = cs[n.Int64()]
		}
		out = append(out, Password{
			Value:       string(buf),
			EntropyBits: entropy,
			Strength:    strengthLabel(entropy),
		})
	}
	return out, nil
}

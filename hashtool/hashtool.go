// Package hashtool computes digests of text, guesses the algorithm behind an
// existing hash, and handles bcrypt for password-style hashing.
package hashtool

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Digest is one algorithm/hex pair.
type Digest struct {
	Algo string
	Hex  string
}

// Digests computes the toolkit's digest set for text, in display order.
func Digests(text string) []Digest {
	data := []byte(text)
	sum384 := sha512.Sum384(data)
	sum512 := sha512.Sum512(data)
	md5sum := md5.Sum(data)
	sha1sum := sha1.Sum(data)
	sha256sum := sha256.Sum256(data)
	return []Digest{
		{"MD5", hex.EncodeToString(md5sum[:])},
		{"SHA-1", hex.EncodeToString(sha1sum[:])},
		{"SHA-256", hex.EncodeToString(sha256sum[:])},
		{"SHA-384", hex.EncodeToString(sum384[:])},
		{"SHA-512", hex.EncodeToString(sum512[:])},
	}
}

// Analysis is the outcome of identifying an unknown hash.
type Analysis struct {
	Length     int
	HexValid   bool
	Candidates []string
}

var hexLengths = []struct {
	length int
	names  string
}{
	{32, "MD5"},
	{40, "SHA-1"},
	{56, "SHA-224"},
	{64, "SHA-256 / SHA3-256"},
	{96, "SHA-384 / SHA3-384"},
	{128, "SHA-512 / SHA3-512"},
}

// Identify guesses what algorithm produced hash, from its hex length or a
// crypt-style prefix.
func Identify(hash string) Analysis {
	hash = strings.TrimSpace(hash)
	a := Analysis{Length: len(hash), HexValid: isHex(hash)}

	if a.HexValid {
		for _, hl := range hexLengths {
			if hl.length == a.Length {
				a.Candidates = append(a.Candidates, hl.names)
			}
		}
		return a
	}
	switch {
	case strings.HasPrefix(hash, "$2"):
		a.Candidates = append(a.Candidates, "bcrypt")
	case strings.HasPrefix(hash, "$6$"):
		a.Candidates = append(a.Candidates, "SHA-512 Crypt")
	case strings.HasPrefix(hash, "$5$"):
		a.Candidates = append(a.Candidates, "SHA-256 Crypt")
	}
	return a
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Bcrypt hashes text at the default cost.
func Bcrypt(text string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

// BcryptVerify reports whether hash matches text.
func BcryptVerify(hash, text string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(text)) == nil
}

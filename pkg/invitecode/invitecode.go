// Package invitecode generates 16-character invite codes, grouped
// 4-4-4-4, drawn from an alphabet with no visually ambiguous characters.
package invitecode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet excludes 0/O/1/I to avoid transcription mistakes when a code
// is read aloud or typed from a handwritten note.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	groupLen   = 4
	groupCount = 4
)

// Generator produces a fresh, formatted invite code. Callers are
// responsible for rejection-sampling against existing codes.
type Generator interface {
	New() (string, error)
}

// Random is the crypto/rand backed Generator.
type Random struct{}

func (Random) New() (string, error) {
	var b strings.Builder
	b.Grow(groupLen*groupCount + groupCount - 1)
	buf := make([]byte, 1)
	for g := 0; g < groupCount; g++ {
		if g > 0 {
			b.WriteByte('-')
		}
		for i := 0; i < groupLen; i++ {
			if _, err := rand.Read(buf); err != nil {
				return "", fmt.Errorf("invitecode: read random byte: %w", err)
			}
			b.WriteByte(Alphabet[int(buf[0])%len(Alphabet)])
		}
	}
	return b.String(), nil
}

// Canonicalize inserts dashes at positions 4/9/14 of a dash-free or
// already-dashed code, and upper-cases it. It does not validate the
// character set; callers should validate separately.
func Canonicalize(raw string) string {
	stripped := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))
	if len(stripped) != groupLen*groupCount {
		return stripped
	}
	var b strings.Builder
	for g := 0; g < groupCount; g++ {
		if g > 0 {
			b.WriteByte('-')
		}
		b.WriteString(stripped[g*groupLen : (g+1)*groupLen])
	}
	return b.String()
}

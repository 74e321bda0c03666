package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunesShortInputUntouched(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 10))
	assert.Equal(t, "hello", TruncateRunes("hello", 5))
}

func TestTruncateRunesASCII(t *testing.T) {
	assert.Equal(t, "hel", TruncateRunes("hello", 3))
}

func TestTruncateRunesKeepsMultiByteRunesIntact(t *testing.T) {
	got := TruncateRunes(strings.Repeat("é", 5), 3)
	assert.Equal(t, "ééé", got)
	assert.True(t, utf8.ValidString(got))
}

func TestTruncateRunesMultiByteUnderLimit(t *testing.T) {
	// 4 runes but 8 bytes; the rune count is what the limit applies to.
	s := strings.Repeat("é", 4)
	assert.Equal(t, s, TruncateRunes(s, 4))
}

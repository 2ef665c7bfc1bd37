package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("NumericEquivalence", func(t *testing.T) {
		assert.Equal(t, Normalize("7"), Normalize("007"))
		assert.Equal(t, Normalize("7"), Normalize(" 7 "))
		assert.Equal(t, Code("7"), Normalize("\t007\n"))
	})

	t.Run("PreservesAtLeastOneDigit", func(t *testing.T) {
		assert.Equal(t, Code("0"), Normalize("000"))
		assert.Equal(t, Code("0"), Normalize("0"))
	})

	t.Run("NonNumericKeptVerbatim", func(t *testing.T) {
		assert.Equal(t, Code("IC"), Normalize(" IC "))
		assert.Equal(t, Code("0416A"), Normalize("0416A")) // not purely numeric
	})

	t.Run("BlankIsEmptyCode", func(t *testing.T) {
		assert.Equal(t, EmptyCode, Normalize(""))
		assert.Equal(t, EmptyCode, Normalize("   "))
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, raw := range []string{"007", " 624 ", "", "AA", "0", "  0416A "} {
			once := Normalize(raw)
			assert.Equal(t, once, Normalize(string(once)), "input %q", raw)
		}
	})
}

func TestNormalizeList(t *testing.T) {
	t.Run("OrderPreserved", func(t *testing.T) {
		list, ok := NormalizeList("0416 0344")
		assert.True(t, ok)
		assert.Equal(t, []Code{"416", "344"}, list)
	})

	t.Run("ConsecutiveDelimitersDropped", func(t *testing.T) {
		list, ok := NormalizeList(" 1300  0344   2032 ")
		assert.True(t, ok)
		assert.Equal(t, []Code{"1300", "344", "2032"}, list)
	})

	t.Run("WhitespaceOnlyIsEmptySequence", func(t *testing.T) {
		list, ok := NormalizeList("   \t ")
		assert.True(t, ok)
		assert.Empty(t, list)
	})

	t.Run("UnexpectedDelimiterIsMalformed", func(t *testing.T) {
		for _, raw := range []string{"0416,0344", "0416;0344", "0416|0344"} {
			list, ok := NormalizeList(raw)
			assert.False(t, ok, "input %q", raw)
			assert.Nil(t, list)
		}
	})
}

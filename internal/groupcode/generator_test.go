package groupcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Generate(t *testing.T) {
	generator := New()

	for i := 0; i < 100; i++ {
		code := generator.Generate()
		assert.Len(t, code, Length)
		assert.Regexp(t, Pattern, code)
	}
}

func TestRandomGenerator_Seeded(t *testing.T) {
	first := NewSeeded(42)
	second := NewSeeded(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Generate(), second.Generate())
	}
}

func TestRandomGenerator_Distribution(t *testing.T) {
	generator := New()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[generator.Generate()] = true
	}

	// Collisions across 1000 draws from a 36^8 space would indicate a
	// broken source.
	assert.Len(t, seen, 1000)
}

func TestPattern(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"valid code", "a1b2c3d4", true},
		{"all digits", "12345678", true},
		{"all letters", "abcdefgh", true},
		{"too short", "abc123", false},
		{"too long", "abc123def", false},
		{"uppercase", "ABC123DE", false},
		{"empty", "", false},
		{"punctuation", "abc-123d", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Pattern.MatchString(tt.code))
		})
	}
}

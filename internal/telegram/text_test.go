package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixEncoding(t *testing.T) {
	// "Привет" в windows-1251
	cp1251 := string([]byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2})

	assert.Equal(t, "Привет", FixEncoding(cp1251))
	assert.Equal(t, "/search amex", FixEncoding("/search amex"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "/search chase sapphire", SanitizeInput("  /search chase\t\tsapphire \n"))
	assert.Equal(t, "", SanitizeInput("   "))
}

func TestSplitCommand(t *testing.T) {
	testCases := []struct {
		in, cmd, arg string
	}{
		{"/offers", "/offers", ""},
		{"/Eligible 2", "/eligible", "2"},
		{"/eligible@signup_bot 3", "/eligible", "3"},
		{"/search chase sapphire", "/search", "chase sapphire"},
		{"hello", "hello", ""},
	}
	for _, tc := range testCases {
		cmd, arg := splitCommand(tc.in)
		assert.Equal(t, tc.cmd, cmd, tc.in)
		assert.Equal(t, tc.arg, arg, tc.in)
	}
}

package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocators(t *testing.T) {
	input := strings.Join([]string{
		"# vacations",
		"https://github.com/octocat/hello-world/issues/1",
		"",
		"   https://github.com/octocat/hello-world/issues/2\t",
		"  # indented comment",
		"https://github.com/octocat/hello-world/issues/3",
	}, "\n")

	got, err := ParseLocators(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/octocat/hello-world/issues/1",
		"https://github.com/octocat/hello-world/issues/2",
		"https://github.com/octocat/hello-world/issues/3",
	}, got)
}

func TestParseLocators_Empty(t *testing.T) {
	got, err := ParseLocators(strings.NewReader("\n\n# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseLocators_CRLF(t *testing.T) {
	got, err := ParseLocators(strings.NewReader("https://a/issues/1\r\nhttps://a/issues/2\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/issues/1", "https://a/issues/2"}, got)
}

package badwords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultListMatchesWholeWords(t *testing.T) {
	require.NoError(t, LoadBadWords(""))

	assert.True(t, ContainsBadWords("Win the LOTTERY today!"))
	assert.True(t, ContainsBadWords("cheap viagra, click here"))
	assert.False(t, ContainsBadWords("Need spraying for 8 acres of cotton near Shirur."))
	// Substrings of listed words do not match.
	assert.False(t, ContainsBadWords("Scrap the old schedule, please call me."))
	assert.False(t, CheckText("Hello").ContainsBadWords)
}

func TestLoadFromFileReplacesList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n  Pesticide \n\nlocust\n"), 0o600))

	require.NoError(t, LoadBadWords(path))
	assert.ElementsMatch(t, []string{"pesticide", "locust"}, ListBadWords())
	assert.True(t, ContainsBadWords("Locust swarm!"))
	assert.False(t, ContainsBadWords("lottery"))

	assert.Error(t, LoadBadWords(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestAddAndRemove(t *testing.T) {
	require.NoError(t, LoadBadWords(""))

	assert.Error(t, AddBadWord("  "))
	require.NoError(t, AddBadWord("Spam"))
	assert.True(t, ContainsBadWords("this is spam"))

	assert.True(t, RemoveBadWord("SPAM"))
	assert.False(t, RemoveBadWord("spam"))
	assert.False(t, ContainsBadWords("this is spam"))
}

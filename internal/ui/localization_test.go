package ui

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestTranslationsCoverSameKeys(t *testing.T) {
	l := NewLocalization()
	english := sortedKeys(l.texts[LangEnglish])
	require.NotEmpty(t, english)

	for _, lang := range []string{LangRussian, LangPortug} {
		assert.Equal(t, english, sortedKeys(l.texts[lang]), "keys for %s", lang)
		for key, text := range l.texts[lang] {
			assert.NotEmpty(t, text, "%s/%s", lang, key)
		}
	}
}

// Every translated key is looked up somewhere in the package.
func TestTranslationKeysAreUsed(t *testing.T) {
	src, err := os.ReadFile("localization.go")
	require.NoError(t, err)
	decl := regexp.MustCompile(`(?m)^\t(Key\w+)\s+=`)

	var code strings.Builder
	for _, file := range []string{"root.go", "settings_dialog.go"} {
		b, err := os.ReadFile(file)
		require.NoError(t, err)
		code.Write(b)
	}

	for _, m := range decl.FindAllStringSubmatch(string(src), -1) {
		assert.Contains(t, code.String(), m[1], "%s is translated but never read", m[1])
	}
}

func TestSetLanguageFallsBack(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("xx")
	assert.Equal(t, "YouTube Downloader", l.GetText(KeyHeading))
}

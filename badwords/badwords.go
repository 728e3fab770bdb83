// Package badwords screens free-text contact messages against a word list.
package badwords

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xronetech/leads/logger"
)

//go:embed en.txt
var defaultList string

// CheckResponse is returned by the content-check endpoint.
type CheckResponse struct {
	ContainsBadWords bool `json:"containsBadWords"`
}

// badWordsMap is a set of lowercase words.
var badWordsMap map[string]struct{}

var mu sync.RWMutex

// LoadBadWords replaces the list with the words in filename, one per line.
// An empty filename loads the built-in list.
func LoadBadWords(filename string) error {
	data := defaultList
	if filename != "" {
		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read bad words file: %w", err)
		}
		data = string(raw)
	}

	words := parse(data)

	mu.Lock()
	badWordsMap = words
	mu.Unlock()

	logger.InfoLogger.Infof("Loaded %d bad words", len(words))
	return nil
}

func parse(data string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[strings.ToLower(line)] = struct{}{}
	}
	return out
}

// ContainsBadWords reports whether any word of text is on the list. An
// unloaded list never matches.
func ContainsBadWords(text string) bool {
	mu.RLock()
	defer mu.RUnlock()

	if len(badWordsMap) == 0 {
		return false
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, word := range words {
		if _, found := badWordsMap[word]; found {
			logger.DebugLogger.Debugf("Bad word detected: %s", word)
			return true
		}
	}
	return false
}

// CheckText wraps ContainsBadWords for the HTTP response.
func CheckText(text string) CheckResponse {
	return CheckResponse{ContainsBadWords: ContainsBadWords(text)}
}

// AddBadWord adds a word to the list.
func AddBadWord(badWord string) error {
	badWord = strings.TrimSpace(badWord)
	if badWord == "" {
		return errors.New("bad word must not be empty")
	}

	mu.Lock()
	defer mu.Unlock()
	if badWordsMap == nil {
		badWordsMap = make(map[string]struct{})
	}
	badWordsMap[strings.ToLower(badWord)] = struct{}{}
	return nil
}

// RemoveBadWord removes a word and reports whether it was listed.
func RemoveBadWord(badWord string) bool {
	mu.Lock()
	defer mu.Unlock()

	w := strings.ToLower(strings.TrimSpace(badWord))
	if _, found := badWordsMap[w]; found {
		delete(badWordsMap, w)
		return true
	}
	return false
}

// ListBadWords returns the current list in no particular order.
func ListBadWords() []string {
	mu.RLock()
	defer mu.RUnlock()

	words := make([]string, 0, len(badWordsMap))
	for word := range badWordsMap {
		words = append(words, word)
	}
	return words
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/text/cases"
)

const (
	blindIndexInfo = "blind-index/v1"

	// MinKeywordLength is the shortest word, in runes, that gets indexed.
	MinKeywordLength = 3
)

// BlindIndexer computes search tokens: keyed, non-reversible digests of
// normalized keywords. Equal keywords under the same key yield equal
// tokens, which lets storage answer equality lookups. Storage therefore
// learns which records share a keyword, though never the keyword itself.
type BlindIndexer struct{}

// NewBlindIndexer returns a BlindIndexer.
func NewBlindIndexer() *BlindIndexer {
	return &BlindIndexer{}
}

// Normalize trims and case-folds text.
func Normalize(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}

// Tokenize returns the base64 HMAC-SHA256 of the normalized text under a
// subkey of key.
func (b *BlindIndexer) Tokenize(text string, key Key) (string, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", fmt.Errorf("%w: nothing to tokenize", ErrInvalidInput)
	}

	indexKey, err := deriveIndexKey(key)
	if err != nil {
		return "", err
	}
	defer indexKey.Wipe()

	return tokenize(normalized, indexKey), nil
}

// TokenizeKeywords extracts the keywords of body and tokenizes each one.
// The result is empty when body has no indexable words.
func (b *BlindIndexer) TokenizeKeywords(body string, key Key) ([]string, error) {
	keywords := ExtractKeywords(body)
	if len(keywords) == 0 {
		return []string{}, nil
	}

	indexKey, err := deriveIndexKey(key)
	if err != nil {
		return nil, err
	}
	defer indexKey.Wipe()

	tokens := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		tokens = append(tokens, tokenize(keyword, indexKey))
	}
	return tokens, nil
}

// ExtractKeywords case-folds body, splits it on anything that is not a
// letter or a digit, drops words shorter than MinKeywordLength and removes
// duplicates while keeping first-seen order.
func ExtractKeywords(body string) []string {
	words := strings.FieldsFunc(cases.Fold().String(body), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(words))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < MinKeywordLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

func deriveIndexKey(key Key) (Key, error) {
	if key.IsZero() {
		return Key{}, fmt.Errorf("%w: zero key", ErrInvalidInput)
	}

	var indexKey Key
	reader := hkdf.New(sha256.New, key[:], nil, []byte(blindIndexInfo))
	if _, err := io.ReadFull(reader, indexKey[:]); err != nil {
		return Key{}, fmt.Errorf("derive index key: %w", err)
	}
	return indexKey, nil
}

func tokenize(normalized string, indexKey Key) string {
	mac := hmac.New(sha256.New, indexKey[:])
	mac.Write([]byte(normalized))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

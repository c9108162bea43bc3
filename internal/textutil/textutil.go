// internal/textutil/textutil.go
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// 検索対象として受け付ける単語の最大長
const maxWordLength = 50

// コンテキスト文が長すぎる場合に切り詰める長さ
const maxSentenceLength = 200

var (
	hasLetterRe  = regexp.MustCompile(`[a-zA-Z]`)
	wholePhrase  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s-]*[a-zA-Z]$`)
	singleLetter = regexp.MustCompile(`^[a-zA-Z]$`)
	singleWordRe = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z-]*[a-zA-Z])?$`)
)

// IsEnglishWord は検索対象として妥当な英単語（最大3語のフレーズ）かどうかを判定します。
// 記号混じりの選択や長すぎる選択はここで弾く。
func IsEnglishWord(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 || len(trimmed) > maxWordLength {
		return false
	}
	if !hasLetterRe.MatchString(trimmed) {
		return false
	}
	if !wholePhrase.MatchString(trimmed) && !singleLetter.MatchString(trimmed) {
		return false
	}
	words := strings.Fields(trimmed)
	if len(words) > 3 {
		return false
	}
	for _, word := range words {
		if !singleWordRe.MatchString(word) {
			return false
		}
	}
	return true
}

// ExtractSentence はテキストから単語を含む文を取り出します。
// 見つからない場合は先頭200文字を返す。
func ExtractSentence(text, word string) string {
	if text == "" || word == "" {
		return ""
	}
	wordLower := strings.ToLower(word)
	for _, sentence := range splitSentences(text) {
		if strings.Contains(strings.ToLower(sentence), wordLower) {
			return strings.TrimSpace(sentence)
		}
	}
	// バイトではなく文字数で切り詰める。中国語の文をバイト境界で切ると
	// マルチバイト文字が壊れて不正なUTF-8になるため。
	trimmed := []rune(strings.TrimSpace(text))
	if len(trimmed) > maxSentenceLength {
		trimmed = trimmed[:maxSentenceLength]
	}
	return string(trimmed)
}

// splitSentences は「.!? の直後の空白」を文境界としてテキストを分割します
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, string(runes[start:i+1]))
			// 連続する空白を読み飛ばす
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

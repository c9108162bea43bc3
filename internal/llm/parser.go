// internal/llm/parser.go
package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParsedDefinition はモデル出力から抽出した定義です。全フィールドが空になり得る。
type ParsedDefinition struct {
	Lemma      string `json:"lemma"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// 最初の { から最も近い } までを取り出す (非貪欲)。
// ネストしたJSONはここでは壊れた断片になるが、それはティア3で救済される。
// モデルの出力形式は敵対的なので、この段階の順序と貪欲さを変えるときは
// 必ず回帰テストを足すこと。
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*?\}`)

// ParseResponse はモデル出力を3段階で解釈します。
//  1. 全文をJSONとしてパース
//  2. 最初の {...} 部分文字列をJSONとしてパース (コードフェンスや前置きへの対策)
//  3. 全文をそのまま definition として扱う
//
// どの段階でも失敗はエラーにせず次の段階へ落ちる。この関数は決して失敗しない。
func ParseResponse(text string) ParsedDefinition {
	if text == "" {
		return ParsedDefinition{}
	}

	var parsed ParsedDefinition
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed
	}

	if match := jsonBlockRe.FindString(text); match != "" {
		var fromBlock ParsedDefinition
		if err := json.Unmarshal([]byte(match), &fromBlock); err == nil {
			return fromBlock
		}
	}

	return ParsedDefinition{Definition: strings.TrimSpace(text)}
}

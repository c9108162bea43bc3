// internal/llm/prompt.go
package llm

import "fmt"

// BuildPrompt は単語と出現文から定義取得用のプロンプトを組み立てます。
// 返答は parser.go が期待するJSONスキーマを指定している。
func BuildPrompt(word, sentence string) string {
	return fmt.Sprintf(`你是一个学术英语词汇助手。用户在阅读英文学术论文时遇到一个不认识的单词，请你帮助解释。

单词：%s
原文句子：%s

请按以下格式返回 JSON：
{
  "lemma": "单词原形",
  "phonetic": "国际音标",
  "definition": "中文释义（聚焦该词在学术语境中的含义，简洁准确，不超过50字）",
  "example": "一个学术场景的英文例句"
}

要求：
1. 释义要贴合学术论文语境，而非日常口语含义
2. 如果该词有多个学术含义，优先给出在原文句子语境中最匹配的含义
3. 例句应来自学术写作场景
4. 严格返回 JSON 格式，不要附加其他内容`, word, sentence)
}

// Package classifier infers tags and a mood for entry text from fixed,
// ordered keyword tables.
package classifier

import (
	"strings"

	"github.com/julianstephens/riji/internal/models"
)

// FallbackTag is assigned when no tag rule matches
const FallbackTag = "简单日常"

// TagRule attaches Tag when any keyword occurs in the text
type TagRule struct {
	Tag      string
	Keywords []string
}

// MoodRule selects Mood when any keyword occurs in the text
type MoodRule struct {
	Mood     models.Mood
	Keywords []string
}

// TagRules are evaluated in order; every matching rule contributes its tag.
var TagRules = []TagRule{
	{Tag: "杭州实习", Keywords: []string{"实习", "杭州", "工作"}},
	{Tag: "西藏之旅", Keywords: []string{"西藏", "旅行", "旅游"}},
	{Tag: "怀化", Keywords: []string{"怀化", "老家", "奶奶", "外公", "外婆"}},
	{Tag: "出去玩", Keywords: []string{"出去玩", "出去", "逛街", "散步", "约会"}},
	{Tag: "心情", Keywords: []string{"心情", "感觉", "想", "玉玉"}},
	{Tag: "奇怪的话", Keywords: []string{"奇怪", "莫名其妙", "无语"}},
}

// MoodRules are evaluated in order; the first match wins.
var MoodRules = []MoodRule{
	{Mood: models.MoodHappy, Keywords: []string{"开心", "高兴", "😊", "豪7"}},
	{Mood: models.MoodSad, Keywords: []string{"难过", "伤心", "😢", "玉玉"}},
	{Mood: models.MoodAngry, Keywords: []string{"生气", "愤怒", "😠"}},
	{Mood: models.MoodExcited, Keywords: []string{"兴奋", "激动", "🤩"}},
	{Mood: models.MoodCalm, Keywords: []string{"平静", "放松", "😌"}},
}

// Tags returns the tags for content. The result is never empty.
func Tags(content string) []string {
	text := strings.ToLower(content)
	var tags []string
	for _, rule := range TagRules {
		if containsAny(text, rule.Keywords) && !contains(tags, rule.Tag) {
			tags = append(tags, rule.Tag)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, FallbackTag)
	}
	return tags
}

// Mood returns the mood of the first matching rule, or models.DefaultMood.
func Mood(content string) models.Mood {
	text := strings.ToLower(content)
	for _, rule := range MoodRules {
		if containsAny(text, rule.Keywords) {
			return rule.Mood
		}
	}
	return models.DefaultMood
}

// Labels lists every tag the classifier can produce, rule order first and
// the fallback last.
func Labels() []string {
	labels := make([]string, 0, len(TagRules)+1)
	for _, rule := range TagRules {
		labels = append(labels, rule.Tag)
	}
	return append(labels, FallbackTag)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

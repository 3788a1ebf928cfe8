package service

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// KeywordMatch is the outcome of the automatic keyword pre-grader for one
// open answer.
type KeywordMatch struct {
	Matched []string
	Missed  []string
	// AutoScore is matched/total in 0..1, nil when the question defines
	// no keywords (nothing to match against).
	AutoScore *float64
}

// MatchKeywords runs a case-insensitive containment check of each expected
// keyword against the answer text.
func MatchKeywords(answerText string, keywords []string) KeywordMatch {
	if len(keywords) == 0 {
		return KeywordMatch{}
	}

	haystack := strings.ToLower(answerText)
	match := KeywordMatch{
		Matched: make([]string, 0, len(keywords)),
		Missed:  make([]string, 0, len(keywords)),
	}
	for _, kw := range keywords {
		needle := strings.ToLower(strings.TrimSpace(kw))
		if needle != "" && strings.Contains(haystack, needle) {
			match.Matched = append(match.Matched, kw)
		} else {
			match.Missed = append(match.Missed, kw)
		}
	}

	score := float64(len(match.Matched)) / float64(len(keywords))
	match.AutoScore = &score
	return match
}

// KeywordList decodes a JSON keyword column into a string slice. A null or
// malformed column counts as no keywords.
func KeywordList(col datatypes.JSON) []string {
	if len(col) == 0 {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal(col, &keywords); err != nil {
		return nil
	}
	return keywords
}

// JSONStringList encodes a string slice for storage in a JSON column.
func JSONStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

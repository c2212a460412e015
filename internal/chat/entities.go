package chat

import (
	"regexp"
	"strings"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
	"github.com/eagle-health/analytics-backend/internal/trends"
)

// Intent is a coarse conversational signal detected before classification.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentFarewell Intent = "farewell"
	IntentThanks   Intent = "thanks"
	IntentHelp     Intent = "help"
)

// Entities holds everything the extractor recognized in a question. All
// fields are optional; the classifier decides which of them matter.
type Entities struct {
	Condition *trends.Condition `json:"condition,omitempty"`
	State     string            `json:"state,omitempty"`
	City      string            `json:"city,omitempty"`
	Year      string            `json:"year,omitempty"`
	Member    string            `json:"member,omitempty"`
	Intent    Intent            `json:"intent,omitempty"`
}

var yearPattern = regexp.MustCompile(`\b(200[4-9]|201[0-7])\b`)

var greetingTokens = map[string]bool{
	"hi": true, "hello": true, "hey": true, "greetings": true,
}

var farewellPhrases = []string{"bye", "goodbye", "see you", "farewell", "take care"}

var thanksPhrases = []string{"thank", "thanks", "appreciate", "grateful"}

var helpPhrases = []string{"help", "what can you do", "how to use", "capabilities"}

// Extract scans a question for conditions, places, years, team members and
// conversational intent. Pure: no I/O, no shared state, deterministic.
func Extract(question string) Entities {
	q := strings.ToLower(strings.TrimSpace(question))
	var e Entities

	e.Intent = detectIntent(q)

	if c := matchCondition(q); c != nil {
		e.Condition = c
	}
	for _, city := range knowledge.Cities {
		if strings.Contains(q, city) {
			e.City = city
			break
		}
	}
	for _, state := range knowledge.States {
		// "new york city" must not also register the state.
		if state == "new york" && e.City == "new york city" {
			continue
		}
		if strings.Contains(q, state) {
			e.State = state
			break
		}
	}
	if m := yearPattern.FindString(q); m != "" {
		e.Year = m
	}
	for _, alias := range knowledge.MemberAliasKeys {
		if containsToken(q, alias) {
			if member, ok := knowledge.ResolveMember(alias); ok {
				e.Member = member.Name
				break
			}
		}
	}
	return e
}

func detectIntent(q string) Intent {
	for _, tok := range strings.Fields(stripPunct(q)) {
		if greetingTokens[tok] {
			return IntentGreeting
		}
	}
	for _, p := range farewellPhrases {
		if strings.Contains(q, p) {
			return IntentFarewell
		}
	}
	for _, p := range thanksPhrases {
		if strings.Contains(q, p) {
			return IntentThanks
		}
	}
	for _, p := range helpPhrases {
		if strings.Contains(q, p) {
			return IntentHelp
		}
	}
	return ""
}

func matchCondition(q string) *trends.Condition {
	for _, c := range trends.AllConditions {
		if strings.Contains(q, string(c)) {
			cc := c
			return &cc
		}
	}
	for _, a := range knowledge.ConditionAliases() {
		if strings.Contains(q, a.Phrase) {
			cc := a.Condition
			return &cc
		}
	}
	return nil
}

// containsToken reports whether word appears as a standalone token in q.
func containsToken(q, word string) bool {
	for _, tok := range strings.Fields(stripPunct(q)) {
		if tok == word {
			return true
		}
	}
	return false
}

func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '.', ',', '!', '?', ';', ':', '"', '\'', '(', ')':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

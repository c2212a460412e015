package trends

import (
	"fmt"
	"strings"
)

// Condition identifies one of the nine tracked health conditions. The values
// double as the canonical lower-case slugs used in API paths and chat entities.
type Condition string

const (
	Cancer         Condition = "cancer"
	Cardiovascular Condition = "cardiovascular"
	Stroke         Condition = "stroke"
	Depression     Condition = "depression"
	Rehab          Condition = "rehab"
	Vaccine        Condition = "vaccine"
	Diarrhea       Condition = "diarrhea"
	Obesity        Condition = "obesity"
	Diabetes       Condition = "diabetes"
)

// AllConditions is the fixed declaration order used everywhere a stable
// ordering is needed (API listings, totals, keyword scans).
var AllConditions = []Condition{
	Cancer,
	Cardiovascular,
	Stroke,
	Depression,
	Rehab,
	Vaccine,
	Diarrhea,
	Obesity,
	Diabetes,
}

// conditionColumns maps each condition to its search_condition column.
// Queries are built only from this table so no caller-supplied string ever
// reaches SQL.
var conditionColumns = map[Condition]string{
	Cancer:         "cancer",
	Cardiovascular: "cardiovascular",
	Stroke:         "stroke",
	Depression:     "depression",
	Rehab:          "rehab",
	Vaccine:        "vaccine",
	Diarrhea:       "diarrhea",
	Obesity:        "obesity",
	Diabetes:       "diabetes",
}

func ParseCondition(s string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := conditionColumns[c]; !ok {
		return "", fmt.Errorf("unknown condition %q", s)
	}
	return c, nil
}

func (c Condition) Valid() bool {
	_, ok := conditionColumns[c]
	return ok
}

func (c Condition) column() string {
	return conditionColumns[c]
}

// Title returns the display name, e.g. "Cancer".
func (c Condition) Title() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ConditionNames returns the display names in declaration order.
func ConditionNames() []string {
	names := make([]string, 0, len(AllConditions))
	for _, c := range AllConditions {
		names = append(names, c.Title())
	}
	return names
}

// allColumnsSum is the "<col> + <col> + ..." expression summing every
// condition column, used by the across-conditions totals.
func allColumnsSum() string {
	cols := make([]string, 0, len(AllConditions))
	for _, c := range AllConditions {
		cols = append(cols, c.column())
	}
	return strings.Join(cols, " + ")
}

package chat

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/internal/trends"
)

// Metadata describes the generated answer, not the question.
type Metadata struct {
	WordCount      int     `json:"word_count"`
	ReadingTimeMin int     `json:"reading_time_min"`
	Complexity     float64 `json:"complexity_score"`
	GeneratedAt    string  `json:"generated_at"`
}

// Response is the fully rendered chat answer.
type Response struct {
	Answer      string             `json:"answer"`
	Category    knowledge.Category `json:"category"`
	Title       string             `json:"title"`
	Group       string             `json:"group"`
	Followups   []string           `json:"suggested_followups"`
	DataSummary string             `json:"data_summary"`
	Metadata    Metadata           `json:"metadata"`
}

// Renderer turns a category plus fetched data into answer text. The random
// source only varies the canned conversational pools; everything else is
// deterministic for a given bag.
type Renderer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewRendererWithSource builds a renderer with a fixed seed and clock,
// used by tests.
func NewRendererWithSource(seed int64, now func() time.Time) *Renderer {
	return &Renderer{rng: rand.New(rand.NewSource(seed)), now: now}
}

var greetingPool = []string{
	"Hello! I'm the Eagle Health assistant. I can walk you through our search-trends analysis of nine health conditions across the US from 2004 to 2017. What would you like to know?",
	"Hi there! Ask me about health search trends, specific conditions, states, our methodology, or the team behind the project.",
	"Welcome! I can answer questions about our Google Trends and CDC health analysis. Try asking about a condition like diabetes, or a state like California.",
}

var farewellPool = []string{
	"Goodbye! Feel free to come back anytime you want to explore the health search data.",
	"Take care! The dashboard is always here when you want to dig into the trends.",
	"See you later! Thanks for exploring the health trends project.",
}

var thanksPool = []string{
	"You're welcome! Happy to help with anything else about the health trends data.",
	"Glad I could help! Let me know if you have more questions about the analysis.",
	"Anytime! There's plenty more in the data if you're curious.",
}

var followupsByCategory = map[knowledge.Category][]string{
	knowledge.CategoryProjectOverview: {
		"What data sources does the project use?",
		"Which health conditions are analyzed?",
		"What were the key findings?",
		"Who worked on this project?",
	},
	knowledge.CategoryDataSources: {
		"How was the data processed?",
		"Which health conditions are tracked?",
		"What years does the data cover?",
		"What were the key findings?",
	},
	knowledge.CategoryHealthConditions: {
		"Tell me about cancer search trends",
		"Which condition is searched the most?",
		"Are any conditions correlated?",
		"How do searches vary by state?",
	},
	knowledge.CategorySpecificCondition: {
		"Which states search this condition the most?",
		"How has interest changed over time?",
		"Is it correlated with other conditions?",
		"What are the overall key findings?",
	},
	knowledge.CategoryMethodology: {
		"What data sources were used?",
		"What were the key findings?",
		"How were correlations computed?",
		"Which conditions are analyzed?",
	},
	knowledge.CategoryKeyFindings: {
		"Tell me about the diabetes-depression correlation",
		"Which states lead in cancer searches?",
		"How did searches change over time?",
		"What methodology produced these findings?",
	},
	knowledge.CategoryStateAnalysis: {
		"How does this compare to other states?",
		"Which condition dominates in this state?",
		"What are the national key findings?",
		"Show me the trend over time",
	},
	knowledge.CategoryCityAnalysis: {
		"How does this city compare to its state?",
		"Which conditions are tracked?",
		"What are the key findings?",
		"Tell me about the data sources",
	},
	knowledge.CategoryTeamMembers: {
		"Tell me about Ermias",
		"Who led the project?",
		"What tools did the team use?",
		"What is the project about?",
	},
	knowledge.CategorySpecificMember: {
		"Who else is on the team?",
		"What did the team build?",
		"What tools were used?",
		"What is the project about?",
	},
	knowledge.CategoryCorrelationAnalysis: {
		"What does the diabetes-depression correlation mean?",
		"What other key findings are there?",
		"How were correlations computed?",
		"Which conditions are analyzed?",
	},
	knowledge.CategoryTimeSeries: {
		"Which condition grew the fastest?",
		"How do trends vary by state?",
		"What are the key findings?",
		"What years does the data cover?",
	},
	knowledge.CategoryMetricsInsights: {
		"Which condition has the most searches?",
		"How do the numbers break down by state?",
		"What are the key findings?",
		"Show me the trend over time",
	},
	knowledge.CategoryHelp: {
		"What is this project about?",
		"Tell me about diabetes trends",
		"Which states search cancer the most?",
		"Who is on the team?",
	},
}

var genericFollowups = []string{
	"What is this project about?",
	"Which health conditions are analyzed?",
	"What were the key findings?",
	"Who worked on this project?",
}

// Render builds the final response. Same inputs always yield the same text
// except for the greeting/farewell/thanks pools.
func (r *Renderer) Render(category knowledge.Category, e Entities, bag DataBag, stats QuestionStats) Response {
	var answer, summary string

	switch category {
	case knowledge.CategoryGreeting:
		answer = r.pickFrom(greetingPool)
	case knowledge.CategoryFarewell:
		answer = r.pickFrom(farewellPool)
	case knowledge.CategoryThanks:
		answer = r.pickFrom(thanksPool)
	case knowledge.CategoryHelp:
		answer = helpText()
	case knowledge.CategoryProjectOverview:
		answer, summary = overviewText(bag)
	case knowledge.CategoryDataSources:
		answer = dataSourcesText()
	case knowledge.CategoryHealthConditions:
		answer, summary = healthConditionsText(bag)
	case knowledge.CategorySpecificCondition:
		answer, summary = conditionText(bag)
	case knowledge.CategoryMethodology:
		answer = methodologyText()
	case knowledge.CategoryKeyFindings:
		answer, summary = keyFindingsText(bag)
	case knowledge.CategoryStateAnalysis:
		answer, summary = stateText(e, bag)
	case knowledge.CategoryCityAnalysis:
		answer, summary = cityText(e, bag)
	case knowledge.CategoryTeamMembers:
		answer = teamText()
	case knowledge.CategorySpecificMember:
		answer = memberText(e)
	case knowledge.CategoryCorrelationAnalysis:
		answer, summary = correlationText(bag)
	case knowledge.CategoryTimeSeries:
		answer, summary = timeSeriesText(bag)
	case knowledge.CategoryMetricsInsights:
		answer, summary = metricsText(bag)
	default:
		answer, summary = overviewText(bag)
	}

	wc := len(strings.Fields(answer))
	return Response{
		Answer:      answer,
		Category:    category,
		Title:       knowledge.TitleFor(category),
		Group:       knowledge.GroupFor(category),
		Followups:   followupsFor(category, e),
		DataSummary: summary,
		Metadata: Metadata{
			WordCount:      wc,
			ReadingTimeMin: readingTime(wc),
			Complexity:     stats.Complexity,
			GeneratedAt:    r.now().UTC().Format(time.RFC3339),
		},
	}
}

func (r *Renderer) pickFrom(pool []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pool[r.rng.Intn(len(pool))]
}

// followupsFor returns the category's followups, interpolating the condition
// name where one was extracted.
func followupsFor(category knowledge.Category, e Entities) []string {
	if category == knowledge.CategorySpecificCondition && e.Condition != nil {
		name := e.Condition.Title()
		return []string{
			fmt.Sprintf("Which states search %s the most?", name),
			fmt.Sprintf("How has %s interest changed over time?", name),
			fmt.Sprintf("Is %s correlated with other conditions?", name),
			"What are the overall key findings?",
		}
	}
	if f, ok := followupsByCategory[category]; ok {
		return f
	}
	return genericFollowups
}

// readingTime is minutes at 200 words per minute, rounded up, minimum 1.
func readingTime(wordCount int) int {
	if wordCount <= 0 {
		return 1
	}
	return int(math.Ceil(float64(wordCount) / 200.0))
}

// growthRate is the percent change from the first to the last point of a
// series. Zero when the series is short or starts at zero.
func growthRate(series []models.YearVolume) float64 {
	if len(series) < 2 {
		return 0
	}
	first := float64(series[0].Volume)
	last := float64(series[len(series)-1].Volume)
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// formatInt renders an integer with comma grouping, e.g. 1234567 -> "1,234,567".
func formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func overviewText(bag DataBag) (string, string) {
	var b strings.Builder
	b.WriteString("This project analyzes how Americans searched for health information between 2004 and 2017. " +
		"We combined Google Trends search-interest data for nine health conditions with CDC mortality statistics " +
		"to build an interactive dashboard showing how public attention to health topics varies across states, " +
		"cities, and years. The analysis covers cancer, cardiovascular disease, stroke, depression, rehab, " +
		"vaccines, diarrhea, obesity, and diabetes.")

	if len(bag.HealthStats) == 0 {
		return b.String(), ""
	}

	var total int64
	for _, c := range trends.AllConditions {
		total += bag.HealthStats[c]
	}
	fmt.Fprintf(&b, "\n\nIn total the dataset covers %s recorded searches.", formatInt(total))
	if len(bag.TopStates) > 0 {
		fmt.Fprintf(&b, " Cancer, the most searched condition, drew the highest interest from %s.",
			bag.TopStates[0].State)
	}
	return b.String(), fmt.Sprintf("Overview built from %d condition totals", len(bag.HealthStats))
}

func dataSourcesText() string {
	return "The analysis draws on two primary sources. Google Trends provides relative search-interest volumes " +
		"for nine health conditions across US cities and states from 2004 to 2017. The CDC's leading causes of " +
		"death dataset supplies mortality counts by state and year, which lets us compare what people search " +
		"for with actual health outcomes. Both datasets were cleaned, normalized, and loaded into a relational " +
		"store for aggregation."
}

func methodologyText() string {
	return "We started by collecting Google Trends search volumes for nine health conditions across US " +
		"metropolitan areas, then joined them with location metadata and CDC mortality records. The data was " +
		"cleaned and aggregated by state, city, and year. We computed per-condition totals, yearly trend lines, " +
		"growth rates, and Pearson correlations between condition pairs. The results feed an interactive " +
		"dashboard with map, time-series, and comparison views."
}

func helpText() string {
	return "I can answer questions about the health search-trends project. Try asking about: a specific " +
		"condition (\"tell me about diabetes\"), a state or city (\"trends in California\"), the data sources, " +
		"the methodology, key findings, correlations between conditions, or the team that built the project."
}

func teamText() string {
	var b strings.Builder
	b.WriteString("The project was built by a team of five:\n")
	for _, m := range knowledge.Team() {
		fmt.Fprintf(&b, "\n- %s — %s. %s", m.Name, m.Role, m.Bio)
	}
	b.WriteString("\n\nAsk about any member by name for more detail.")
	return b.String()
}

func memberText(e Entities) string {
	if e.Member == "" {
		return teamText()
	}
	for _, m := range knowledge.Team() {
		if m.Name != e.Member {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s — %s\n\n%s\n\n", m.Name, m.Role, m.Bio)
		fmt.Fprintf(&b, "Expertise: %s\n", strings.Join(m.Expertise, ", "))
		fmt.Fprintf(&b, "Contributions: %s\n", strings.Join(m.Contributions, ", "))
		fmt.Fprintf(&b, "Tools: %s", strings.Join(m.Tools, ", "))
		return b.String()
	}
	return teamText()
}

func healthConditionsText(bag DataBag) (string, string) {
	var b strings.Builder
	b.WriteString("The project tracks nine health conditions: ")
	b.WriteString(strings.Join(trends.ConditionNames(), ", "))
	b.WriteString(".")

	if len(bag.HealthStats) == 0 {
		return b.String(), ""
	}

	b.WriteString("\n\nTotal search volumes across 2004-2017:\n")
	for _, c := range trends.AllConditions {
		fmt.Fprintf(&b, "\n- %s: %s searches", c.Title(), formatInt(bag.HealthStats[c]))
	}
	return b.String(), fmt.Sprintf("Aggregated search totals for %d conditions", len(bag.HealthStats))
}

func conditionText(bag DataBag) (string, string) {
	if bag.ConditionStats == nil {
		return "I track nine health conditions: " + strings.Join(trends.ConditionNames(), ", ") +
			". Ask about any of them by name.", ""
	}
	cs := bag.ConditionStats

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", cs.Info.Definition)
	if cs.Info.RiskFactors != "" {
		fmt.Fprintf(&b, "Risk factors: %s.\n\n", cs.Info.RiskFactors)
	}
	if cs.TotalSearches > 0 {
		fmt.Fprintf(&b, "Between 2004 and 2017 we recorded %s %s-related searches. ",
			formatInt(cs.TotalSearches), cs.Condition.Title())
	}
	if g := growthRate(cs.YearlyTrend); g != 0 {
		fmt.Fprintf(&b, "Search interest changed by %.1f%% from %d to %d. ",
			g, cs.YearlyTrend[0].Year, cs.YearlyTrend[len(cs.YearlyTrend)-1].Year)
	}
	if len(cs.TopStates) > 0 {
		names := make([]string, 0, len(cs.TopStates))
		for _, sv := range cs.TopStates {
			names = append(names, sv.State)
		}
		fmt.Fprintf(&b, "The highest search interest came from %s. ", strings.Join(names, ", "))
	}
	if cs.Info.SearchPattern != "" {
		fmt.Fprintf(&b, "\n\nPattern: %s.", cs.Info.SearchPattern)
	}

	summary := fmt.Sprintf("Condition profile for %s with %d top states and %d yearly points",
		cs.Condition.Title(), len(cs.TopStates), len(cs.YearlyTrend))
	return b.String(), summary
}

func keyFindingsText(bag DataBag) (string, string) {
	var b strings.Builder
	b.WriteString("Key findings from the analysis:\n")

	if len(bag.HealthStats) > 0 {
		top := trends.AllConditions[0]
		for _, c := range trends.AllConditions {
			if bag.HealthStats[c] > bag.HealthStats[top] {
				top = c
			}
		}
		fmt.Fprintf(&b, "\n- %s was the most searched condition overall with %s searches.",
			top.Title(), formatInt(bag.HealthStats[top]))
	}
	if len(bag.TopStates) > 0 {
		names := make([]string, 0, len(bag.TopStates))
		for _, sv := range bag.TopStates {
			names = append(names, sv.State)
		}
		fmt.Fprintf(&b, "\n- Cancer search interest was highest in %s.", strings.Join(names, ", "))
	}
	for _, p := range bag.Correlations {
		if p.R == nil {
			continue
		}
		fmt.Fprintf(&b, "\n- %s and %s searches show a correlation of %.2f.",
			p.A.Title(), p.B.Title(), *p.R)
	}
	b.WriteString("\n- Search interest in most conditions grew substantially between 2004 and 2017, " +
		"with seasonal spikes tied to awareness campaigns and flu season.")

	summary := fmt.Sprintf("Findings built from %d condition totals and %d correlations",
		len(bag.HealthStats), len(bag.Correlations))
	return b.String(), summary
}

func stateText(e Entities, bag DataBag) (string, string) {
	name := titleWords(e.State)
	if len(bag.StateSeries) == 0 {
		return fmt.Sprintf("I don't have search data for %s. Try one of the larger states such as "+
			"California, Texas, or New York.", name), ""
	}

	var total int64
	for _, yv := range bag.StateSeries {
		total += yv.Volume
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In %s we recorded %s health-related searches between %d and %d.",
		name, formatInt(total), bag.StateSeries[0].Year, bag.StateSeries[len(bag.StateSeries)-1].Year)
	if g := growthRate(bag.StateSeries); g != 0 {
		fmt.Fprintf(&b, " Search interest changed by %.1f%% over that period.", g)
	}
	if e.Condition != nil {
		fmt.Fprintf(&b, " These figures cover %s searches specifically.", e.Condition.Title())
	} else {
		b.WriteString(" These figures sum all nine tracked conditions.")
	}

	summary := fmt.Sprintf("Yearly series for %s with %d points", name, len(bag.StateSeries))
	return b.String(), summary
}

func cityText(e Entities, bag DataBag) (string, string) {
	name := titleWords(e.City)
	if len(bag.CitySeries) == 0 {
		return fmt.Sprintf("I don't have search data for %s. The dataset covers major US metropolitan "+
			"areas; try New York City, Los Angeles, or Chicago.", name), ""
	}

	var total int64
	for _, yv := range bag.CitySeries {
		total += yv.Volume
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In %s we recorded %s health-related searches between %d and %d across all nine conditions.",
		name, formatInt(total), bag.CitySeries[0].Year, bag.CitySeries[len(bag.CitySeries)-1].Year)
	if g := growthRate(bag.CitySeries); g != 0 {
		fmt.Fprintf(&b, " Search interest changed by %.1f%% over that period.", g)
	}

	summary := fmt.Sprintf("Yearly series for %s with %d points", name, len(bag.CitySeries))
	return b.String(), summary
}

func correlationText(bag DataBag) (string, string) {
	var b strings.Builder
	b.WriteString("We computed Pearson correlations between condition search volumes over every " +
		"location-year observation.")

	rendered := 0
	for _, p := range bag.Correlations {
		if p.R == nil {
			continue
		}
		fmt.Fprintf(&b, "\n\n- %s vs %s: r = %.2f (%s)",
			p.A.Title(), p.B.Title(), *p.R, correlationStrength(*p.R))
		rendered++
	}
	if rendered == 0 {
		b.WriteString(" The correlation figures are not available right now; ask about key findings " +
			"or a specific condition instead.")
	} else {
		b.WriteString("\n\nThe diabetes-depression link is one of the strongest patterns in the data, " +
			"consistent with clinical research connecting metabolic and mental health.")
	}

	return b.String(), fmt.Sprintf("%d correlation pairs computed", rendered)
}

func correlationStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return "strong"
	case abs >= 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

func timeSeriesText(bag DataBag) (string, string) {
	if len(bag.TimeSeries) == 0 {
		return "The time-series data is not available right now. Try asking about a specific " +
			"condition or state instead.", ""
	}

	first := bag.TimeSeries[0]
	last := bag.TimeSeries[len(bag.TimeSeries)-1]

	var peak models.YearVolume
	for _, yv := range bag.TimeSeries {
		if yv.Volume > peak.Volume {
			peak = yv
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Across all nine conditions, search volume went from %s in %d to %s in %d.",
		formatInt(first.Volume), first.Year, formatInt(last.Volume), last.Year)
	if g := growthRate(bag.TimeSeries); g != 0 {
		fmt.Fprintf(&b, " That is a %.1f%% change over the period.", g)
	}
	fmt.Fprintf(&b, " The peak year was %d with %s searches.", peak.Year, formatInt(peak.Volume))

	return b.String(), fmt.Sprintf("National yearly series with %d points", len(bag.TimeSeries))
}

func metricsText(bag DataBag) (string, string) {
	if len(bag.HealthStats) == 0 {
		return "The aggregate metrics are not available right now. Try asking about a specific " +
			"condition instead.", ""
	}

	var total int64
	top := trends.AllConditions[0]
	for _, c := range trends.AllConditions {
		total += bag.HealthStats[c]
		if bag.HealthStats[c] > bag.HealthStats[top] {
			top = c
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The dataset holds %s health-related searches across nine conditions, 2004-2017. ",
		formatInt(total))
	fmt.Fprintf(&b, "%s leads with %s searches.", top.Title(), formatInt(bag.HealthStats[top]))
	if len(bag.TopStates) > 0 {
		fmt.Fprintf(&b, " By state, cancer interest peaks in %s.", bag.TopStates[0].State)
	}
	b.WriteString("\n\nPer-condition totals:\n")
	for _, c := range trends.AllConditions {
		fmt.Fprintf(&b, "\n- %s: %s", c.Title(), formatInt(bag.HealthStats[c]))
	}

	return b.String(), fmt.Sprintf("Aggregated totals for %d conditions", len(bag.HealthStats))
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

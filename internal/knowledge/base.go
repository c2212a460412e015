package knowledge

// Category is a response category label. Exactly one is chosen per question.
type Category string

const (
	CategoryGreeting            Category = "greeting"
	CategoryFarewell            Category = "farewell"
	CategoryThanks              Category = "thanks"
	CategoryHelp                Category = "help"
	CategoryProjectOverview     Category = "project_overview"
	CategoryDataSources         Category = "data_sources"
	CategoryHealthConditions    Category = "health_conditions"
	CategorySpecificCondition   Category = "specific_condition"
	CategoryMethodology         Category = "methodology"
	CategoryKeyFindings         Category = "key_findings"
	CategoryStateAnalysis       Category = "state_analysis"
	CategoryCityAnalysis        Category = "city_analysis"
	CategoryTeamMembers         Category = "team_members"
	CategorySpecificMember      Category = "specific_member"
	CategoryCorrelationAnalysis Category = "correlation_analysis"
	CategoryTimeSeries          Category = "time_series"
	CategoryMetricsInsights     Category = "metrics_insights"
)

// AllCategories lists every category the classifier can return.
var AllCategories = []Category{
	CategoryGreeting,
	CategoryFarewell,
	CategoryThanks,
	CategoryHelp,
	CategoryProjectOverview,
	CategoryDataSources,
	CategoryHealthConditions,
	CategorySpecificCondition,
	CategoryMethodology,
	CategoryKeyFindings,
	CategoryStateAnalysis,
	CategoryCityAnalysis,
	CategoryTeamMembers,
	CategorySpecificMember,
	CategoryCorrelationAnalysis,
	CategoryTimeSeries,
	CategoryMetricsInsights,
}

// Entry describes one knowledge-base category: its display title, grouping,
// and the keyword/alias phrases the classifier scans for.
type Entry struct {
	Category Category
	Title    string
	Group    string
	Keywords []string
	Aliases  []string
}

// Entries is scanned in declaration order by the classifier; the first
// category whose keyword or alias appears in the question wins.
var Entries = []Entry{
	{
		Category: CategoryGreeting,
		Title:    "Greeting",
		Group:    "greeting",
		Keywords: []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon", "good evening"},
		Aliases:  []string{"hi there", "hello there"},
	},
	{
		Category: CategoryFarewell,
		Title:    "Farewell",
		Group:    "greeting",
		Keywords: []string{"bye", "goodbye", "see you", "farewell", "take care"},
		Aliases:  []string{"bye bye", "cya"},
	},
	{
		Category: CategoryThanks,
		Title:    "Thanks",
		Group:    "greeting",
		Keywords: []string{"thanks", "thank you", "appreciate", "grateful"},
		Aliases:  []string{"thx", "ty"},
	},
	{
		Category: CategoryHelp,
		Title:    "Help",
		Group:    "general",
		Keywords: []string{"help", "assist", "support", "guide", "what can you do", "capabilities"},
		Aliases:  []string{"how to use"},
	},
	{
		Category: CategoryDataSources,
		Title:    "Data Sources",
		Group:    "project",
		Keywords: []string{"data source", "sources", "google trends", "cdc", "dataset", "data collection", "where data"},
		Aliases:  []string{"where data from", "data origin"},
	},
	{
		Category: CategoryHealthConditions,
		Title:    "Health Conditions",
		Group:    "project",
		Keywords: []string{"conditions", "diseases", "health issues", "what conditions", "list conditions", "health topics"},
		Aliases:  []string{"medical conditions", "diseases analyzed"},
	},
	{
		Category: CategoryCorrelationAnalysis,
		Title:    "Correlation Analysis",
		Group:    "analysis",
		Keywords: []string{"correlation", "relationship", "linked", "associated", "pearson", "coefficient", "correlate"},
		Aliases:  []string{"how related"},
	},
	{
		Category: CategoryTimeSeries,
		Title:    "Time Series",
		Group:    "analysis",
		Keywords: []string{"time series", "trend", "over time", "yearly", "historical", "timeline"},
		Aliases:  []string{"trend over time", "historical trend"},
	},
	{
		Category: CategoryCityAnalysis,
		Title:    "City Analysis",
		Group:    "project",
		Keywords: []string{"city", "metropolitan", "urban"},
		Aliases:  []string{"by city", "city data"},
	},
	{
		Category: CategoryKeyFindings,
		Title:    "Key Findings",
		Group:    "project",
		Keywords: []string{"findings", "results", "insights", "discoveries", "key results", "conclusions", "outcomes"},
		Aliases:  []string{"what found", "what did you find"},
	},
	{
		Category: CategoryMethodology,
		Title:    "Methodology",
		Group:    "project",
		Keywords: []string{"methodology", "analysis method", "approach", "technique", "procedure", "how it works"},
		Aliases:  []string{"how done", "process"},
	},
	{
		Category: CategoryTeamMembers,
		Title:    "Team Members",
		Group:    "team",
		Keywords: []string{"team", "members", "who worked", "contributors", "creators", "developers"},
		Aliases:  []string{"who made this", "project team"},
	},
	{
		Category: CategoryMetricsInsights,
		Title:    "Metrics & Insights",
		Group:    "analysis",
		Keywords: []string{"metric", "statistic", "how many", "total searches", "numbers"},
		Aliases:  []string{"search volume"},
	},
	{
		Category: CategoryProjectOverview,
		Title:    "Project Overview",
		Group:    "project",
		Keywords: []string{"project", "overview", "dashboard", "purpose", "goal", "what is this", "about"},
		Aliases:  []string{"project info", "about project"},
	},
}

// Titles for categories not driven by keyword entries.
var extraTitles = map[Category]string{
	CategorySpecificCondition: "Specific Health Condition",
	CategoryStateAnalysis:     "State Analysis",
	CategorySpecificMember:    "Specific Team Member",
}

var extraGroups = map[Category]string{
	CategorySpecificCondition: "project",
	CategoryStateAnalysis:     "project",
	CategorySpecificMember:    "team",
}

// TitleFor returns the display title for a category.
func TitleFor(c Category) string {
	for _, e := range Entries {
		if e.Category == c {
			return e.Title
		}
	}
	if t, ok := extraTitles[c]; ok {
		return t
	}
	return "Information"
}

// GroupFor returns the coarse grouping label for a category.
func GroupFor(c Category) string {
	for _, e := range Entries {
		if e.Category == c {
			return e.Group
		}
	}
	if g, ok := extraGroups[c]; ok {
		return g
	}
	return "general"
}

// States scanned by the entity extractor, in fixed priority order.
var States = []string{
	"california", "texas", "new york", "florida", "illinois", "pennsylvania",
	"ohio", "georgia", "north carolina", "michigan", "new jersey", "virginia",
	"washington", "arizona", "massachusetts", "tennessee", "indiana", "missouri",
	"maryland", "wisconsin", "colorado", "minnesota", "south carolina", "alabama",
	"louisiana", "kentucky", "oregon", "oklahoma", "connecticut", "iowa",
}

// Cities scanned by the entity extractor. New York City precedes the state
// list check only by phrase length, so it stays first here.
var Cities = []string{
	"new york city", "los angeles", "chicago", "houston", "phoenix",
	"philadelphia", "san antonio", "san diego", "dallas", "san jose",
}

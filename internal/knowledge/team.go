package knowledge

// TeamMember is a static directory record. Never mutated at runtime.
type TeamMember struct {
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Expertise     []string `json:"expertise"`
	Contributions []string `json:"contributions"`
	Tools         []string `json:"tools"`
	Bio           string   `json:"bio"`
	LinkedIn      string   `json:"linkedin"`
	GitHub        string   `json:"github"`
}

// teamDirectory lists members in presentation order.
var teamDirectory = []TeamMember{
	{
		Name:          "Ermias Gaga",
		Role:          "Data Scientist & Researcher (Project Lead)",
		Expertise:     []string{"Data Analytics", "Cognitive Science", "Psychology", "Quantitative Methods"},
		Contributions: []string{"Data processing", "Statistical analysis", "Visualization development", "Project coordination"},
		Tools:         []string{"Python", "SQL", "D3.js", "Tableau", "Statistical Modeling"},
		Bio:           "Data-driven researcher with expertise in analytics, cognitive science, and psychology.",
		LinkedIn:      "https://www.linkedin.com/in/ermiasgaga/",
		GitHub:        "https://github.com/ErmiasGaga",
	},
	{
		Name:          "Amanda Qianyue Ma",
		Role:          "Economics & Analytics Specialist",
		Expertise:     []string{"Economics", "Psychology", "Philosophy", "Data Analysis"},
		Contributions: []string{"Economic analysis", "Data interpretation", "Research methodology", "Documentation"},
		Tools:         []string{"Python", "R", "Excel", "Statistical Analysis"},
		Bio:           "Economics and psychology background with strong analytical and critical thinking skills.",
		LinkedIn:      "https://www.linkedin.com/in/amandaqianyuema/",
		GitHub:        "https://github.com/AmandaMa77",
	},
	{
		Name:          "Amos Johnson",
		Role:          "Data Journalist & Analyst",
		Expertise:     []string{"Data Journalism", "Storytelling", "Research", "Writing"},
		Contributions: []string{"Data storytelling", "Report writing", "User experience design", "Content creation"},
		Tools:         []string{"Python", "SQL", "D3.js", "Data Visualization", "Storyboarding"},
		Bio:           "Journalism graduate specializing in data storytelling and visualization.",
		LinkedIn:      "https://www.linkedin.com/in/amosjohnson/",
		GitHub:        "https://github.com/AmosJohnson",
	},
	{
		Name:          "Adedamola Atekoja",
		Role:          "Chartered Accountant & Data Analyst",
		Expertise:     []string{"Financial Analysis", "Accounting", "Data Analytics", "Project Management"},
		Contributions: []string{"Financial modeling", "Data validation", "Quality assurance", "Project planning"},
		Tools:         []string{"Excel", "VBA", "Python", "SQL", "Tableau"},
		Bio:           "Chartered accountant with consulting experience at Big Four firms.",
		LinkedIn:      "https://www.linkedin.com/in/damola-atekoja/",
		GitHub:        "https://github.com/DamolaAtekoja",
	},
	{
		Name:          "Maria Lorena",
		Role:          "Project Manager & Data Analyst",
		Expertise:     []string{"Project Management", "Data Analysis", "Multilingual Communication", "Customer Service"},
		Contributions: []string{"Project coordination", "Team management", "Stakeholder communication", "Process optimization"},
		Tools:         []string{"Project Management Tools", "Python", "SQL", "Data Analysis"},
		Bio:           "An experienced trilingual Project Manager focusing on data analysis projects.",
		LinkedIn:      "https://www.linkedin.com/in/marialorena-nunez/",
		GitHub:        "https://github.com/MariaLoren",
	},
}

// memberAliases maps lower-case name fragments to the canonical member name.
var memberAliases = map[string]string{
	"ermias":    "Ermias Gaga",
	"gaga":      "Ermias Gaga",
	"amanda":    "Amanda Qianyue Ma",
	"qianyue":   "Amanda Qianyue Ma",
	"amos":      "Amos Johnson",
	"johnson":   "Amos Johnson",
	"damola":    "Adedamola Atekoja",
	"adedamola": "Adedamola Atekoja",
	"atekoja":   "Adedamola Atekoja",
	"maria":     "Maria Lorena",
	"lorena":    "Maria Lorena",
}

// Team returns the full directory in presentation order.
func Team() []TeamMember {
	return teamDirectory
}

// MemberAliasKeys returns the alias fragments scanned by the entity
// extractor, in a stable order.
var MemberAliasKeys = []string{
	"ermias", "gaga", "amanda", "qianyue", "amos", "johnson",
	"damola", "adedamola", "atekoja", "maria", "lorena",
}

// ResolveMember maps an alias fragment to the canonical member record.
func ResolveMember(alias string) (TeamMember, bool) {
	name, ok := memberAliases[alias]
	if !ok {
		return TeamMember{}, false
	}
	for _, m := range teamDirectory {
		if m.Name == name {
			return m, true
		}
	}
	return TeamMember{}, false
}

package knowledge

import "github.com/eagle-health/analytics-backend/internal/trends"

// ConditionInfo is static reference material for one tracked condition.
// Loaded once at process start, never mutated.
type ConditionInfo struct {
	Definition    string
	RiskFactors   string
	SearchPattern string
}

var conditionInfo = map[trends.Condition]ConditionInfo{
	trends.Cancer: {
		Definition:    "Cancer refers to a group of diseases involving abnormal cell growth with the potential to invade or spread to other parts of the body.",
		RiskFactors:   "Age, family history, tobacco use, alcohol, obesity, radiation exposure",
		SearchPattern: "Consistently highest searched condition across all states",
	},
	trends.Cardiovascular: {
		Definition:    "Cardiovascular disease covers conditions affecting the heart and blood vessels, including coronary artery disease, arrhythmia, and heart failure.",
		RiskFactors:   "High blood pressure, high cholesterol, smoking, diabetes, physical inactivity",
		SearchPattern: "Higher search interest in states with older populations",
	},
	trends.Stroke: {
		Definition:    "A stroke occurs when blood supply to part of the brain is interrupted or reduced, depriving brain tissue of oxygen and nutrients.",
		RiskFactors:   "High blood pressure, smoking, diabetes, atrial fibrillation, obesity",
		SearchPattern: "Search spikes following public awareness campaigns",
	},
	trends.Depression: {
		Definition:    "Depression is a common mental disorder characterized by persistent sadness, loss of interest, and decreased energy.",
		RiskFactors:   "Family history, chronic illness, major life changes, substance use",
		SearchPattern: "Increasing search trend, especially in northern states during winter",
	},
	trends.Rehab: {
		Definition:    "Rehabilitation encompasses treatment programs that help people recover from injury, illness, surgery, or substance dependence.",
		RiskFactors:   "Substance use disorders, injury, post-surgical recovery needs",
		SearchPattern: "Consistent year-round search patterns",
	},
	trends.Vaccine: {
		Definition:    "Vaccines are biological preparations that provide active acquired immunity to particular infectious diseases.",
		RiskFactors:   "Not applicable; searches track immunization interest and seasonal outbreaks",
		SearchPattern: "Seasonal peaks coinciding with flu season",
	},
	trends.Diarrhea: {
		Definition:    "Diarrhea is a gastrointestinal condition marked by loose, watery stools, commonly caused by infection or foodborne illness.",
		RiskFactors:   "Contaminated food or water, viral and bacterial infection, medication side effects",
		SearchPattern: "Summer peaks, likely related to foodborne illnesses",
	},
	trends.Obesity: {
		Definition:    "Obesity is a complex disease involving excessive body fat that increases the risk of other health problems.",
		RiskFactors:   "Diet, physical inactivity, genetics, certain medications",
		SearchPattern: "Seasonal search patterns with peaks in January",
	},
	trends.Diabetes: {
		Definition:    "Diabetes is a metabolic disease that causes high blood sugar due to insufficient insulin production or ineffective use of insulin.",
		RiskFactors:   "Family history, obesity, physical inactivity, age",
		SearchPattern: "Shows strong correlation with depression and obesity searches",
	},
}

// ConditionDetails returns the reference record for a condition, with ok
// reporting whether the condition is known.
func ConditionDetails(c trends.Condition) (ConditionInfo, bool) {
	info, ok := conditionInfo[c]
	return info, ok
}

// ConditionAlias maps an alias phrase to its canonical condition.
type ConditionAlias struct {
	Phrase    string
	Condition trends.Condition
}

// conditionAliases is checked after the exact-name scan, in declared order.
var conditionAliases = []ConditionAlias{
	{"tumor", trends.Cancer},
	{"malignancy", trends.Cancer},
	{"oncology", trends.Cancer},
	{"heart", trends.Cardiovascular},
	{"cardiac", trends.Cardiovascular},
	{"brain attack", trends.Stroke},
	{"cerebrovascular", trends.Stroke},
	{"mental health", trends.Depression},
	{"rehabilitation", trends.Rehab},
	{"recovery", trends.Rehab},
	{"vaccination", trends.Vaccine},
	{"immunization", trends.Vaccine},
	{"gastrointestinal", trends.Diarrhea},
	{"overweight", trends.Obesity},
	{"bmi", trends.Obesity},
	{"blood sugar", trends.Diabetes},
	{"diabetic", trends.Diabetes},
}

// ConditionAliases returns the alias table in scan order.
func ConditionAliases() []ConditionAlias {
	return conditionAliases
}

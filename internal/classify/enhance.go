package classify

// hints maps a category to keywords appended to the query before embedding,
// pulling the vector search toward the right semantic neighborhood.
// CategoryGeneral has no entry on purpose: general queries pass through
// unchanged (and the zero-hit fallback retry reuses the raw query).
var hints = map[Category]string{
	CategoryCrisis:        "crisis emergency urgent help immediate",
	CategoryCravings:      "coping strategies techniques manage handle urges",
	CategoryRelapse:       "relapse prevention recovery setback support",
	CategoryTriggers:      "triggers situations avoidance coping",
	CategoryWithdrawal:    "withdrawal symptoms management medical support",
	CategoryHelp:          "support resources professional services help",
	CategoryMedication:    "treatment medication therapy professional medical",
	CategorySubstances:    "substance use health effects reduction",
	CategoryCoping:        "coping strategies techniques manage handle",
	CategoryRecovery:      "recovery maintenance motivation support",
	CategoryHarmReduction: "harm reduction moderation safer habits",
	CategoryMentalHealth:  "mental health wellness support professional",
	CategoryPhysical:      "physical health habits exercise sleep nutrition",
}

// Enhance appends the category's hint keywords to the query,
// space-separated. Categories without hints return the query unchanged.
func Enhance(query string, category Category) string {
	h, ok := hints[category]
	if !ok {
		return query
	}
	return query + " " + h
}

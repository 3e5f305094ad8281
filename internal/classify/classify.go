// Package classify assigns a coarse topic category to user queries.
//
// The category decides whether professional-resource retrieval is needed and
// which keyword hints bias the semantic search. Classification is
// keyword-driven: a fixed priority-ordered table of categories is scanned and
// the first category whose trigger appears in the query wins. Queries that
// match nothing fall back to CategoryGeneral, which means "plain conversation,
// no retrieval".
//
// The keyword table and its order are domain data, not logic. Changing the
// order changes tie-breaking for queries that mention several topics at once
// (a crisis mention must always win), so the table is kept as a single
// auditable slice rather than spread across conditionals.
package classify

import "strings"

// Category is a coarse topic tag for a user query.
type Category string

// Categories in priority order, most urgent first.
const (
	CategoryCrisis        Category = "crisis"
	CategoryCravings      Category = "cravings"
	CategoryRelapse       Category = "relapse"
	CategoryTriggers      Category = "triggers"
	CategoryWithdrawal    Category = "withdrawal"
	CategoryHelp          Category = "help"
	CategoryMedication    Category = "medication"
	CategorySubstances    Category = "substances"
	CategoryCoping        Category = "coping"
	CategoryRecovery      Category = "recovery"
	CategoryHarmReduction Category = "harm_reduction"
	CategoryMentalHealth  Category = "mental_health"
	CategoryPhysical      Category = "physical"

	// CategoryGeneral is the default when no trigger matches. General queries
	// skip retrieval entirely.
	CategoryGeneral Category = "general"
)

// rule pairs a category with the substrings that trigger it.
type rule struct {
	category Category
	triggers []string
}

// rules is scanned in order; the first matching category wins. Crisis
// language must stay first regardless of what else the query mentions.
var rules = []rule{
	{CategoryCrisis, []string{
		"suicide", "suicidal", "kill myself", "end my life", "end it all",
		"self-harm", "self harm", "hurt myself", "hurting myself",
		"want to die", "overdose", "overdosing",
	}},
	{CategoryCravings, []string{
		"craving", "cravings", "urge to", "urges", "strong urge",
		"tempted", "temptation", "dying for a", "really need a",
	}},
	{CategoryRelapse, []string{
		"relapse", "relapsed", "relapsing", "slipped up", "slip up",
		"fell off", "broke my streak", "used again", "started smoking again",
		"started drinking again",
	}},
	{CategoryTriggers, []string{
		"trigger", "triggers", "triggered", "can't resist when",
		"whenever i see", "whenever i'm around",
	}},
	{CategoryWithdrawal, []string{
		"withdrawal", "withdrawals", "detox", "shakes", "shaking",
		"cold sweats", "can't sleep since quitting", "irritable since",
	}},
	{CategoryHelp, []string{
		"need help", "get help", "find help", "hotline", "helpline",
		"support group", "support groups", "who can i talk to",
		"where can i go",
	}},
	{CategoryMedication, []string{
		"medication", "medications", "medicine", "prescription",
		"nicotine patch", "nicotine patches", "nicotine gum",
		"naltrexone", "methadone", "buprenorphine",
	}},
	{CategorySubstances, []string{
		"alcohol", "drinking", "drink too much", "smoking", "smoke",
		"cigarette", "cigarettes", "vaping", "vape", "nicotine",
		"weed", "marijuana", "cannabis", "drugs", "caffeine", "junk food",
	}},
	{CategoryCoping, []string{
		"cope", "coping", "deal with", "dealing with", "how do i handle",
		"how to handle", "how to manage", "strategies", "techniques",
	}},
	{CategoryRecovery, []string{
		"recovery", "recovering", "sober", "sobriety", "stay clean",
		"staying clean", "quit", "quitting", "my streak", "staying on track",
	}},
	{CategoryHarmReduction, []string{
		"cut back", "cut down", "cutting back", "cutting down", "reduce",
		"moderation", "drink less", "smoke less", "safer way",
	}},
	{CategoryMentalHealth, []string{
		"anxiety", "anxious", "depressed", "depression", "stressed",
		"stress", "panic", "lonely", "loneliness", "overwhelmed",
		"mental health",
	}},
	{CategoryPhysical, []string{
		"sleep", "insomnia", "exercise", "workout", "working out",
		"nutrition", "diet", "eating", "hydration", "tired", "energy",
		"headache", "weight",
	}},
}

// Classify maps a free-text query to exactly one category. It is total over
// all strings: matching is case-insensitive substring containment, and
// queries that trigger nothing return CategoryGeneral.
func Classify(query string) Category {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(q, trigger) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}

// NeedsRetrieval reports whether queries of this category should be answered
// with retrieved professional resources.
func (c Category) NeedsRetrieval() bool {
	return c != CategoryGeneral
}

// Categories returns all categories in priority order, general last.
// Exposed for tests and for auditing the taxonomy.
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, CategoryGeneral)
}

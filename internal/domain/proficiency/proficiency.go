package proficiency

import "strings"

// Level is the canonical five-step rating scale used by every assessment.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelDeveloping   Level = "developing"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// AllLevels lists the scale from lowest to highest.
var AllLevels = []Level{
	LevelBeginner,
	LevelDeveloping,
	LevelIntermediate,
	LevelAdvanced,
	LevelExpert,
}

// Info carries the presentation tuple for one level.
type Info struct {
	Numeric     int    `json:"numeric"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var levelInfo = map[Level]Info{
	LevelBeginner:     {1, "#ef4444", "seedling", "Has foundational awareness and works under guidance"},
	LevelDeveloping:   {2, "#f97316", "trending-up", "Applies the skill with regular support"},
	LevelIntermediate: {3, "#eab308", "gauge", "Works independently on routine tasks"},
	LevelAdvanced:     {4, "#22c55e", "award", "Handles complex work and coaches others"},
	LevelExpert:       {5, "#3b82f6", "star", "Recognized authority who shapes practice"},
}

// aliases maps accepted synonyms and numeric tokens onto canonical levels.
var aliases = map[string]Level{
	"1": LevelBeginner, "novice": LevelBeginner, "basic": LevelBeginner,
	"2": LevelDeveloping, "learning": LevelDeveloping, "elementary": LevelDeveloping,
	"3": LevelIntermediate, "proficient": LevelIntermediate, "competent": LevelIntermediate,
	"4": LevelAdvanced, "skilled": LevelAdvanced,
	"5": LevelExpert, "master": LevelExpert,
}

// Parse maps a rating token to a canonical level. Unknown or empty input
// falls back to the lowest level instead of failing, so imported data with
// stray labels still lands on the scale.
func Parse(token string) Level {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return LevelBeginner
	}
	for _, level := range AllLevels {
		if normalized == string(level) {
			return level
		}
	}
	if level, ok := aliases[normalized]; ok {
		return level
	}
	return LevelBeginner
}

// IsValid reports whether the value is a canonical level name.
func IsValid(level Level) bool {
	_, ok := levelInfo[level]
	return ok
}

// Numeric returns the 1..5 position of the level. Values outside the
// catalog count as the lowest level, mirroring Parse.
func (l Level) Numeric() int {
	if info, ok := levelInfo[l]; ok {
		return info.Numeric
	}
	return 1
}

// Describe returns the presentation tuple for the level.
func (l Level) Describe() Info {
	if info, ok := levelInfo[l]; ok {
		return info
	}
	return levelInfo[LevelBeginner]
}

// Compare returns -1, 0 or 1 as a is below, at or above b.
func Compare(a, b Level) int {
	switch {
	case a.Numeric() < b.Numeric():
		return -1
	case a.Numeric() > b.Numeric():
		return 1
	}
	return 0
}

// MeetsRequirement reports whether the actual level satisfies the
// required one.
func MeetsRequirement(actual, required Level) bool {
	return actual.Numeric() >= required.Numeric()
}

// Gap returns required minus actual in scale steps. Positive means
// deficient, zero meets, negative exceeds.
func Gap(actual, required Level) int {
	return required.Numeric() - actual.Numeric()
}

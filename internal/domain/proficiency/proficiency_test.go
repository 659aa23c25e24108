package proficiency

import (
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Level
	}{
		{"beginner", LevelBeginner},
		{"Expert", LevelExpert},
		{"  INTERMEDIATE  ", LevelIntermediate},
		{"1", LevelBeginner},
		{"3", LevelIntermediate},
		{"5", LevelExpert},
		{"novice", LevelBeginner},
		{"basic", LevelBeginner},
		{"learning", LevelDeveloping},
		{"proficient", LevelIntermediate},
		{"competent", LevelIntermediate},
		{"skilled", LevelAdvanced},
		{"master", LevelExpert},
		{"", LevelBeginner},
		{"   ", LevelBeginner},
		{"wizard", LevelBeginner},
		{"0", LevelBeginner},
		{"6", LevelBeginner},
	}
	for _, c := range cases {
		got := Parse(c.input)
		if got != c.want {
			t.Errorf("Parse(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	for _, level := range AllLevels {
		n := level.Numeric()
		if n < 1 || n > 5 {
			t.Errorf("Numeric(%q) = %d, want 1..5", level, n)
		}
	}
	if got := Level("unknown").Numeric(); got != 1 {
		t.Errorf("Numeric(unknown) = %d, want 1", got)
	}
}

func TestNumericStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(AllLevels); i++ {
		if AllLevels[i].Numeric() != AllLevels[i-1].Numeric()+1 {
			t.Errorf("levels %q and %q are not consecutive", AllLevels[i-1], AllLevels[i])
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b Level
		want int
	}{
		{LevelBeginner, LevelExpert, -1},
		{LevelExpert, LevelBeginner, 1},
		{LevelAdvanced, LevelAdvanced, 0},
		{LevelDeveloping, LevelIntermediate, -1},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMeetsRequirementAndGap(t *testing.T) {
	cases := []struct {
		actual, required Level
		meets            bool
		gap              int
	}{
		{LevelExpert, LevelIntermediate, true, -2},
		{LevelIntermediate, LevelIntermediate, true, 0},
		{LevelBeginner, LevelAdvanced, false, 3},
		{LevelDeveloping, LevelExpert, false, 3},
	}
	for _, c := range cases {
		if got := MeetsRequirement(c.actual, c.required); got != c.meets {
			t.Errorf("MeetsRequirement(%q, %q) = %v, want %v", c.actual, c.required, got, c.meets)
		}
		if got := Gap(c.actual, c.required); got != c.gap {
			t.Errorf("Gap(%q, %q) = %d, want %d", c.actual, c.required, got, c.gap)
		}
	}

	// gap and meetsRequirement must agree: gap <= 0 exactly when requirement met
	for _, a := range AllLevels {
		for _, r := range AllLevels {
			if MeetsRequirement(a, r) != (Gap(a, r) <= 0) {
				t.Errorf("gap/meets disagree for actual=%q required=%q", a, r)
			}
		}
	}
}

func TestDescribe(t *testing.T) {
	for _, level := range AllLevels {
		info := level.Describe()
		if info.Color == "" || info.Icon == "" || info.Description == "" {
			t.Errorf("Describe(%q) has empty fields: %+v", level, info)
		}
	}
	if got := Level("bogus").Describe(); got.Numeric != 1 {
		t.Errorf("Describe(bogus).Numeric = %d, want 1", got.Numeric)
	}
}

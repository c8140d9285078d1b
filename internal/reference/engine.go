package reference

import (
	"bytes"
	"encoding/json"
	"math"
)

// AgeGroup identifies the age stratum a range applies to.
type AgeGroup string

// Supported age groups.
const (
	AgeChild  AgeGroup = "child"
	AgeTeen   AgeGroup = "teen"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
	AgeCustom AgeGroup = "custom"
)

// GenderAny marks a range that applies regardless of the patient's gender.
const GenderAny = "Any"

const (
	defaultMinAge = 0
	defaultMaxAge = 150
)

type bracket struct {
	min int
	max int
}

var brackets = map[AgeGroup]bracket{
	AgeChild:  {0, 12},
	AgeTeen:   {13, 19},
	AgeAdult:  {20, 64},
	AgeSenior: {65, math.MaxInt},
}

// Bound is a decimal value kept in its textual form. It decodes from JSON strings and numbers.
type Bound string

// UnmarshalJSON accepts "70", 70 and null.
func (b *Bound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Bound(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = Bound(n.String())
	return nil
}

// Range is a clinical reference interval for one age/gender stratum.
type Range struct {
	AgeGroup AgeGroup `json:"ageGroup"`
	Gender   string   `json:"gender"`
	MinAge   *int     `json:"minAge,omitempty"`
	MaxAge   *int     `json:"maxAge,omitempty"`
	MinValue Bound    `json:"minValue"`
	MaxValue Bound    `json:"maxValue"`
}

// Demographics carries the patient attributes used for range selection.
type Demographics struct {
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

// Rule names the selection step that produced a range.
type Rule string

// Selection steps, in priority order.
const (
	RuleExact        Rule = "exact"
	RuleAgeOnly      Rule = "age_only"
	RuleAdultGender  Rule = "adult_gender"
	RuleAdultDefault Rule = "adult_default"
	RuleFirst        Rule = "first"
	RuleNone         Rule = "none"
)

// Selection is the outcome of range resolution. Index is -1 when Range is nil.
type Selection struct {
	Range *Range
	Index int
	Rule  Rule
}

// Resolve returns the single applicable range or nil when ranges is empty.
func Resolve(ranges []Range, d Demographics) *Range {
	return Select(ranges, d).Range
}

// Select applies the fallback chain and reports which step matched.
func Select(ranges []Range, d Demographics) Selection {
	if len(ranges) == 0 {
		return Selection{Index: -1, Rule: RuleNone}
	}
	steps := []struct {
		rule  Rule
		match func(Range) bool
	}{
		{RuleExact, func(r Range) bool { return ageMatches(r, d) && genderMatches(r, d) }},
		{RuleAgeOnly, func(r Range) bool { return ageMatches(r, d) && r.Gender == GenderAny }},
		{RuleAdultGender, func(r Range) bool {
			return isAdultAge(d) && r.AgeGroup == AgeAdult && genderMatches(r, d)
		}},
		{RuleAdultDefault, func(r Range) bool { return r.AgeGroup == AgeAdult && r.Gender == GenderAny }},
	}
	for _, step := range steps {
		for i := range ranges {
			if step.match(ranges[i]) {
				return Selection{Range: &ranges[i], Index: i, Rule: step.rule}
			}
		}
	}
	return Selection{Range: &ranges[0], Index: 0, Rule: RuleFirst}
}

func ageMatches(r Range, d Demographics) bool {
	if d.Age == nil {
		return true
	}
	age := *d.Age
	if r.AgeGroup == AgeCustom {
		lo, hi := defaultMinAge, defaultMaxAge
		if r.MinAge != nil {
			lo = *r.MinAge
		}
		if r.MaxAge != nil {
			hi = *r.MaxAge
		}
		return age >= lo && age <= hi
	}
	b, ok := brackets[r.AgeGroup]
	if !ok {
		return false
	}
	return age >= b.min && age <= b.max
}

func genderMatches(r Range, d Demographics) bool {
	if d.Gender == nil || *d.Gender == "" {
		return true
	}
	return r.Gender == GenderAny || r.Gender == *d.Gender
}

func isAdultAge(d Demographics) bool {
	if d.Age == nil {
		return false
	}
	b := brackets[AgeAdult]
	return *d.Age >= b.min && *d.Age <= b.max
}

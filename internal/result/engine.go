package result

import (
	"encoding/json"

	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/reference"
)

// Status is the Low/Normal/High verdict for a measured value.
type Status string

// Known statuses. StatusUnknown means no claim is made and serialises as null.
const (
	StatusUnknown Status = ""
	StatusLow     Status = "Low"
	StatusNormal  Status = "Normal"
	StatusHigh    Status = "High"
)

// MarshalJSON renders StatusUnknown as null.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON maps null to StatusUnknown.
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Status(raw)
	return nil
}

// Classification is the abnormality verdict for a value against a range.
type Classification struct {
	IsAbnormal bool   `json:"isAbnormal"`
	Status     Status `json:"status"`
}

// Record is the result snapshot frozen at save time.
type Record struct {
	ParameterID    int64  `json:"parameterId"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"referenceRange"`
	IsAbnormal     bool   `json:"isAbnormal"`
	Status         Status `json:"status"`
}

// Classify compares value with the range bounds. Missing or unparseable input yields no verdict.
func Classify(value string, rng *reference.Range) Classification {
	if value == "" || rng == nil {
		return Classification{}
	}
	v, ok := lab.ParseDecimal(value)
	if !ok {
		return Classification{}
	}
	lo, okLo := lab.ParseDecimal(string(rng.MinValue))
	hi, okHi := lab.ParseDecimal(string(rng.MaxValue))
	if !okLo || !okHi {
		return Classification{}
	}
	switch {
	case v < lo:
		return Classification{IsAbnormal: true, Status: StatusLow}
	case v > hi:
		return Classification{IsAbnormal: true, Status: StatusHigh}
	default:
		return Classification{Status: StatusNormal}
	}
}

// FormatRange renders the printed range text, "-" when there is no range.
func FormatRange(rng *reference.Range) string {
	if rng == nil {
		return "-"
	}
	return string(rng.MinValue) + " - " + string(rng.MaxValue)
}

// Snapshot resolves, classifies and formats a single entered value.
func Snapshot(p lab.Parameter, value string, d reference.Demographics) Record {
	rng := reference.Resolve(p.ReferenceRanges, d)
	c := Classify(value, rng)
	return Record{
		ParameterID:    p.ID,
		Value:          value,
		Unit:           p.UnitOrEmpty(),
		ReferenceRange: FormatRange(rng),
		IsAbnormal:     c.IsAbnormal,
		Status:         c.Status,
	}
}

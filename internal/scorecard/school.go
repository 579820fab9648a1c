package scorecard

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	nullValue = "NULL"

	// satMidRatio estimates the combined 25th percentile SAT from the
	// combined midpoints for schools that only report midpoints.
	satMidRatio = 0.895
	actMidRatio = 0.9

	shortNameLimit = 30
)

// Header maps lower-cased column names to their index.
type Header map[string]int

// NewHeader indexes the header row of a scorecard file.
func NewHeader(columns []string) Header {
	h := make(Header, len(columns))
	for i, c := range columns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, ok := h[key]; !ok {
			h[key] = i
		}
	}

	return h
}

// School is one row of the scorecard file.
type School struct {
	header Header
	fields []string
}

// NewSchool wraps a data row.
func NewSchool(header Header, fields []string) School {
	return School{header: header, fields: fields}
}

// String returns the raw value of a column. Missing columns and NULL
// values report ok == false.
func (s School) String(column string) (string, bool) {
	i, ok := s.header[strings.ToLower(column)]
	if !ok || i >= len(s.fields) {
		return "", false
	}

	v := strings.TrimSpace(s.fields[i])
	if v == "" || v == nullValue {
		return "", false
	}

	return v, true
}

// Float returns a numeric column. Non-numeric values such as
// "PrivacySuppressed" are treated as missing.
func (s School) Float(column string) (float64, bool) {
	raw, ok := s.String(column)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// Int returns a numeric column truncated to an int.
func (s School) Int(column string) (int, bool) {
	f, ok := s.Float(column)
	if !ok {
		return 0, false
	}

	return int(f), true
}

// UnitID is the IPEDS id used by collegescorecard.ed.gov.
func (s School) UnitID() int {
	id, _ := s.Int("UNITID")
	return id
}

// Name is the institution name.
func (s School) Name() string {
	name, _ := s.String("INSTNM")
	return name
}

// StateCode is the postal code of the school's state.
func (s School) StateCode() string {
	code, _ := s.String("STABBR")
	return code
}

// IsFourYear reports whether the school predominantly awards bachelor's degrees.
func (s School) IsFourYear() bool {
	v, ok := s.Int("PREDDEG")
	return ok && v == 3
}

// IsPublic reports whether the school is publicly controlled.
func (s School) IsPublic() bool {
	v, ok := s.Int("CONTROL")
	return ok && v == 1
}

// IsPrivate reports whether the school is private nonprofit.
func (s School) IsPrivate() bool {
	v, ok := s.Int("CONTROL")
	return ok && v == 2
}

// SAT25 returns the combined verbal and math 25th percentile SAT score.
func (s School) SAT25() (int, bool) {
	if _, ok := s.Float("SATVRMID"); !ok {
		return 0, false
	}

	v25, vok := s.Float("SATVR25")
	m25, mok := s.Float("SATMT25")
	if vok && mok {
		return int(v25 + m25), true
	}

	vMid, vok := s.Float("SATVRMID")
	mMid, mok := s.Float("SATMTMID")
	if !vok || !mok {
		return 0, false
	}

	return int(satMidRatio * (vMid + mMid)), true
}

// ACT25 returns the 25th percentile ACT composite score.
func (s School) ACT25() (int, bool) {
	if v, ok := s.Float("ACTCM25"); ok {
		return int(v), true
	}

	mid, ok := s.Float("ACTCMMID")
	if !ok {
		return 0, false
	}

	return int(actMidRatio * mid), true
}

// Score returns the 25th percentile score for the test code ("SAT" or "ACT").
func (s School) Score(test string) (int, bool) {
	if strings.EqualFold(test, "ACT") {
		return s.ACT25()
	}

	return s.SAT25()
}

// GradRate returns the pooled completion rate as a fraction.
func (s School) GradRate() (float64, bool) {
	if gr, ok := s.Float("C150_4_POOLED_SUPP"); ok {
		return gr, true
	}

	return s.Float("C200_L4_POOLED_SUPP")
}

// Cost returns the average net price for an income level (1-5).
// Level 0 is the average over all aid recipients.
func (s School) Cost(level int) (int, bool) {
	column := "NPT4"
	if level > 0 {
		column += strconv.Itoa(level)
	}

	if s.IsPublic() {
		column += "_PUB"
	} else {
		column += "_PRIV"
	}

	return s.Int(column)
}

// ShortName abbreviates the name to at most 30 characters.
func (s School) ShortName() string {
	name := s.Name()
	if utf8.RuneCountInString(name) > shortNameLimit {
		name = strings.ReplaceAll(name, "California State University-", "CSU ")
		name = strings.ReplaceAll(name, "niversity", "niv.")
		name = strings.ReplaceAll(name, "ollege", "ol.")
	}

	if utf8.RuneCountInString(name) > shortNameLimit {
		name = strings.ReplaceAll(name, "niv.", ".")
		name = strings.ReplaceAll(name, "ol.", ".")
	}

	if runes := []rune(name); len(runes) > shortNameLimit {
		name = string(runes[:shortNameLimit])
	}

	return name
}

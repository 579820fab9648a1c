package scorecard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `UNITID,INSTNM,STABBR,PREDDEG,CONTROL,SATVR25,SATMT25,SATVRMID,SATMTMID,ACTCM25,ACTCMMID,C150_4_POOLED_SUPP,C200_L4_POOLED_SUPP,NPT4_PUB,NPT4_PRIV,NPT41_PUB,NPT42_PUB,NPT43_PUB,NPT41_PRIV,NPT42_PRIV,NPT43_PRIV
1,Cheap State University,CA,3,1,350,360,400,410,18,21,0.6,NULL,9000,NULL,5000,7000,9000,NULL,NULL,NULL
2,Pricey Private College,MA,3,2,300,320,350,370,NULL,22,0.8,NULL,NULL,30000,NULL,NULL,NULL,20000,15000,25000
3,Midpoint Only Institute,TX,3,2,NULL,NULL,400,400,NULL,NULL,PrivacySuppressed,0.5,NULL,NULL,NULL,NULL,NULL,8000,9000,10000
4,Low Grad College,NY,3,2,350,350,400,400,NULL,NULL,0.2,NULL,NULL,NULL,NULL,NULL,NULL,4000,4000,4000
5,Community College,CA,2,1,350,350,400,400,NULL,NULL,0.5,NULL,NULL,NULL,1000,1000,1000,NULL,NULL,NULL
6,For Profit U,AZ,3,3,350,350,400,400,NULL,NULL,0.5,NULL,NULL,NULL,NULL,NULL,NULL,1000,1000,1000
7,No Scores College,OH,3,2,NULL,NULL,NULL,NULL,NULL,NULL,0.5,NULL,NULL,NULL,NULL,NULL,NULL,1000,1000,1000
`

func readTestSchools(t *testing.T) []School {
	t.Helper()
	schools, err := Read(strings.NewReader(testCSV))
	require.NoError(t, err)
	require.Len(t, schools, 7)
	return schools
}

func TestRead_HeaderAndAccessors(t *testing.T) {
	schools := readTestSchools(t)
	s := schools[0]

	assert.Equal(t, 1, s.UnitID())
	assert.Equal(t, "Cheap State University", s.Name())
	assert.Equal(t, "CA", s.StateCode())
	assert.True(t, s.IsFourYear())
	assert.True(t, s.IsPublic())
	assert.False(t, s.IsPrivate())

	name, ok := s.String("instnm")
	assert.True(t, ok)
	assert.Equal(t, "Cheap State University", name)

	_, ok = s.String("NOT_A_COLUMN")
	assert.False(t, ok)
}

func TestRead_Latin1(t *testing.T) {
	input := "UNITID,INSTNM\n9,Universit\xe9 de Montr\xe9al\n"

	schools, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "Université de Montréal", schools[0].Name())
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header row")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "college.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))

	schools, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, schools, 7)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open scorecard")
}

func TestSchool_SAT25(t *testing.T) {
	schools := readTestSchools(t)

	sat, ok := schools[0].SAT25()
	require.True(t, ok)
	assert.Equal(t, 710, sat)

	sat, ok = schools[2].SAT25()
	require.True(t, ok)
	assert.Equal(t, 716, sat)

	_, ok = schools[6].SAT25()
	assert.False(t, ok)
}

func TestSchool_ACT25(t *testing.T) {
	schools := readTestSchools(t)

	act, ok := schools[0].ACT25()
	require.True(t, ok)
	assert.Equal(t, 18, act)

	act, ok = schools[1].Score("ACT")
	require.True(t, ok)
	assert.Equal(t, 19, act)

	_, ok = schools[6].ACT25()
	assert.False(t, ok)
}

func TestSchool_GradRateFallback(t *testing.T) {
	schools := readTestSchools(t)

	gr, ok := schools[0].GradRate()
	require.True(t, ok)
	assert.InDelta(t, 0.6, gr, 1e-9)

	gr, ok = schools[2].GradRate()
	require.True(t, ok)
	assert.InDelta(t, 0.5, gr, 1e-9)
}

func TestSchool_Cost(t *testing.T) {
	schools := readTestSchools(t)

	cost, ok := schools[0].Cost(1)
	require.True(t, ok)
	assert.Equal(t, 5000, cost)

	cost, ok = schools[0].Cost(0)
	require.True(t, ok)
	assert.Equal(t, 9000, cost)

	cost, ok = schools[1].Cost(2)
	require.True(t, ok)
	assert.Equal(t, 15000, cost)

	_, ok = schools[1].Cost(5)
	assert.False(t, ok)
}

func TestSchool_ShortName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Short College", want: "Short College"},
		{name: "California State University-Dominguez Hills", want: "CSU Dominguez Hills"},
		{name: "Massachusetts College of Liberal Arts", want: "Massachusetts C. of Liberal Ar"},
		{name: "Pennsylvania State University-Main Campus", want: "Pennsylvania State U.-Main Cam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSchool(NewHeader([]string{"INSTNM"}), []string{tt.name})
			got := s.ShortName()
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 30)
		})
	}
}

func TestFilter(t *testing.T) {
	schools := readTestSchools(t)

	matches := Filter(schools, Criteria{
		Test:        "SAT",
		ScoreMin:    600,
		ScoreMax:    799,
		Level:       1,
		MinGradRate: DefaultMinGradRate,
	})

	var names []string
	for _, m := range matches {
		names = append(names, m.School.Name())
	}

	// Low Grad College fails the completion rate, Community College is not
	// four-year, For Profit U is neither public nor nonprofit, No Scores
	// College has no SAT.
	assert.Equal(t, []string{"Cheap State University", "Midpoint Only Institute", "Pricey Private College"}, names)
	assert.Equal(t, 5000, matches[0].Cost)
	assert.Equal(t, 710, matches[0].Score)
}

func TestFilter_CostMaxAndRange(t *testing.T) {
	schools := readTestSchools(t)

	matches := Filter(schools, Criteria{Test: "SAT", ScoreMin: 700, ScoreMax: 799, Level: 1, CostMax: 10000, MinGradRate: DefaultMinGradRate})
	require.Len(t, matches, 2)
	assert.Equal(t, "Cheap State University", matches[0].School.Name())
	assert.Equal(t, "Midpoint Only Institute", matches[1].School.Name())
}

func TestCostInversions(t *testing.T) {
	schools := readTestSchools(t)

	inversions := CostInversions(schools, 5)
	require.Len(t, inversions, 1)
	assert.Equal(t, "Pricey Private College", inversions[0].School.Name())
	assert.Equal(t, 2, inversions[0].Level)
	assert.Equal(t, 15000, inversions[0].Cost)
	assert.Equal(t, 20000, inversions[0].Previous)
}

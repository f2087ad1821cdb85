package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

func TestScoringRules(t *testing.T) {
	tests := []struct {
		name string
		rule ScoringRule
		ps   int
		want int
	}{
		{"simple winner", RuleSimple, 1, 40},
		{"simple second", RuleSimple, 2, 39},
		{"simple third", RuleSimple, 3, 38},
		{"simple 41st", RuleSimple, 41, 0},
		{"graduated winner", RuleGraduated, 1, 40},
		{"graduated second", RuleGraduated, 2, 34},
		{"graduated third", RuleGraduated, 3, 33},
		{"graduated tenth", RuleGraduated, 10, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Points(tt.ps))
		})
	}
}

func TestParseScoringRule(t *testing.T) {
	r, err := ParseScoringRule("Graduated")
	assert.NoError(t, err)
	assert.Equal(t, RuleGraduated, r)

	r, err = ParseScoringRule("simple")
	assert.NoError(t, err)
	assert.Equal(t, RuleSimple, r)

	_, err = ParseScoringRule("f1")
	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParseTiePolicy(t *testing.T) {
	p, err := ParseTiePolicy("keep-all")
	assert.NoError(t, err)
	assert.Equal(t, TieKeepAll, p)

	_, err = ParseTiePolicy("coin-flip")
	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

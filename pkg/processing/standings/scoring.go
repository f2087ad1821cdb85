package standings

import (
	"strings"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// ScoringRule computes the manufacturer points for the finishing position
// of its best entry.
type ScoringRule interface {
	Name() string
	Points(ps int) int
}

type (
	simpleRule    struct{}
	graduatedRule struct{}
)

// Name implements ScoringRule
func (simpleRule) Name() string { return "simple" }

// Points returns 41-ps (1st: 40, 2nd: 39, ...)
func (simpleRule) Points(ps int) int { return 41 - ps }

func (graduatedRule) Name() string { return "graduated" }

// Points returns 40 for the winner, 36-ps otherwise (2nd: 34, 3rd: 33, ...)
func (graduatedRule) Points(ps int) int {
	if ps == 1 {
		return 40
	}
	return 36 - ps
}

var (
	RuleSimple    ScoringRule = simpleRule{}
	RuleGraduated ScoringRule = graduatedRule{}
)

var scoringRules = []ScoringRule{RuleSimple, RuleGraduated}

func ParseScoringRule(name string) (ScoringRule, error) {
	for _, r := range scoringRules {
		if strings.EqualFold(r.Name(), strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return nil, &model.ConfigurationError{
		Parameter: "scoring rule",
		Value:     name,
		Allowed:   []string{RuleSimple.Name(), RuleGraduated.Name()},
	}
}

// TiePolicy decides which entries count if several entries of a manufacturer
// share the best finishing position.
type TiePolicy string

const (
	// TieLowestDriverID keeps the tied entry with the lowest driver id
	TieLowestDriverID TiePolicy = "lowest-driver-id"
	// TieKeepAll keeps all tied entries, each one scoring the points
	TieKeepAll TiePolicy = "keep-all"
)

func ParseTiePolicy(name string) (TiePolicy, error) {
	switch p := TiePolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case TieLowestDriverID, TieKeepAll:
		return p, nil
	}
	return "", &model.ConfigurationError{
		Parameter: "tie policy",
		Value:     name,
		Allowed:   []string{string(TieLowestDriverID), string(TieKeepAll)},
	}
}

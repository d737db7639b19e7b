package planner

import (
	"testing"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDominates_NonEmptyBeatsEmpty(t *testing.T) {
	assert.True(t, testVocab.Dominates(domain.DeptMED, domain.StageConcept, ""))
	assert.False(t, testVocab.Dominates(domain.DeptMED, "", domain.StageConcept))
	assert.False(t, testVocab.Dominates(domain.DeptMED, "", ""))
}

func TestDominates_HigherIndexWins(t *testing.T) {
	assert.True(t, testVocab.Dominates(domain.DeptMED, domain.StageRelease, domain.StageConcept))
	assert.False(t, testVocab.Dominates(domain.DeptMED, domain.StageConcept, domain.StageRelease))
	assert.False(t, testVocab.Dominates(domain.DeptMED, domain.StageConcept, domain.StageConcept),
		"equal priority must not replace")
}

func TestDominates_UnknownStageNeverBeatsVocabularyMember(t *testing.T) {
	assert.False(t, testVocab.Dominates(domain.DeptMED, domain.StageOffline, domain.StageConcept),
		"a tag outside the department vocabulary ranks -1")
	assert.True(t, testVocab.Dominates(domain.DeptMED, domain.StageOffline, ""),
		"but any non-empty tag still beats empty")
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, testVocab.Rank(domain.DeptMED, domain.StageConcept))
	assert.Equal(t, 2, testVocab.Rank(domain.DeptMED, domain.StageRelease))
	assert.Equal(t, -1, testVocab.Rank(domain.DeptMED, domain.StageOffline))
	assert.Equal(t, -1, testVocab.Rank(domain.DeptMFG, domain.StageConcept),
		"department with no vocabulary ranks everything -1")
}

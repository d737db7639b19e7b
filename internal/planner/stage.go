package planner

import "github.com/alexanderramin/loadsheet/internal/domain"

// StageVocabulary maps each department to its ordered stage list. The
// slice index is the stage's priority; a higher index wins when a cell
// holds assignments from several stages.
type StageVocabulary map[domain.Department][]domain.Stage

// Rank returns the priority of stage within the department's vocabulary,
// or -1 when the stage is absent. An unknown tag therefore never beats a
// vocabulary member but still beats an empty stage.
func (v StageVocabulary) Rank(dept domain.Department, stage domain.Stage) int {
	for i, s := range v[dept] {
		if s == stage {
			return i
		}
	}
	return -1
}

// Dominates reports whether candidate should replace current as the
// displayed stage of a cell. A non-empty candidate always beats an empty
// current; otherwise the candidate wins only on strictly higher priority.
// Each replacement only ever raises the running maximum, so folding a
// cell's assignments in any order yields the same dominant stage.
func (v StageVocabulary) Dominates(dept domain.Department, candidate, current domain.Stage) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}
	return v.Rank(dept, candidate) > v.Rank(dept, current)
}

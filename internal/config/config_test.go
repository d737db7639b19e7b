package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 45.0, cfg.HoursPerResourceWeek)
	assert.Equal(t, string(domain.DeptBUILD), cfg.HoursDepartment)
	assert.Equal(t, 500*time.Millisecond, cfg.WriteDebounce())
	assert.NotEmpty(t, cfg.Stages[string(domain.DeptMED)])
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadsheet.yaml")
	data := `
hours_per_resource_week: 40
hours_department: MFG
write_debounce_ms: 250
stages:
  MED: [CONCEPT, RELEASE]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.HoursPerResourceWeek)
	assert.Equal(t, "MFG", cfg.HoursDepartment)
	assert.Equal(t, 250*time.Millisecond, cfg.WriteDebounce())

	vocab := cfg.Vocabulary()
	assert.Equal(t, 1, vocab.Rank(domain.DeptMED, domain.StageRelease))
}

func TestLoad_RejectsUnknownDepartment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadsheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hours_department: NOPE\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadsheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stages: [not: a: map\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault_VocabularyOrderingMatchesPriorities(t *testing.T) {
	vocab := Default().Vocabulary()
	assert.True(t, vocab.Dominates(domain.DeptBUILD, domain.StageCommissioning, domain.StageCabinetsFrames))
	assert.False(t, vocab.Dominates(domain.DeptBUILD, domain.StageCabinetsFrames, domain.StageCommissioning))
}

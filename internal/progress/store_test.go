package progress

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `[
  {
    "name": "Kofi",
    "conditions": {
      "high_ranking": {
        "next_trial_index": 2,
        "last_played": false
      },
      "low_ranking": {
        "next_trial_index": 1,
        "last_played": true
      }
    }
  },
  {
    "name": "Ama"
  }
]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subjects.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	r, err := Load(writeFile(t, sampleRoster))
	require.NoError(t, err)

	assert.Equal(t, []string{"Kofi", "Ama"}, r.Names())

	kofi, err := r.Subject("Kofi")
	require.NoError(t, err)
	p, ok := kofi.Progress("low_ranking")
	require.True(t, ok)
	assert.Equal(t, ConditionProgress{NextTrialIndex: 1, LastPlayed: true}, p)

	_, ok = kofi.Progress("stranger")
	assert.False(t, ok, "never-attempted condition must have no entry")

	ama, err := r.Subject("Ama")
	require.NoError(t, err)
	assert.Empty(t, ama.Conditions)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "subjects.json"))
	assert.True(t, errors.Is(err, ErrProgressFileMissing), "got %v", err)
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{{`},
		{"truncated", `[{"name": "Kofi"`},
		{"object root", `{"name": "Kofi"}`},
		{"null root", `null`},
		{"missing name", `[{"conditions": {}}]`},
		{"empty name", `[{"name": ""}]`},
		{"negative index", `[{"name": "K", "conditions": {"a": {"next_trial_index": -1, "last_played": false}}}]`},
		{"fractional index", `[{"name": "K", "conditions": {"a": {"next_trial_index": 1.5, "last_played": false}}}]`},
		{"string flag", `[{"name": "K", "conditions": {"a": {"next_trial_index": 1, "last_played": "yes"}}}]`},
		{"missing index", `[{"name": "K", "conditions": {"a": {"last_played": true}}}]`},
		{"unknown field", `[{"name": "K", "age": 4}]`},
		{"legacy array conditions", `[{"name": "K", "conditions": [{"name": "a"}]}]`},
		{"duplicate subject", `[{"name": "K"}, {"name": "K"}]`},
		{"missing flag", `[{"name": "K", "conditions": {"a": {"next_trial_index": 1}}}]`},
		{"empty conditions", `[{"name": "K", "conditions": {}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptProgressFile), "got %v", err)

			var ce *CorruptError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestLoadDoesNotRepair(t *testing.T) {
	path := writeFile(t, `[{"name": "K", "conditions": {"a": {"next_trial_index": -3, "last_played": false}}}]`)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = Load(path)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := writeFile(t, sampleRoster)
	r, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, Save(path, r))

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	var want, have any
	require.NoError(t, json.Unmarshal([]byte(sampleRoster), &want))
	require.NoError(t, json.Unmarshal(got, &have))
	assert.Equal(t, want, have)
}

func TestSaveWritesEveryShapeLoadAccepts(t *testing.T) {
	inputs := []string{
		`[{"name": "K"}]`,
		`[{"name": "K", "conditions": {"a": {"next_trial_index": 0, "last_played": true}}}]`,
		`[{"name": "K", "conditions": {"a": {"next_trial_index": 1, "last_played": false}}}, {"name": "A"}]`,
	}
	for _, in := range inputs {
		path := writeFile(t, in)
		r, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, Save(path, r))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(got))
	}
}

func TestSaveIsAtomic(t *testing.T) {
	path := writeFile(t, sampleRoster)
	r, err := Load(path)
	require.NoError(t, err)

	kofi, err := r.Subject("Kofi")
	require.NoError(t, err)
	kofi.Ensure("stranger").NextTrialIndex = 1
	require.NoError(t, Save(path, r))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	reloaded, err := Load(path)
	require.NoError(t, err)
	kofi, err = reloaded.Subject("Kofi")
	require.NoError(t, err)
	p, ok := kofi.Progress("stranger")
	require.True(t, ok)
	assert.Equal(t, 1, p.NextTrialIndex)
}

func TestSaveEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "subjects.json")
	require.NoError(t, Save(path, &Roster{}))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, r.Names())
}

func TestRosterSubjectUnknown(t *testing.T) {
	r, err := NewRoster("Kofi")
	require.NoError(t, err)

	_, err = r.Subject("Nobody")
	assert.True(t, errors.Is(err, ErrUnknownSubject))
}

func TestRosterAdd(t *testing.T) {
	r, err := NewRoster("Kofi")
	require.NoError(t, err)

	require.NoError(t, r.Add("Ama"))
	assert.True(t, errors.Is(r.Add("Kofi"), ErrDuplicateSubject))
	assert.Error(t, r.Add(""))
	assert.Equal(t, []string{"Kofi", "Ama"}, r.Names())
}

func TestRosterValidate(t *testing.T) {
	r, err := Decode("mem", []byte(`[{"name": "K", "conditions": {"a": {"next_trial_index": 5, "last_played": false}}}]`))
	require.NoError(t, err)

	assert.NoError(t, r.Validate(5))
	assert.True(t, errors.Is(r.Validate(4), ErrCorruptProgressFile))
}

func TestEnsureCreatesOnce(t *testing.T) {
	s := &Subject{Name: "K"}
	p := s.Ensure("a")
	p.NextTrialIndex = 3
	assert.Same(t, p, s.Ensure("a"))
	assert.Equal(t, 3, s.Entry("a").NextTrialIndex)
	assert.Nil(t, s.Entry("b"))
}

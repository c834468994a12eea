package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumn_ExactBeforeSubstring(t *testing.T) {
	t.Parallel()

	// "Total" contains "to" as a substring, but the exact pass runs over all
	// headers first, so the real "To" column wins.
	idx := findColumn([]string{"Total", "To"}, []string{"to"})
	assert.Equal(t, 1, idx)
}

func TestFindColumn_SubstringFirstColumnWins(t *testing.T) {
	t.Parallel()

	// With no exact match the first substring hit in original order wins,
	// even when a later header would be the better pick.
	idx := findColumn([]string{"Total", "Recipient"}, []string{"to"})
	assert.Equal(t, 0, idx)
}

func TestFindColumn_MatchingIsCaseAndSpaceInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, findColumn([]string{" FROM "}, []string{"from"}))
	assert.Equal(t, 1, findColumn([]string{"id", "Sent To"}, []string{"to"}))
	assert.Equal(t, 2, findColumn([]string{"id", "note", "Amt (EUR)"}, []string{"amount", "amt"}))
}

func TestFindColumn_NoMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, findColumn([]string{"alpha", "beta"}, []string{"from"}))
	assert.Equal(t, -1, findColumn(nil, []string{"from"}))
}

func TestSetColumnCandidates_PartialOverride(t *testing.T) {
	defer SetColumnCandidates(ColumnCandidates{})

	SetColumnCandidates(ColumnCandidates{Source: []string{"sender"}})
	got := getColumnCandidates()
	assert.Equal(t, []string{"sender"}, got.Source)
	// Roles left nil keep the built-in defaults.
	assert.Equal(t, []string{"to"}, got.Destination)
	assert.Equal(t, []string{"amount", "amt"}, got.Amount)
}

func TestDefaultColumnCandidates_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	c := DefaultColumnCandidates()
	c.Source[0] = "mutated"
	assert.Equal(t, []string{"from"}, DefaultColumnCandidates().Source)
}

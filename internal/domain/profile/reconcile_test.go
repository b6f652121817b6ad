package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPutExperience_InsertsAtHead(t *testing.T) {
	p := &Profile{}

	action := p.PutExperience(Experience{Title: "Eng", Company: "Acme", From: date("2020-01-01")})
	assert.Equal(t, ReconcileInserted, action)
	require.Len(t, p.Experience, 1)
	assert.NotEqual(t, uuid.Nil, p.Experience[0].ID)

	action = p.PutExperience(Experience{Title: "Lead", Company: "Acme", From: date("2022-01-01")})
	assert.Equal(t, ReconcileInserted, action)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Lead", p.Experience[0].Title, "new entries go to the head")
	assert.Equal(t, "Eng", p.Experience[1].Title)
}

func TestPutExperience_UpdatesInPlaceOnNaturalKeyMatch(t *testing.T) {
	p := &Profile{}
	p.PutExperience(Experience{Title: "Eng", Company: "Acme", From: date("2020-01-01")})
	p.PutExperience(Experience{Title: "Lead", Company: "Acme", From: date("2022-01-01")})
	originalID := p.Experience[1].ID

	action := p.PutExperience(Experience{
		Title: "Eng", Company: "Acme", From: date("2020-01-01"), Description: "updated",
	})

	assert.Equal(t, ReconcileUpdated, action)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "updated", p.Experience[1].Description, "position preserved")
	assert.Equal(t, originalID, p.Experience[1].ID, "id preserved across update")
}

func TestPutExperience_FullOverwriteNotMerge(t *testing.T) {
	p := &Profile{}
	p.PutExperience(Experience{
		Title: "Eng", Company: "Acme", Location: "NYC",
		From: date("2020-01-01"), Description: "original",
	})

	p.PutExperience(Experience{Title: "Eng", Company: "Acme", From: date("2021-06-01")})

	require.Len(t, p.Experience, 1)
	got := p.Experience[0]
	assert.Empty(t, got.Location, "unset candidate fields replace old values")
	assert.Empty(t, got.Description)
	assert.Equal(t, date("2021-06-01"), got.From)
}

func TestPutExperience_DuplicateKeysOnlyFirstMatchUpdated(t *testing.T) {
	p := &Profile{
		Experience: []Experience{
			{ID: uuid.New(), Title: "Eng", Company: "Acme", Description: "first"},
			{ID: uuid.New(), Title: "Eng", Company: "Acme", Description: "second"},
		},
	}

	action := p.PutExperience(Experience{Title: "Eng", Company: "Acme", Description: "patched"})

	assert.Equal(t, ReconcileUpdated, action)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "patched", p.Experience[0].Description)
	assert.Equal(t, "second", p.Experience[1].Description)
}

func TestRemoveExperience(t *testing.T) {
	p := &Profile{}
	p.PutExperience(Experience{Title: "Eng", Company: "Acme"})
	p.PutExperience(Experience{Title: "Lead", Company: "Beta"})
	keepID := p.Experience[0].ID
	removeID := p.Experience[1].ID

	err := p.RemoveExperience(removeID)

	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, keepID, p.Experience[0].ID)
}

func TestRemoveExperience_UnknownIDLeavesListUntouched(t *testing.T) {
	p := &Profile{}
	p.PutExperience(Experience{Title: "Eng", Company: "Acme"})
	p.PutExperience(Experience{Title: "Lead", Company: "Beta"})

	err := p.RemoveExperience(uuid.New())

	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Len(t, p.Experience, 2)
}

func TestPutEducation_NaturalKeyIsSchoolDegreeField(t *testing.T) {
	p := &Profile{}
	p.PutEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: date("2015-09-01")})

	// same school+degree, different field of study -> new entry
	action := p.PutEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "Math", From: date("2015-09-01")})
	assert.Equal(t, ReconcileInserted, action)
	require.Len(t, p.Education, 2)
	assert.Equal(t, "Math", p.Education[0].FieldOfStudy)

	// exact key match -> in-place update
	action = p.PutEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", Description: "honors"})
	assert.Equal(t, ReconcileUpdated, action)
	require.Len(t, p.Education, 2)
	assert.Equal(t, "honors", p.Education[1].Description)
}

func TestRemoveEducation(t *testing.T) {
	p := &Profile{}
	p.PutEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	id := p.Education[0].ID

	require.NoError(t, p.RemoveEducation(id))
	assert.Empty(t, p.Education)
	assert.ErrorIs(t, p.RemoveEducation(id), ErrEntryNotFound)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"js", "css", "html"}, ParseSkills("js, css, html"))
	assert.Equal(t, []string{"go"}, ParseSkills(" go "))
	assert.Empty(t, ParseSkills(",, ,"))
}

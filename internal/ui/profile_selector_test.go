package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

func selectorProfiles() []pkgtypes.AWSProfile {
	return []pkgtypes.AWSProfile{
		{Name: "default", Type: pkgtypes.ProfileTypeDefault, IsValid: true},
		{Name: "dev", Type: pkgtypes.ProfileTypeSSO, Region: "eu-west-1", IsValid: true},
		{Name: "prod", Type: pkgtypes.ProfileTypeAssumeRole, Region: "us-east-1", IsValid: false,
			ErrorMessage: `source profile "ghost" not found`},
	}
}

func update(t *testing.T, m ProfileModel, msg tea.Msg) ProfileModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(ProfileModel)
	require.True(t, ok)
	return model
}

func typeRunes(t *testing.T, m ProfileModel, s string) ProfileModel {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestProfileModel_SelectWithArrows(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = next.(ProfileModel)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "dev", m.Selected().Name)
	assert.False(t, m.Cancelled())
	assert.Empty(t, m.View())
}

func TestProfileModel_FilterByTypeAndRegion(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "")

	m = typeRunes(t, m, "assume")
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "prod", m.filtered[0].Name)

	m = NewProfileModel(selectorProfiles(), "")
	m = typeRunes(t, m, "eu-")
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "dev", m.filtered[0].Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "eu", m.search)
}

func TestProfileModel_NoMatchEnterDoesNothing(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "")
	m = typeRunes(t, m, "zzz")
	assert.Empty(t, m.filtered)
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "no matching profiles")
}

func TestProfileModel_Cancel(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.Cancelled())
	assert.Nil(t, m.Selected())
}

func TestProfileModel_ViewShowsValidity(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "dev")
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Select AWS Profile")
	assert.Contains(t, view, "AssumeRole")
	assert.Contains(t, view, InvalidMark+" invalid")
	assert.Contains(t, view, ActiveMark)
	assert.Contains(t, view, "3/3 profiles, 2 valid")

	// Cursor on the invalid profile shows its message
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), `source profile "ghost" not found`)
}

func TestProfileModel_WidthIsClamped(t *testing.T) {
	m := NewProfileModel(selectorProfiles(), "")

	m = update(t, m, tea.WindowSizeMsg{Width: 10})
	assert.Equal(t, minWidth, m.contentWidth)

	m = update(t, m, tea.WindowSizeMsg{Width: 500})
	assert.Equal(t, maxWidth, m.contentWidth)
}

func TestSelectProfile_Empty(t *testing.T) {
	_, err := SelectProfile(nil, "")
	assert.Error(t, err)
}

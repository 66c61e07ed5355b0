package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyValid(t *testing.T) {
	assert.True(t, Beginner.Valid())
	assert.True(t, Intermediate.Valid())
	assert.True(t, Advanced.Valid())
	assert.False(t, Difficulty("expert").Valid())
	assert.False(t, Difficulty("").Valid())
}

func TestDifficultySettings(t *testing.T) {
	assert.Equal(t, DifficultySetting{Questions: 20, TimeLimit: 1800}, DifficultySettings[Beginner])
	assert.Equal(t, DifficultySetting{Questions: 30, TimeLimit: 2700}, DifficultySettings[Intermediate])
	assert.Equal(t, DifficultySetting{Questions: 40, TimeLimit: 3600}, DifficultySettings[Advanced])
}

func TestOptionListScanRoundTrip(t *testing.T) {
	original := OptionList{
		{OptionID: "a", Text: "один"},
		{OptionID: "b", Text: "два"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned OptionList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	var fromNil OptionList
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	assert.Error(t, scanned.Scan(42))
}

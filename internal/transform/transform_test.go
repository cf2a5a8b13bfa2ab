package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/refract/internal/models"
)

func TestRenameKeys_Cases(t *testing.T) {
	doc := models.Mapping{
		{Key: "user_name", Value: models.String("sam")},
		{Key: "homeDir", Value: models.String("/home/sam")},
	}

	tests := []struct {
		name    string
		keyCase KeyCase
		want    models.Mapping
	}{
		{
			name:    "camel",
			keyCase: KeyCaseCamel,
			want: models.Mapping{
				{Key: "userName", Value: models.String("sam")},
				{Key: "homeDir", Value: models.String("/home/sam")},
			},
		},
		{
			name:    "pascal",
			keyCase: KeyCasePascal,
			want: models.Mapping{
				{Key: "UserName", Value: models.String("sam")},
				{Key: "HomeDir", Value: models.String("/home/sam")},
			},
		},
		{
			name:    "snake",
			keyCase: KeyCaseSnake,
			want: models.Mapping{
				{Key: "user_name", Value: models.String("sam")},
				{Key: "home_dir", Value: models.String("/home/sam")},
			},
		},
		{
			name:    "kebab",
			keyCase: KeyCaseKebab,
			want: models.Mapping{
				{Key: "user-name", Value: models.String("sam")},
				{Key: "home-dir", Value: models.String("/home/sam")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenameKeys(doc, tt.keyCase)
			require.NoError(t, err)
			assert.Equal(t, models.Value(tt.want), got)
		})
	}
}

func TestRenameKeys_RecursesThroughContainers(t *testing.T) {
	doc := models.Mapping{
		{Key: "outer_box", Value: models.Mapping{
			{Key: "inner_box", Value: models.Number("1")},
		}},
		{Key: "item_list", Value: models.Sequence{
			models.Mapping{{Key: "item_id", Value: models.Number("2")}},
			models.Number("3"),
		}},
	}

	got, err := RenameKeys(doc, KeyCaseCamel)
	require.NoError(t, err)

	want := models.Mapping{
		{Key: "outerBox", Value: models.Mapping{
			{Key: "innerBox", Value: models.Number("1")},
		}},
		{Key: "itemList", Value: models.Sequence{
			models.Mapping{{Key: "itemId", Value: models.Number("2")}},
			models.Number("3"),
		}},
	}
	assert.Equal(t, models.Value(want), got)
}

func TestRenameKeys_CollisionKeepsFirstPositionLastValue(t *testing.T) {
	doc := models.Mapping{
		{Key: "user_name", Value: models.Number("1")},
		{Key: "other", Value: models.Number("2")},
		{Key: "UserName", Value: models.Number("3")},
	}

	got, err := RenameKeys(doc, KeyCaseSnake)
	require.NoError(t, err)

	want := models.Mapping{
		{Key: "user_name", Value: models.Number("3")},
		{Key: "other", Value: models.Number("2")},
	}
	assert.Equal(t, models.Value(want), got)
}

func TestRenameKeys_NoneReturnsTreeUntouched(t *testing.T) {
	doc := models.Mapping{{Key: "Mixed_Case", Value: models.Null{}}}

	got, err := RenameKeys(doc, KeyCaseNone)
	require.NoError(t, err)
	assert.Equal(t, models.Value(doc), got)

	got, err = RenameKeys(doc, "")
	require.NoError(t, err)
	assert.Equal(t, models.Value(doc), got)
}

func TestRenameKeys_UnknownCase(t *testing.T) {
	_, err := RenameKeys(models.Mapping{}, "shouting")
	assert.Error(t, err)
}

func TestRenameKeys_ScalarsPassThrough(t *testing.T) {
	got, err := RenameKeys(models.String("v"), KeyCaseSnake)
	require.NoError(t, err)
	assert.Equal(t, models.Value(models.String("v")), got)
}

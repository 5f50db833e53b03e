package score

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "blank", raw: "", want: nil},
		{name: "whitespace", raw: "   ", want: nil},
		{name: "zero", raw: "0", want: utils.Ptr(0)},
		{name: "padded number", raw: " 21 ", want: utils.Ptr(21)},
		{name: "not a number", raw: "abc", want: nil},
		{name: "trailing garbage", raw: "12abc", want: nil},
		{name: "negative", raw: "-3", want: nil},
		{name: "decimal", raw: "1.5", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(Input{HomeSet1: tt.raw})
			assert.Equal(t, tt.want, got.HomeSet1Score)
		})
	}
}

func TestParseFieldsAreIndependent(t *testing.T) {
	got := Parse(Input{HomeSet1: "11", AwaySet1: "", HomeSet2: "0", AwaySet2: "x"})

	require.NotNil(t, got.HomeSet1Score)
	assert.Equal(t, 11, *got.HomeSet1Score)
	assert.Nil(t, got.AwaySet1Score)
	require.NotNil(t, got.HomeSet2Score)
	assert.Equal(t, 0, *got.HomeSet2Score)
	assert.Nil(t, got.AwaySet2Score)
}

func TestBlankAndZeroSerializeDifferently(t *testing.T) {
	blank, err := json.Marshal(Parse(Input{HomeSet1: ""}))
	require.NoError(t, err)
	zero, err := json.Marshal(Parse(Input{HomeSet1: "0"}))
	require.NoError(t, err)

	assert.Contains(t, string(blank), `"home_set1_score":null`)
	assert.Contains(t, string(zero), `"home_set1_score":0`)
	assert.NotEqual(t, string(blank), string(zero))
}

func TestFormValue(t *testing.T) {
	assert.Equal(t, "", FormValue(nil))
	assert.Equal(t, "0", FormValue(utils.Ptr(0)))
	assert.Equal(t, "15", FormValue(utils.Ptr(15)))
}

func TestInputFromForm(t *testing.T) {
	form := url.Values{}
	form.Set(FieldHomeSet1, "11")
	form.Set(FieldAwaySet2, "0")

	in := InputFromForm(form)
	assert.Equal(t, Input{HomeSet1: "11", AwaySet2: "0"}, in)

	update := Parse(in)
	assert.Nil(t, update.AwaySet1Score)
	require.NotNil(t, update.AwaySet2Score)
	assert.Equal(t, 0, *update.AwaySet2Score)
}

// Package score turns raw score form values into a score update.
package score

import (
	"net/url"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
)

// Input holds the four raw text fields of the score form for one match.
type Input struct {
	HomeSet1 string
	AwaySet1 string
	HomeSet2 string
	AwaySet2 string
}

// Form field names used by the score entry form.
const (
	FieldHomeSet1 = "home_set1"
	FieldAwaySet1 = "away_set1"
	FieldHomeSet2 = "home_set2"
	FieldAwaySet2 = "away_set2"
)

func InputFromForm(form url.Values) Input {
	return Input{
		HomeSet1: form.Get(FieldHomeSet1),
		AwaySet1: form.Get(FieldAwaySet1),
		HomeSet2: form.Get(FieldHomeSet2),
		AwaySet2: form.Get(FieldAwaySet2),
	}
}

// Parse converts every field on its own. Blank, non-numeric and negative
// values become nil; a typed "0" stays 0.
func Parse(in Input) tournament.ScoreUpdate {
	return tournament.ScoreUpdate{
		HomeSet1Score: utils.NonNegativeIntOrNil(in.HomeSet1),
		AwaySet1Score: utils.NonNegativeIntOrNil(in.AwaySet1),
		HomeSet2Score: utils.NonNegativeIntOrNil(in.HomeSet2),
		AwaySet2Score: utils.NonNegativeIntOrNil(in.AwaySet2),
	}
}

// FormValue is the inverse used to prefill inputs: nil renders as blank.
func FormValue(v *int) string {
	return utils.FormatInt(v, "")
}

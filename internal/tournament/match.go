package tournament

type PhaseType string

const (
	PhaseGroup    PhaseType = "group"
	PhaseKnockout PhaseType = "knockout"
	PhaseFinal    PhaseType = "final"
)

func (p PhaseType) Valid() bool {
	switch p {
	case PhaseGroup, PhaseKnockout, PhaseFinal:
		return true
	}
	return false
}

// Label is the human readable phase name used in headings and messages.
func (p PhaseType) Label() string {
	switch p {
	case PhaseGroup:
		return "group phase"
	case PhaseKnockout:
		return "knockout phase"
	case PhaseFinal:
		return "final"
	default:
		return string(p)
	}
}

type TeamRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type PouleRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type Round struct {
	ID          int       `json:"id"`
	RoundNumber int       `json:"round_number"`
	Type        PhaseType `json:"type"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time,omitempty"`
	Matches     []Match   `json:"matches"`
}

type Match struct {
	ID          int      `json:"id"`
	FieldNumber int      `json:"field_number"`
	HomeTeam    *TeamRef `json:"home_team"`
	AwayTeam    *TeamRef `json:"away_team"`
	RefereeTeam *TeamRef `json:"referee_team"`

	// Knockout and final slots reference a rank within a poule until the
	// previous phase has been played.
	HomeRankPosition *int      `json:"home_rank_position"`
	AwayRankPosition *int      `json:"away_rank_position"`
	HomeRankPoule    *PouleRef `json:"home_rank_poule"`
	AwayRankPoule    *PouleRef `json:"away_rank_poule"`

	HomeSet1Score *int `json:"home_set1_score"`
	AwaySet1Score *int `json:"away_set1_score"`
	HomeSet2Score *int `json:"home_set2_score"`
	AwaySet2Score *int `json:"away_set2_score"`
}

func (m *Match) Home() Participant {
	return Participant{Team: m.HomeTeam, RankPosition: m.HomeRankPosition, RankPoule: m.HomeRankPoule}
}

func (m *Match) Away() Participant {
	return Participant{Team: m.AwayTeam, RankPosition: m.AwayRankPosition, RankPoule: m.AwayRankPoule}
}

// IsComplete reports whether all four set scores are entered. A match scored
// 0-0 in both sets counts as not entered.
func (m *Match) IsComplete() bool {
	if m.HomeSet1Score == nil || m.AwaySet1Score == nil ||
		m.HomeSet2Score == nil || m.AwaySet2Score == nil {
		return false
	}
	set1Zero := *m.HomeSet1Score == 0 && *m.AwaySet1Score == 0
	set2Zero := *m.HomeSet2Score == 0 && *m.AwaySet2Score == 0
	return !(set1Zero && set2Zero)
}

// ScoreUpdate is the body of POST /matches/{id}/score. Nil fields are sent
// as JSON null, which is different from an entered 0.
type ScoreUpdate struct {
	HomeSet1Score *int `json:"home_set1_score"`
	AwaySet1Score *int `json:"away_set1_score"`
	HomeSet2Score *int `json:"home_set2_score"`
	AwaySet2Score *int `json:"away_set2_score"`
}

package tournament

type StandingTeam struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	Balance       *int   `json:"balance"`
	Played        int    `json:"played"`
}

// PouleStanding is one poule's table, teams already ordered by the server.
type PouleStanding struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Teams []StandingTeam `json:"teams"`
}

type OverallStandingRow struct {
	Rank             int    `json:"rank"`
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Points           int    `json:"points"`
	PointsFor        int    `json:"points_for"`
	PointsAgainst    int    `json:"points_against"`
	Balance          *int   `json:"balance"`
	Played           int    `json:"played"`
	ProgressionLevel int    `json:"progression_level"`
	// The server reports 1.5 when a final ends in a complete tie.
	FinalPosition *float64 `json:"final_position"`
}

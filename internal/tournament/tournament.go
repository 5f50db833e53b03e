package tournament

type Tournament struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	StartTime            string `json:"start_time"`
	NumFields            int    `json:"num_fields"`
	MatchDurationMinutes int    `json:"match_duration_minutes"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
}

// TournamentInput is the body for creating or updating a tournament.
type TournamentInput struct {
	Name                 string `json:"name"`
	StartTime            string `json:"start_time"`
	NumFields            int    `json:"num_fields"`
	MatchDurationMinutes int    `json:"match_duration_minutes"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
}

type Poule struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TournamentID int    `json:"tournament_id"`
}

type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TournamentID int    `json:"tournament_id"`
	PouleID      *int   `json:"poule_id"`
}

type TeamInput struct {
	Name    string `json:"name"`
	PouleID *int   `json:"poule_id"`
}

// PhaseStatus is computed by the server. Clients only read it.
type PhaseStatus struct {
	GroupPhaseComplete       bool `json:"group_phase_complete"`
	KnockoutPhaseComplete    bool `json:"knockout_phase_complete"`
	GroupMatchesTotal        int  `json:"group_matches_total"`
	GroupMatchesCompleted    int  `json:"group_matches_completed"`
	KnockoutMatchesTotal     int  `json:"knockout_matches_total"`
	KnockoutMatchesCompleted int  `json:"knockout_matches_completed"`
}

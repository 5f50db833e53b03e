package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/utils"
	"github.com/stretchr/testify/require"
)

// fakeUpstream is an in-memory stand-in for the tournament REST API.
type fakeUpstream struct {
	mu          sync.Mutex
	tournaments []tournament.Tournament
	rounds      []tournament.Round
	status      tournament.PhaseStatus
	teams       []tournament.Team
	poules      []tournament.Poule
	scores      map[int]tournament.ScoreUpdate
	generated   []string
	assigns     int
	failWith    map[string]int
}

type refreshRecorder struct {
	mu  sync.Mutex
	ids []int
}

func (r *refreshRecorder) Refresh(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *refreshRecorder) calls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ids...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// setupTestAPI starts a fake upstream seeded with one tournament whose group
// phase is half played, and returns a client for it.
func setupTestAPI(t *testing.T) (*apiclient.Client, *fakeUpstream) {
	t.Helper()

	up := &fakeUpstream{
		tournaments: []tournament.Tournament{{ID: 1, Name: "Beach Cup", NumFields: 2, StartTime: "09:00"}},
		poules:      []tournament.Poule{{ID: 10, Name: "A", TournamentID: 1}},
		teams: []tournament.Team{
			{ID: 100, Name: "Smashers", TournamentID: 1, PouleID: utils.Ptr(10)},
			{ID: 101, Name: "Blockers", TournamentID: 1, PouleID: utils.Ptr(10)},
			{ID: 102, Name: "Latecomers", TournamentID: 1},
		},
		rounds: []tournament.Round{
			{ID: 1, RoundNumber: 1, Type: tournament.PhaseGroup, StartTime: "09:00", Matches: []tournament.Match{
				{ID: 1000, FieldNumber: 1, HomeTeam: &tournament.TeamRef{Name: "Smashers"}, AwayTeam: &tournament.TeamRef{Name: "Blockers"},
					HomeSet1Score: utils.Ptr(21), AwaySet1Score: utils.Ptr(15), HomeSet2Score: utils.Ptr(21), AwaySet2Score: utils.Ptr(19)},
			}},
			{ID: 2, RoundNumber: 2, Type: tournament.PhaseGroup, StartTime: "09:20", Matches: []tournament.Match{
				{ID: 1001, FieldNumber: 1, HomeTeam: &tournament.TeamRef{Name: "Blockers"}, AwayTeam: &tournament.TeamRef{Name: "Smashers"}},
			}},
			{ID: 3, RoundNumber: 3, Type: tournament.PhaseKnockout, StartTime: "09:40", Matches: []tournament.Match{
				{ID: 1002, FieldNumber: 1, HomeRankPosition: utils.Ptr(1), HomeRankPoule: &tournament.PouleRef{Name: "A"},
					AwayRankPosition: utils.Ptr(2), AwayRankPoule: &tournament.PouleRef{Name: "A"}},
			}},
		},
		scores:   make(map[int]tournament.ScoreUpdate),
		failWith: make(map[string]int),
	}

	mux := http.NewServeMux()
	fail := func(w http.ResponseWriter, r *http.Request) bool {
		up.mu.Lock()
		status, ok := up.failWith[r.Method+" "+r.URL.Path]
		up.mu.Unlock()
		if !ok {
			return false
		}
		w.WriteHeader(status)
		writeJSON(w, map[string]string{"detail": "rejected by fake"})
		return true
	}

	mux.HandleFunc("GET /tournaments/", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		writeJSON(w, up.tournaments)
	})
	mux.HandleFunc("GET /tournaments/{id}/rounds", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		writeJSON(w, up.rounds)
	})
	mux.HandleFunc("GET /tournaments/{id}/phase-status", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		writeJSON(w, up.status)
	})
	mux.HandleFunc("GET /tournaments/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		writeJSON(w, []tournament.PouleStanding{{ID: 10, Name: "A", Teams: []tournament.StandingTeam{
			{ID: 100, Name: "Smashers", Points: 3, Played: 1, Balance: utils.Ptr(8)},
			{ID: 101, Name: "Blockers", Points: 0, Played: 1},
		}}})
	})
	mux.HandleFunc("GET /tournaments/{id}/overall-standings", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		writeJSON(w, []tournament.OverallStandingRow{})
	})
	mux.HandleFunc("GET /tournaments/{id}/poules/", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		writeJSON(w, up.poules)
	})
	mux.HandleFunc("GET /tournaments/{id}/teams/", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		writeJSON(w, up.teams)
	})
	mux.HandleFunc("POST /tournaments/{id}/teams/", func(w http.ResponseWriter, r *http.Request) {
		var in tournament.TeamInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Name == "Duplicate" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]string{"detail": "Team name already exists"})
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		team := tournament.Team{ID: 200 + len(up.teams), Name: in.Name, TournamentID: 1, PouleID: in.PouleID}
		up.teams = append(up.teams, team)
		writeJSON(w, team)
	})
	mux.HandleFunc("POST /tournaments/", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var in tournament.TournamentInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		up.mu.Lock()
		defer up.mu.Unlock()
		created := tournament.Tournament{
			ID:                   len(up.tournaments) + 1,
			Name:                 in.Name,
			StartTime:            in.StartTime,
			NumFields:            in.NumFields,
			MatchDurationMinutes: in.MatchDurationMinutes,
			BreakDurationMinutes: in.BreakDurationMinutes,
		}
		up.tournaments = append(up.tournaments, created)
		writeJSON(w, created)
	})
	mux.HandleFunc("PUT /tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var in tournament.TournamentInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		up.mu.Lock()
		defer up.mu.Unlock()
		for i := range up.tournaments {
			if itoa(up.tournaments[i].ID) == r.PathValue("id") {
				up.tournaments[i].Name = in.Name
				up.tournaments[i].StartTime = in.StartTime
				up.tournaments[i].NumFields = in.NumFields
				writeJSON(w, up.tournaments[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"detail": "Tournament not found"})
	})
	mux.HandleFunc("DELETE /tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		kept := up.tournaments[:0]
		for _, tour := range up.tournaments {
			if itoa(tour.ID) != r.PathValue("id") {
				kept = append(kept, tour)
			}
		}
		up.tournaments = kept
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /tournaments/{id}/poules/", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var in struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		up.mu.Lock()
		defer up.mu.Unlock()
		poule := tournament.Poule{ID: 20 + len(up.poules), Name: in.Name, TournamentID: 1}
		up.poules = append(up.poules, poule)
		writeJSON(w, poule)
	})
	mux.HandleFunc("PUT /poules/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var in struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		up.mu.Lock()
		defer up.mu.Unlock()
		for i := range up.poules {
			if itoa(up.poules[i].ID) == r.PathValue("id") {
				up.poules[i].Name = in.Name
				writeJSON(w, up.poules[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"detail": "Poule not found"})
	})
	mux.HandleFunc("DELETE /poules/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		kept := up.poules[:0]
		for _, p := range up.poules {
			if itoa(p.ID) != r.PathValue("id") {
				kept = append(kept, p)
			}
		}
		up.poules = kept
		for i := range up.teams {
			if up.teams[i].PouleID != nil && itoa(*up.teams[i].PouleID) == r.PathValue("id") {
				up.teams[i].PouleID = nil
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("PUT /teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var in tournament.TeamInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		up.mu.Lock()
		defer up.mu.Unlock()
		team := up.team(r.PathValue("id"))
		if team == nil {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"detail": "Team not found"})
			return
		}
		for _, other := range up.teams {
			if other.ID != team.ID && other.Name == in.Name {
				w.WriteHeader(http.StatusBadRequest)
				writeJSON(w, map[string]string{"detail": "Team name already exists"})
				return
			}
		}
		team.Name = in.Name
		if in.PouleID != nil {
			team.PouleID = in.PouleID
		}
		writeJSON(w, team)
	})
	mux.HandleFunc("PUT /teams/{id}/assign-poule/{poule}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		up.assigns++
		team := up.team(r.PathValue("id"))
		pouleID, err := strconv.Atoi(r.PathValue("poule"))
		if team == nil || err != nil {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"detail": "Team not found"})
			return
		}
		team.PouleID = &pouleID
		writeJSON(w, team)
	})
	mux.HandleFunc("DELETE /teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		kept := up.teams[:0]
		for _, team := range up.teams {
			if itoa(team.ID) != r.PathValue("id") {
				kept = append(kept, team)
			}
		}
		up.teams = kept
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /tournaments/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		up.mu.Lock()
		defer up.mu.Unlock()
		up.generated = append(up.generated, r.PathValue("action"))
		writeJSON(w, map[string]string{"message": "Done: " + r.PathValue("action")})
	})
	mux.HandleFunc("POST /matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
		if fail(w, r) {
			return
		}
		var update tournament.ScoreUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))

		up.mu.Lock()
		defer up.mu.Unlock()
		var matchID int
		for ri := range up.rounds {
			for mi := range up.rounds[ri].Matches {
				m := &up.rounds[ri].Matches[mi]
				if r.PathValue("id") != itoa(m.ID) {
					continue
				}
				matchID = m.ID
				m.HomeSet1Score, m.AwaySet1Score = update.HomeSet1Score, update.AwaySet1Score
				m.HomeSet2Score, m.AwaySet2Score = update.HomeSet2Score, update.AwaySet2Score
			}
		}
		if matchID == 0 {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"detail": "Match not found"})
			return
		}
		up.scores[matchID] = update
		writeJSON(w, map[string]string{"message": "Score saved"})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["username"] {
		case "admin":
			writeJSON(w, map[string]string{"access_token": "admin-token", "token_type": "bearer"})
		case "retired":
			writeJSON(w, map[string]string{"access_token": "retired-token", "token_type": "bearer"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Incorrect username or password"})
		}
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer admin-token":
			writeJSON(w, map[string]any{"username": "admin", "is_active": true})
		case "Bearer retired-token":
			writeJSON(w, map[string]any{"username": "retired", "is_active": false})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL), up
}

func (u *fakeUpstream) failNext(method, path string, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failWith[method+" "+path] = status
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func (u *fakeUpstream) setStatus(s tournament.PhaseStatus) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = s
}

func (u *fakeUpstream) scoreFor(matchID int) (tournament.ScoreUpdate, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.scores[matchID]
	return s, ok
}

func (u *fakeUpstream) generatedActions() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.generated...)
}

func (u *fakeUpstream) teamCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.teams)
}

// team must be called with u.mu held.
func (u *fakeUpstream) team(id string) *tournament.Team {
	for i := range u.teams {
		if itoa(u.teams[i].ID) == id {
			return &u.teams[i]
		}
	}
	return nil
}

func (u *fakeUpstream) teamByID(id int) (tournament.Team, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if team := u.team(itoa(id)); team != nil {
		return *team, true
	}
	return tournament.Team{}, false
}

func (u *fakeUpstream) pouleNames() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	var names []string
	for _, p := range u.poules {
		names = append(names, p.Name)
	}
	return names
}

func (u *fakeUpstream) assignCalls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.assigns
}

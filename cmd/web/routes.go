package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/config"
	"github.com/AdamBeresnev/poule-board/internal/export"
	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/httputil"
	"github.com/AdamBeresnev/poule-board/internal/middleware"
	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/service"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/AdamBeresnev/poule-board/views"
	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultWidth is assumed until the page reports the real window width.
const defaultWidth = 1024

const (
	flashKey      = "flash"
	flashErrorKey = "flash_error"
)

type app struct {
	cfg            *config.Config
	api            *apiclient.Client
	gates          *gate.Registry
	sessionManager *scs.SessionManager
	metrics        *prometheus.Registry
}

func newRouter(a *app) http.Handler {
	tournamentService := service.NewTournamentService(a.api)
	matchService := service.NewMatchService(a.api, a.gates)
	phaseService := service.NewPhaseService(a.api, a.gates)
	teamService := service.NewTeamService(a.api)
	authService := service.NewAuthService(a.api)

	r := chi.NewRouter()

	// The login limiter keys on RemoteAddr, so only rewrite it when a
	// trusted proxy sets the forwarding headers.
	if a.cfg.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(a.sessionManager.LoadAndSave)
	r.Use(middleware.LoadSession(a.sessionManager))

	r.Handle("/metrics", promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		list, err := tournamentService.List(r.Context())
		if err != nil {
			httputil.UpstreamError(w, "failed to list tournaments", err)
			return
		}
		render(w, r, views.Index(list, a.popFlash(r)))
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		render(w, r, views.LoginPage("", ""))
	})

	r.With(middleware.RateLimit(middleware.PerMinute(a.cfg.Server.LoginRatePerMinute))).
		Post("/login", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			username := r.Form.Get("username")
			token, me, err := authService.Login(r.Context(), username, r.Form.Get("password"))
			if err != nil {
				slog.Info("login failed", "username", username, "error", err)
				w.WriteHeader(http.StatusUnauthorized)
				render(w, r, views.LoginPage(username, loginMessage(err)))
				return
			}
			if err := middleware.SignIn(r.Context(), a.sessionManager, token, me.Username); err != nil {
				httputil.InternalServerError(w, "Failed to start session", err)
				return
			}
			http.Redirect(w, r, "/", http.StatusFound)
		})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := a.sessionManager.Destroy(r.Context()); err != nil {
			slog.Warn("failed to destroy session", "error", err)
		}
		if httputil.IsHTMX(r) {
			w.Header().Set("HX-Redirect", "/")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := tournamentID(w, r)
		if !ok {
			return
		}
		t, err := tournamentService.Get(r.Context(), id)
		if err != nil {
			a.pageError(w, r, "failed to load tournament", err)
			return
		}
		tab, _ := views.ParseTab(r.URL.Query().Get("tab"))
		content := a.tabContent(r, tournamentService, id, tab)
		render(w, r, views.TournamentPage(t, tab, content))
	})

	for _, tab := range []views.Tab{views.TabSchedule, views.TabStandings, views.TabOverall} {
		r.Get("/tournaments/{id}/"+string(tab), func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			render(w, r, a.tabContent(r, tournamentService, id, tab))
		})
	}

	r.Get("/tournaments/{id}/overall.xlsx", func(w http.ResponseWriter, r *http.Request) {
		id, ok := tournamentID(w, r)
		if !ok {
			return
		}
		t, err := tournamentService.Get(r.Context(), id)
		if err != nil {
			a.pageError(w, r, "failed to load tournament", err)
			return
		}
		view, err := tournamentService.Overall(r.Context(), id, viewOptions(r))
		if err != nil {
			a.pageError(w, r, "failed to load overall standings", err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tournament-%d-overall.xlsx"`, id))
		if err := export.WriteOverall(w, t.Name, view); err != nil {
			slog.Error("failed to write spreadsheet", "tournament_id", id, "error", err)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/tournaments/{id}/manage", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			// Start polling now so the websocket has a warm controller.
			a.gates.Get(id)

			data, err := tournamentService.Manage(r.Context(), id)
			if err != nil {
				a.pageError(w, r, "failed to load manage page", err)
				return
			}
			render(w, r, views.ManagePage(data, a.popFlash(r)))
		})

		r.Post("/tournaments/{id}/generate/{phase}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			phase := tournament.PhaseType(chi.URLParam(r, "phase"))
			msg, err := phaseService.Generate(r.Context(), id, phase)
			if err != nil {
				if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
					return
				}
				render(w, r, views.Flash(apiclient.Message(err), false))
				return
			}
			render(w, r, views.Flash(msg, true))
		})

		r.Get("/tournaments/{id}/gates", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			ctrl := a.gates.Get(id)
			if ctrl == nil {
				http.Error(w, "Shutting down", http.StatusServiceUnavailable)
				return
			}
			render(w, r, views.GatesFragment(ctrl.State()))
		})

		r.Get("/tournaments/{id}/gates/ws", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			serveGates(w, r, a.gates, id)
		})

		r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			in, err := service.ParseTournamentForm(r.Form)
			if err != nil {
				a.redirectWithFlash(w, r, "/", "", err)
				return
			}
			created, err := tournamentService.Create(r.Context(), in)
			if err != nil {
				a.redirectWithFlash(w, r, "/", "", err)
				return
			}
			a.redirectWithFlash(w, r, "/", fmt.Sprintf("Created %s.", created.Name), nil)
		})

		r.Post("/tournaments/{id}/settings", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			in, err := service.ParseTournamentForm(r.Form)
			if err == nil {
				_, err = tournamentService.Update(r.Context(), id, in)
			}
			a.redirectWithFlash(w, r, manageURL(id), "Settings saved.", err)
		})

		r.Post("/tournaments/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			if err := tournamentService.Delete(r.Context(), id); err != nil {
				a.redirectWithFlash(w, r, manageURL(id), "", err)
				return
			}
			a.gates.Remove(id)
			a.redirectWithFlash(w, r, "/", "Tournament deleted.", nil)
		})

		r.Post("/tournaments/{id}/poules", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			p, err := teamService.CreatePoule(r.Context(), id, r.Form.Get("name"))
			msg := ""
			if err == nil {
				msg = fmt.Sprintf("Added poule %s.", p.Name)
			}
			a.redirectWithFlash(w, r, manageURL(id), msg, err)
		})

		r.Post("/tournaments/{id}/poules/{pouleID}/rename", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			pouleID, ok := pathID(w, r, "pouleID", "Invalid poule ID")
			if !ok {
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			_, err := teamService.RenamePoule(r.Context(), pouleID, r.Form.Get("name"))
			a.redirectWithFlash(w, r, manageURL(id), "Poule renamed.", err)
		})

		r.Post("/tournaments/{id}/poules/{pouleID}/delete", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			pouleID, ok := pathID(w, r, "pouleID", "Invalid poule ID")
			if !ok {
				return
			}
			err := teamService.DeletePoule(r.Context(), pouleID)
			a.redirectWithFlash(w, r, manageURL(id), "Poule deleted.", err)
		})

		r.Post("/tournaments/{id}/teams", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			pouleID, err := formPoule(r)
			if err != nil {
				httputil.BadRequest(w, "Invalid poule", err)
				return
			}

			created, err := teamService.ImportTeams(r.Context(), id, r.Form.Get("names"), pouleID)
			if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
				return
			}
			msg := fmt.Sprintf("Added %d teams.", len(created))
			if err != nil {
				msg = fmt.Sprintf("Added %d teams, then stopped: %s", len(created), apiclient.Message(err))
			}
			a.sessionManager.Put(r.Context(), flashKey, msg)
			http.Redirect(w, r, manageURL(id), http.StatusSeeOther)
		})

		r.Post("/tournaments/{id}/teams/{teamID}/edit", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			teamID, ok := pathID(w, r, "teamID", "Invalid team ID")
			if !ok {
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			pouleID, err := formPoule(r)
			if err != nil {
				httputil.BadRequest(w, "Invalid poule", err)
				return
			}
			_, err = teamService.EditTeam(r.Context(), teamID, r.Form.Get("name"), pouleID)
			a.redirectWithFlash(w, r, manageURL(id), "Team saved.", err)
		})

		r.Post("/tournaments/{id}/teams/{teamID}/delete", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			teamID, ok := pathID(w, r, "teamID", "Invalid team ID")
			if !ok {
				return
			}
			err := teamService.DeleteTeam(r.Context(), teamID)
			a.redirectWithFlash(w, r, manageURL(id), "Team deleted.", err)
		})

		r.Get("/tournaments/{id}/scores", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			t, err := tournamentService.Get(r.Context(), id)
			if err != nil {
				a.pageError(w, r, "failed to load tournament", err)
				return
			}
			sel := tournament.ParsePhaseSelection(r.URL.Query().Get("phase"))
			view, err := tournamentService.ScoreEntry(r.Context(), id, sel, viewOptions(r))
			if err != nil {
				a.pageError(w, r, "failed to load matches", err)
				return
			}
			render(w, r, views.ScoreEntryPage(t, view))
		})

		r.Get("/tournaments/{id}/scores/list", func(w http.ResponseWriter, r *http.Request) {
			id, ok := tournamentID(w, r)
			if !ok {
				return
			}
			sel := tournament.ParsePhaseSelection(r.URL.Query().Get("phase"))
			view, err := tournamentService.ScoreEntry(r.Context(), id, sel, viewOptions(r))
			if err != nil {
				a.fragmentError(w, r, "failed to load matches", err)
				return
			}
			render(w, r, views.ScoreEntryFragment(id, view, nil))
		})

		r.Post("/matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
			matchID, err := strconv.Atoi(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid match ID", err)
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			tid, err := strconv.Atoi(r.Form.Get("tournament"))
			if err != nil {
				httputil.BadRequest(w, "Invalid tournament ID", err)
				return
			}
			sel := tournament.ParsePhaseSelection(r.Form.Get("phase"))
			opts := viewOptions(r)

			view, err := matchService.SubmitScore(r.Context(), tid, matchID, score.InputFromForm(r.Form), sel, opts)
			if err == nil {
				render(w, r, views.ScoreEntryFragment(tid, view, views.Flash("Score saved.", true)))
				return
			}
			if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
				return
			}

			// Show the rejection above a fresh copy of the list.
			slog.Warn("score submission failed", "match_id", matchID, "error", err)
			flash := views.Flash(apiclient.Message(err), false)
			view, loadErr := tournamentService.ScoreEntry(r.Context(), tid, sel, opts)
			if loadErr != nil {
				render(w, r, templ.Join(flash, views.InlineError(apiclient.Message(loadErr))))
				return
			}
			render(w, r, views.ScoreEntryFragment(tid, view, flash))
		})
	})

	return r
}

func (a *app) tabContent(r *http.Request, s *service.TournamentService, id int, tab views.Tab) templ.Component {
	opts := viewOptions(r)
	var (
		content templ.Component
		err     error
	)
	switch tab {
	case views.TabStandings:
		var view viewmodel.Standings
		view, err = s.Standings(r.Context(), id, opts)
		content = views.StandingsFragment(view)
	case views.TabOverall:
		var view viewmodel.Overall
		view, err = s.Overall(r.Context(), id, opts)
		content = views.OverallFragment(view)
	default:
		var view viewmodel.Schedule
		view, err = s.Schedule(r.Context(), id, opts)
		content = views.ScheduleFragment(view)
	}
	if err != nil {
		slog.Warn("failed to load view", "tournament_id", id, "tab", tab, "error", err)
		return views.InlineError(apiclient.Message(err))
	}
	return content
}

// pageError answers a full page request whose data could not be loaded.
func (a *app) pageError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
		return
	}
	if errors.Is(err, service.ErrTournamentNotFound) || errors.Is(err, apiclient.ErrNotFound) {
		httputil.NotFound(w, "Tournament not found", err)
		return
	}
	httputil.UpstreamError(w, msg, err)
}

// fragmentError swaps an inline error into the view. htmx ignores non-2xx
// bodies, so it answers 200.
func (a *app) fragmentError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
		return
	}
	slog.Warn(msg, "error", err)
	render(w, r, views.InlineError(apiclient.Message(err)))
}

// popFlash takes the outcome left by the last organizer action.
func (a *app) popFlash(r *http.Request) templ.Component {
	return templ.Join(
		views.Flash(a.sessionManager.PopString(r.Context(), flashKey), true),
		views.Flash(a.sessionManager.PopString(r.Context(), flashErrorKey), false),
	)
}

// redirectWithFlash stores the outcome of an organizer form for the page it
// redirects to.
func (a *app) redirectWithFlash(w http.ResponseWriter, r *http.Request, to, msg string, err error) {
	if middleware.ExpireOnUnauthorized(a.sessionManager, w, r, err) {
		return
	}
	if err != nil {
		slog.Warn("organizer action failed", "path", r.URL.Path, "error", err)
		a.sessionManager.Put(r.Context(), flashErrorKey, apiclient.Message(err))
	} else {
		a.sessionManager.Put(r.Context(), flashKey, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func manageURL(id int) string {
	return fmt.Sprintf("/tournaments/%d/manage", id)
}

func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if err := views.Render(w, r, c); err != nil {
		slog.Error("failed to render", "path", r.URL.Path, "error", err)
	}
}

func tournamentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	return pathID(w, r, "id", "Invalid tournament ID")
}

func pathID(w http.ResponseWriter, r *http.Request, param, msg string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id <= 0 {
		httputil.BadRequest(w, msg, err)
		return 0, false
	}
	return id, true
}

// formPoule reads the optional poule select. Empty means no poule.
func formPoule(r *http.Request) (*int, error) {
	raw := r.Form.Get("poule")
	if raw == "" {
		return nil, nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// viewOptions reads the presentation width the page sent along and whether an
// organizer is signed in.
func viewOptions(r *http.Request) viewmodel.Options {
	width := defaultWidth
	if raw := r.FormValue("width"); raw != "" {
		if w, err := strconv.Atoi(raw); err == nil && w > 0 {
			width = w
		}
	}
	return viewmodel.Options{
		Width:         width,
		Authenticated: middleware.GetAuthenticatedUser(r.Context()) != nil,
	}
}

func loginMessage(err error) string {
	if errors.Is(err, service.ErrInactiveAccount) {
		return "This account is disabled."
	}
	return apiclient.Message(err)
}

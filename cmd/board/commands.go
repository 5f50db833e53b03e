package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/debounce"
	"github.com/AdamBeresnev/poule-board/internal/export"
	"github.com/AdamBeresnev/poule-board/internal/gate"
	"github.com/AdamBeresnev/poule-board/internal/score"
	"github.com/AdamBeresnev/poule-board/internal/service"
	"github.com/AdamBeresnev/poule-board/internal/tournament"
	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/urfave/cli/v2"
)

func (s *session) ctx(parent context.Context) context.Context {
	if s.token == "" {
		return parent
	}
	return apiclient.WithToken(parent, s.token)
}

func (s *session) options() viewmodel.Options {
	return viewmodel.Options{Width: s.width, Authenticated: s.token != ""}
}

func intArg(c *cli.Context, i int, name string) (int, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

// withTournament runs fn with a session and the tournament id of the first
// argument.
func withTournament(fn func(c *cli.Context, s *session, id int) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := newSession(c)
		if err != nil {
			return err
		}
		id, err := intArg(c, 0, "tournament id")
		if err != nil {
			return err
		}
		return fn(c, s, id)
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "exchange organizer credentials for a token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"POULE_BOARD_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			token, me, err := service.NewAuthService(s.client).Login(c.Context, c.String("username"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.ErrWriter, "signed in as %s\n", me.Username)
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}

func tournamentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tournaments",
		Usage: "list tournaments",
		Action: func(c *cli.Context) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			list, err := service.NewTournamentService(s.client).List(s.ctx(c.Context))
			if err != nil {
				return err
			}
			return renderTournaments(c.App.Writer, list)
		},
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Usage:     "print the match schedule",
		ArgsUsage: "<tournament-id>",
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			view, err := service.NewTournamentService(s.client).Schedule(s.ctx(c.Context), id, s.options())
			if err != nil {
				return err
			}
			return renderSchedule(c.App.Writer, view)
		}),
	}
}

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:      "standings",
		Usage:     "print the poule standings",
		ArgsUsage: "<tournament-id>",
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			view, err := service.NewTournamentService(s.client).Standings(s.ctx(c.Context), id, s.options())
			if err != nil {
				return err
			}
			return renderStandings(c.App.Writer, view)
		}),
	}
}

func overallCommand() *cli.Command {
	return &cli.Command{
		Name:      "overall",
		Usage:     "print the overall ranking",
		ArgsUsage: "<tournament-id>",
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			view, err := service.NewTournamentService(s.client).Overall(s.ctx(c.Context), id, s.options())
			if err != nil {
				return err
			}
			return renderOverall(c.App.Writer, view)
		}),
	}
}

var phaseFlag = &cli.StringFlag{
	Name:  "phase",
	Value: string(tournament.SelectCurrent),
	Usage: "current, all, group, knockout or final",
}

func scoresCommand() *cli.Command {
	return &cli.Command{
		Name:      "scores",
		Usage:     "list matches with their entered scores",
		ArgsUsage: "<tournament-id>",
		Flags:     []cli.Flag{phaseFlag},
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			sel := tournament.ParsePhaseSelection(c.String("phase"))
			view, err := service.NewTournamentService(s.client).ScoreEntry(s.ctx(c.Context), id, sel, s.options())
			if err != nil {
				return err
			}
			return renderScoreEntry(c.App.Writer, view)
		}),
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "submit the set scores of a match; pass \"\" to leave a value unentered",
		ArgsUsage: "<tournament-id> <match-id> <home-set1> <away-set1> <home-set2> <away-set2>",
		Flags:     []cli.Flag{phaseFlag},
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			matchID, err := intArg(c, 1, "match id")
			if err != nil {
				return err
			}
			if c.Args().Len() != 6 {
				return fmt.Errorf("expected four score values, got %d", c.Args().Len()-2)
			}
			in := score.Input{
				HomeSet1: c.Args().Get(2),
				AwaySet1: c.Args().Get(3),
				HomeSet2: c.Args().Get(4),
				AwaySet2: c.Args().Get(5),
			}
			sel := tournament.ParsePhaseSelection(c.String("phase"))
			view, err := service.NewMatchService(s.client, nil).SubmitScore(s.ctx(c.Context), id, matchID, in, sel, s.options())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.ErrWriter, "score saved")
			return renderScoreEntry(c.App.Writer, view)
		}),
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "generate the rounds of a phase",
		ArgsUsage: "<tournament-id> <group|knockout|final>",
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			phase := tournament.PhaseType(c.Args().Get(1))
			msg, err := service.NewPhaseService(s.client, nil).Generate(s.ctx(c.Context), id, phase)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, msg)
			return nil
		}),
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "write the overall ranking to an .xlsx file",
		ArgsUsage: "<tournament-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, defaults to tournament-<id>-overall.xlsx"},
		},
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			tournamentService := service.NewTournamentService(s.client)
			ctx := s.ctx(c.Context)

			t, err := tournamentService.Get(ctx, id)
			if err != nil {
				return err
			}
			view, err := tournamentService.Overall(ctx, id, s.options())
			if err != nil {
				return err
			}

			path := c.String("out")
			if path == "" {
				path = fmt.Sprintf("tournament-%d-overall.xlsx", id)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := export.WriteOverall(f, t.Name, view); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.ErrWriter, "wrote", path)
			return nil
		}),
	}
}

func gatesCommand() *cli.Command {
	return &cli.Command{
		Name:      "gates",
		Usage:     "watch which phases can be generated",
		ArgsUsage: "<tournament-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "once", Usage: "print the first applied state and exit"},
		},
		Action: withTournament(func(c *cli.Context, s *session, id int) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()
			return watchGates(ctx, c, s, id, c.Bool("once"))
		}),
	}
}

// watchGates redraws on every applied poll. Each poll also reloads the rounds
// to show the current phase; those loads are sequenced so a slow one cannot
// overwrite a newer one, and bursts of redraws are coalesced.
func watchGates(ctx context.Context, c *cli.Context, s *session, id int, once bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := gate.NewController(id, s.client, gate.Options{
		Interval: s.cfg.Gates.PollInterval,
		Timeout:  s.cfg.API.Timeout,
	})
	states, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	var (
		phase service.ViewState[tournament.PhaseType]
		outMu sync.Mutex
		loads sync.WaitGroup
	)
	redraw := debounce.New(debounce.DefaultDelay, func() {
		current, _ := phase.Current()
		outMu.Lock()
		defer outMu.Unlock()
		_ = renderGates(c.App.Writer, ctrl.State(), current)
	})
	defer redraw.Stop()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		ctrl.Run(ctx)
	}()
	defer func() {
		cancel()
		<-runDone
		loads.Wait()
	}()

	for state := range states {
		if once {
			current := loadCurrentPhase(ctx, s, id)
			return renderGates(c.App.Writer, state, current)
		}

		seq := phase.Begin()
		loads.Add(1)
		go func() {
			defer loads.Done()
			rounds, err := s.client.Rounds(s.ctx(ctx), id)
			if err != nil {
				return
			}
			if phase.Apply(seq, tournament.CurrentPhase(rounds)) {
				redraw.Trigger()
			}
		}()
		redraw.Trigger()
	}
	return nil
}

func loadCurrentPhase(ctx context.Context, s *session, id int) tournament.PhaseType {
	rounds, err := s.client.Rounds(s.ctx(ctx), id)
	if err != nil {
		return ""
	}
	return tournament.CurrentPhase(rounds)
}

package main

import (
	"checkers/communication/server"
	"checkers/config"
	"checkers/engine"
	"checkers/experiments"
	"checkers/game"
	"checkers/meta"
	"checkers/player"
	"checkers/searcher"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "checkers",
		Usage: "Checkers against humans or minimax bots",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "settings",
				Usage: "path to the settings file",
				Value: config.DefaultFile,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log search decisions",
			},
		},
		Before: func(cCtx *cli.Context) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if cCtx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play an interactive game (flags are saved to the settings file)",
				Flags:  append(settingsFlags(), playFlags()...),
				Action: play,
			},
			{
				Name:  "settings",
				Usage: "update, reset or print the settings file",
				Flags: append(settingsFlags(),
					&cli.BoolFlag{
						Name:    "default",
						Aliases: []string{"d"},
						Usage:   "reset the settings to the defaults",
					},
					&cli.BoolFlag{
						Name:    "print",
						Aliases: []string{"s"},
						Usage:   "print the current settings",
					},
				),
				Action: settings,
			},
			{
				Name:  "experiment",
				Usage: "run bot against bot match ups and store metrics as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "experiment to run [depth|parallel]",
						Value: "depth",
					},
					&cli.IntFlag{
						Name:    "size",
						Aliases: []string{"n"},
						Usage:   "board size",
						Value:   meta.DefaultBoardSize,
					},
					&cli.IntFlag{
						Name:  "games",
						Usage: "games per match up (0 keeps the experiment's default)",
					},
					&cli.IntFlag{
						Name:  "max-turns",
						Usage: "turn cap per game",
						Value: meta.MaxTurns,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "output directory, empty to skip writing",
						Value: "experiments",
					},
				},
				Action: experiment,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers failed")
	}
}

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"n"},
			Usage:   "board size (even, 4 to 100)",
		},
		&cli.StringFlag{
			Name:    "layout",
			Aliases: []string{"l"},
			Usage:   "starting layout: classic, frisian or a .txt grid",
		},
		&cli.StringFlag{
			Name:    "player1",
			Aliases: []string{"w"},
			Usage:   "First side [player|bot|abot]",
		},
		&cli.StringFlag{
			Name:    "player2",
			Aliases: []string{"b"},
			Usage:   "Second side [player|bot|abot]",
		},
	}
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "depth",
			Usage: "search depth of abot players",
			Value: meta.DefaultDepth,
		},
		&cli.IntFlag{
			Name:  "goroutines",
			Usage: "goroutines for the root search of abot players",
			Value: meta.GO_ROUTINES,
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed for bots (0 picks one from the clock)",
		},
		&cli.StringFlag{
			Name:  "spectate",
			Usage: "serve a websocket spectator feed on this address, e.g. :8080",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "draw the board without colors",
		},
	}
}

// loadSettings reads the settings file, applies the flags that were set and
// saves the result when anything changed.
func loadSettings(cCtx *cli.Context) (config.Settings, error) {
	path := cCtx.String("settings")
	s, err := config.Load(path)
	if err != nil {
		return s, err
	}

	changed := false
	if cCtx.IsSet("size") {
		s.BoardSize, changed = cCtx.Int("size"), true
	}
	if cCtx.IsSet("layout") {
		s.Layout, changed = cCtx.String("layout"), true
	}
	if cCtx.IsSet("player1") {
		s.Player1, changed = cCtx.String("player1"), true
	}
	if cCtx.IsSet("player2") {
		s.Player2, changed = cCtx.String("player2"), true
	}
	if !changed {
		return s, nil
	}
	if err := config.Save(path, s); err != nil {
		return s, err
	}
	log.Info().Msgf("saved settings to %s", path)
	return s, nil
}

func settings(cCtx *cli.Context) error {
	path := cCtx.String("settings")
	if cCtx.Bool("default") {
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		log.Info().Msgf("restored default settings in %s", path)
		return nil
	}

	s, err := loadSettings(cCtx)
	if err != nil {
		return err
	}
	if cCtx.Bool("print") {
		fmt.Print(s)
	}
	return nil
}

func play(cCtx *cli.Context) error {
	s, err := loadSettings(cCtx)
	if err != nil {
		return err
	}
	g, err := s.NewGame()
	if err != nil {
		return err
	}

	// The root command has no play flags, so zero values fall back to the defaults.
	depth := cCtx.Int("depth")
	if depth <= 0 {
		depth = meta.DefaultDepth
	}
	options := []player.Option{
		player.WithSearchOptions(
			searcher.WithDepth(depth),
			searcher.WithGoroutines(max(cCtx.Int("goroutines"), 1)),
		),
	}
	if seed := cCtx.Uint64("seed"); seed > 0 {
		options = append(options, player.WithSeed(seed))
	}
	first, second, err := s.Players(options...)
	if err != nil {
		return err
	}

	profile := termenv.EnvColorProfile()
	if cCtx.Bool("no-color") {
		profile = termenv.Ascii
	}
	engineOptions := []engine.Option{engine.WithColorProfile(profile)}

	if addr := cCtx.String("spectate"); addr != "" {
		spectator := server.NewSpectator()
		spectator.Observe(g)
		go func() {
			if err := spectator.Start(addr); err != nil {
				log.Error().Err(err).Msg("spectator feed stopped")
			}
		}()
		defer spectator.Close()
		engineOptions = append(engineOptions, engine.WithObserver(spectator.Observe))
	}

	if first.IsAutomated() && second.IsAutomated() {
		renderer := engine.NewRenderer(os.Stdout, profile)
		engineOptions = append(engineOptions, engine.WithObserver(func(g *game.Game) {
			renderer.Render(g.Snapshot())
		}))
		renderer.Render(g.Snapshot())
		winner, gameMetric, _ := engine.LocalEngine(g, first, second, engineOptions...).Run()
		log.Info().Msgf("winner %s after %d moves in %s", winner, gameMetric.TotalMoves, gameMetric.Duration)
		return nil
	}

	fmt.Println("type help for commands")
	return engine.NewSession(g, first, second, os.Stdin, os.Stdout, engineOptions...).Run()
}

func experiment(cCtx *cli.Context) error {
	exp, err := experiments.ByName(cCtx.String("name"), cCtx.Int("size"))
	if err != nil {
		return err
	}
	if games := cCtx.Int("games"); games > 0 {
		exp.Games = games
	}
	exp.MaxTurns = cCtx.Int("max-turns")

	result, err := experiments.Run(exp, cCtx.String("out"))
	if err != nil {
		return err
	}
	for _, summary := range result.Summaries {
		fmt.Println(summary)
	}
	if result.Dir != "" {
		fmt.Printf("records written to %s\n", result.Dir)
	}
	return nil
}

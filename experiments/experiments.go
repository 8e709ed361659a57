package experiments

import (
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/player"
	"checkers/searcher"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

// Experiment plays every match up NumGames times on the same layout.
type Experiment struct {
	Name      string
	Configs   []metrics.AgentConfig
	MatchUps  [][2]metrics.AgentConfig
	Games     int
	BoardSize int
	Layout    string
	MaxTurns  int
}

type Result struct {
	RunID     string
	Dir       string // empty when nothing was written
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []Summary
}

var randomBaseline = metrics.AgentConfig{ID: 0, Kind: player.Random.String(), Seed: 1}

// DepthExperiment pairs the random bot against search bots of growing depth.
func DepthExperiment(boardSize int) Experiment {
	configs := []metrics.AgentConfig{
		randomBaseline,
		{ID: 1, Kind: player.Search.String(), Depth: 1, Goroutines: 1, Seed: 2},
		{ID: 2, Kind: player.Search.String(), Depth: 2, Goroutines: 1, Seed: 3},
		{ID: 3, Kind: player.Search.String(), Depth: 3, Goroutines: 1, Seed: 4},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{randomBaseline, config})
	}
	return Experiment{
		Name:      "depth",
		Configs:   configs,
		MatchUps:  matchUps,
		Games:     NumGames,
		BoardSize: boardSize,
		Layout:    game.ClassicPattern,
	}
}

// ParallelExperiment compares sequential and parallel root evaluation at the
// default depth. Each config plays itself.
func ParallelExperiment(boardSize int) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: player.Search.String(), Depth: 3, Goroutines: 1, Seed: 5},
		{ID: 2, Kind: player.Search.String(), Depth: 3, Goroutines: 2, Seed: 6},
		{ID: 3, Kind: player.Search.String(), Depth: 3, Goroutines: 4, Seed: 7},
		{ID: 4, Kind: player.Search.String(), Depth: 3, Goroutines: 8, Seed: 8},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{
		Name:      "parallel",
		Configs:   configs,
		MatchUps:  matchUps,
		Games:     NumGames / 4,
		BoardSize: boardSize,
		Layout:    game.ClassicPattern,
	}
}

// ByName returns the named experiment.
func ByName(name string, boardSize int) (Experiment, error) {
	switch name {
	case "depth":
		return DepthExperiment(boardSize), nil
	case "parallel":
		return ParallelExperiment(boardSize), nil
	default:
		return Experiment{}, fmt.Errorf("unknown experiment %q (want depth or parallel)", name)
	}
}

// Run plays the experiment and, when outDir is not empty, stores the agent
// configs, game records and move records as CSV under outDir/<name>/<run id>.
// Agents alternate sides so each config starts half of the games.
func Run(exp Experiment, outDir string) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	layout, err := game.LoadLayout(exp.Layout, exp.BoardSize)
	if err != nil {
		return result, fmt.Errorf("failed to load layout: %w", err)
	}

	log.Info().Msgf("starting %s experiment %s...", exp.Name, result.RunID)

	count := 0
	for mi, matchUp := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < exp.Games; i++ {
			first, second := matchUp[0], matchUp[1]
			if i%2 == 1 {
				first, second = second, first
			}

			count++
			g, err := game.NewGame(layout)
			if err != nil {
				return result, err
			}
			gameMetric, moveMetrics := runGame(g, first, second, uint64(count), exp.MaxTurns)
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	result.Summaries = Summarize(exp, result.Games, result.Moves)
	for _, summary := range result.Summaries {
		log.Info().Msgf("%s", summary)
	}
	log.Info().Msgf("completed %s experiment", exp.Name)

	if outDir == "" {
		return result, nil
	}
	result.Dir, err = store(exp, result, outDir)
	return result, err
}

func store(exp Experiment, result Result, outDir string) (string, error) {
	writer, err := metrics.NewWriter(outDir, exp.Name, result.RunID)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(exp.Configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(result.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(result.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game between two agents on g.
func runGame(g *game.Game, config1, config2 metrics.AgentConfig, gameSeed uint64, maxTurns int) (metrics.GameMetric, []metrics.MoveMetric) {
	first := createPlayer(config1, game.First, gameSeed)
	second := createPlayer(config2, game.Second, gameSeed)

	e := engine.LocalEngine(g, first, second, engine.WithMaxTurns(maxTurns))
	_, gameMetric, moveMetrics := e.Run()
	return gameMetric, moveMetrics
}

func createPlayer(config metrics.AgentConfig, side game.Side, gameSeed uint64) *player.Player {
	kind, err := player.ParseKind(config.Kind)
	if err != nil || kind == player.Human {
		panic(fmt.Sprintf("experiment agent %d has kind %q, want bot or abot", config.ID, config.Kind))
	}

	options := []player.Option{player.WithSeed(config.Seed*1_000_003 + gameSeed)}
	if kind == player.Search {
		searchOptions := []searcher.Option{searcher.WithMetrics()}
		if config.Depth > 0 {
			searchOptions = append(searchOptions, searcher.WithDepth(config.Depth))
		}
		if config.Goroutines > 0 {
			searchOptions = append(searchOptions, searcher.WithGoroutines(config.Goroutines))
		}
		options = append(options, player.WithSearchOptions(searchOptions...))
	}
	return player.New(kind, side, options...)
}

package experiments

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games of one match up. Agent A plays First in the
// even games of the match up, agent B in the odd ones.
type Summary struct {
	MatchUp    int
	AgentA     int // AgentConfig.ID
	AgentB     int // AgentConfig.ID
	Games      int
	WinsA      int
	WinsB      int
	Unfinished int
	MeanMoves  float64
	StdMoves   float64
	MeanSearch time.Duration // per searched step, zero without search agents
}

func (s Summary) String() string {
	return fmt.Sprintf("matchup %d: agent %d won %d, agent %d won %d, %d unfinished of %d games; moves %.1f±%.1f; search %s per step",
		s.MatchUp, s.AgentA, s.WinsA, s.AgentB, s.WinsB, s.Unfinished, s.Games, s.MeanMoves, s.StdMoves, s.MeanSearch)
}

// Summarize splits the records into match ups in the order Run plays them.
func Summarize(exp Experiment, games []metrics.GameRecord, moves []metrics.MoveRecord) []Summary {
	if exp.Games <= 0 {
		return nil
	}

	searchTimes := map[int][]float64{} // game ID -> search durations in nanoseconds
	for _, move := range moves {
		if move.Depth > 0 {
			searchTimes[move.Game] = append(searchTimes[move.Game], float64(move.Duration))
		}
	}

	summaries := []Summary{}
	for mi, matchUp := range exp.MatchUps {
		start := mi * exp.Games
		if start >= len(games) {
			break
		}
		end := min(start+exp.Games, len(games))

		summary := Summary{MatchUp: mi + 1, AgentA: matchUp[0].ID, AgentB: matchUp[1].ID}
		lengths := []float64{}
		durations := []float64{}
		for i, record := range games[start:end] {
			summary.Games++
			lengths = append(lengths, float64(record.TotalMoves))
			durations = append(durations, searchTimes[record.ID]...)

			switch {
			case record.Winner == game.NoSide:
				summary.Unfinished++
			case (record.Winner == game.First) == (i%2 == 0):
				summary.WinsA++
			default:
				summary.WinsB++
			}
		}

		summary.MeanMoves, summary.StdMoves = meanStdDev(lengths)
		if len(durations) > 0 {
			summary.MeanSearch = time.Duration(stat.Mean(durations, nil))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	default:
		return stat.MeanStdDev(x, nil)
	}
}

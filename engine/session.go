package engine

import (
	"bufio"
	"checkers/game"
	"checkers/player"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const usage = `commands:
  select <row> <col>   select the checker on the cell (again to deselect)
  move <row> <col>     move the selected checker to a marked cell
  undo                 take back the last step (and the bot reply)
  new                  start a new game
  quit                 leave
`

// Session is an interactive game read line by line from a text stream. Human
// sides are driven by commands; automated sides move on their own between
// commands.
type Session struct {
	game     *game.Game
	players  map[game.Side]*player.Player
	in       *bufio.Scanner
	out      io.Writer
	renderer *Renderer
	options
}

func NewSession(g *game.Game, first, second *player.Player, in io.Reader, out io.Writer, opts ...Option) *Session {
	if first.Side != game.First || second.Side != game.Second {
		panic(fmt.Sprintf("players play %s and %s, want First and Second", first.Side, second.Side))
	}

	s := &Session{
		game:    g,
		players: map[game.Side]*player.Player{game.First: first, game.Second: second},
		in:      bufio.NewScanner(in),
		out:     out,
		options: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&s.options)
	}
	s.renderer = NewRenderer(out, s.profile)
	return s
}

// Run reads commands until quit or the end of input.
func (s *Session) Run() error {
	log.Info().Msgf("session started: %s (%s) vs %s (%s)",
		game.First, s.players[game.First].Kind, game.Second, s.players[game.Second].Kind)

	s.playBots()
	s.renderer.Render(s.game.Snapshot())

	for s.in.Scan() {
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "select", "s":
			s.selectChecker(fields[1:])
		case "move", "m":
			s.move(fields[1:])
		case "undo", "u":
			s.undo()
		case "new", "n":
			s.game.Restart()
			s.notify(s.game)
			log.Info().Msgf("new game started from the %s layout", s.game.Layout().Name)
		case "help", "h", "?":
			fmt.Fprint(s.out, usage)
			continue
		case "quit", "q":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command %q, type help\n", fields[0])
			continue
		}

		s.playBots()
		s.renderer.Render(s.game.Snapshot())
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	return nil
}

func (s *Session) selectChecker(args []string) {
	row, col, err := parseCell(args)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	c := s.game.CheckerAt(row, col)
	if c == nil {
		fmt.Fprintf(s.out, "no checker on %d %d\n", row, col)
		return
	}
	wasActive := c.IsActive
	if !s.game.Activate(c.ID) && !wasActive {
		fmt.Fprintf(s.out, "checker on %d %d cannot move\n", row, col)
	}
}

func (s *Session) move(args []string) {
	row, col, err := parseCell(args)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if !s.game.MakeMove(row, col) {
		fmt.Fprintf(s.out, "cannot move to %d %d\n", row, col)
		return
	}
	s.notify(s.game)
}

// undo takes back one step, then keeps going while an automated side is to
// move so the human gets their own position back.
func (s *Session) undo() {
	if s.game.HistoryLen() == 0 {
		fmt.Fprintln(s.out, "nothing to undo")
		return
	}
	s.game.Undo()
	for s.game.HistoryLen() > 0 && s.players[s.game.ActiveSide()].IsAutomated() {
		s.game.Undo()
	}
	s.notify(s.game)
}

func (s *Session) playBots() {
	turns := 0
	for !s.game.IsGameOver() && s.players[s.game.ActiveSide()].IsAutomated() && turns < s.maxTurns {
		turn := s.players[s.game.ActiveSide()].PlayTurn(s.game)
		turns++
		s.notify(s.game)
		log.Debug().Msgf("%s (%s) played %+v", turn.Side, s.players[turn.Side].Kind, turn.Steps)
	}
}

func parseCell(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want <row> <col>, got %d argument(s)", len(args))
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", args[1])
	}
	return row, col, nil
}

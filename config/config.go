package config

import (
	"checkers/game"
	"checkers/meta"
	"checkers/player"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const DefaultFile = "settings.txt"

const (
	keyBoardSize = "board_size"
	keyLayout    = "config"
	keyPlayer1   = "player1"
	keyPlayer2   = "player2"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings selects the board and who plays each side. Player1 plays First.
type Settings struct {
	BoardSize int
	Layout    string // "classic", "frisian" or a path to a .txt grid
	Player1   string // "player", "bot" or "abot"
	Player2   string
}

func Default() Settings {
	return Settings{
		BoardSize: meta.DefaultBoardSize,
		Layout:    game.ClassicPattern,
		Player1:   player.Human.String(),
		Player2:   player.Human.String(),
	}
}

// Load reads the key=value settings file. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Msgf("settings file %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if v, ok := values[keyBoardSize]; ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidSettings, keyBoardSize, v)
		}
		s.BoardSize = size
	}
	if v, ok := values[keyLayout]; ok {
		s.Layout = v
	}
	if v, ok := values[keyPlayer1]; ok {
		s.Player1 = v
	}
	if v, ok := values[keyPlayer2]; ok {
		s.Player2 = v
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return s, nil
}

// Save validates the settings and writes them to path.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := godotenv.Write(s.values(), path); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (s Settings) values() map[string]string {
	return map[string]string{
		keyBoardSize: strconv.Itoa(s.BoardSize),
		keyLayout:    s.Layout,
		keyPlayer1:   s.Player1,
		keyPlayer2:   s.Player2,
	}
}

// Validate accepts an even board size in 4..100, a pattern name or a .txt
// layout file and the known player kinds.
func (s Settings) Validate() error {
	if err := game.ValidateBoardSize(s.BoardSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	switch {
	case s.Layout == game.ClassicPattern, s.Layout == game.FrisianPattern:
	case strings.HasSuffix(s.Layout, ".txt"):
	default:
		return fmt.Errorf("%w: layout %q (want classic, frisian or a .txt file)", ErrInvalidSettings, s.Layout)
	}
	for _, name := range []string{s.Player1, s.Player2} {
		if _, err := player.ParseKind(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
	}
	return nil
}

// String renders the settings the way they are stored.
func (s Settings) String() string {
	return fmt.Sprintf("%s=%d\n%s=%s\n%s=%s\n%s=%s\n",
		keyBoardSize, s.BoardSize, keyLayout, s.Layout, keyPlayer1, s.Player1, keyPlayer2, s.Player2)
}

// NewGame builds a game from the configured layout.
func (s Settings) NewGame() (*game.Game, error) {
	layout, err := game.LoadLayout(s.Layout, s.BoardSize)
	if err != nil {
		return nil, err
	}
	return game.NewGame(layout)
}

// Players creates the players of both sides.
func (s Settings) Players(options ...player.Option) (*player.Player, *player.Player, error) {
	kind1, err := player.ParseKind(s.Player1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	kind2, err := player.ParseKind(s.Player2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return player.New(kind1, game.First, options...), player.New(kind2, game.Second, options...), nil
}

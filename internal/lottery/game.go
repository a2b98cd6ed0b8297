package lottery

import (
	"fmt"
	"strings"
)

// Game identifica o jogo de um bilhete ou sorteio
type Game string

const (
	GameFourD Game = "4D"
	GameToto  Game = "TOTO"
)

// ParseGame normaliza o nome do jogo ("4d", "toto", ...) para a forma canônica
func ParseGame(s string) (Game, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(GameFourD):
		return GameFourD, nil
	case string(GameToto):
		return GameToto, nil
	}
	return "", fmt.Errorf("unknown game %q", s)
}

func (g Game) String() string { return string(g) }

package main

import (
	"flag"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/calebwray/mudslinger/internal/game"
)

func main() {
	var difficulty string
	flag.StringVar(&difficulty, "difficulty", "medium", "enemy difficulty: easy, medium, hard")
	flag.Parse()

	d, ok := parseDifficulty(difficulty)
	if !ok {
		log.Fatal("unknown difficulty", "difficulty", difficulty)
	}

	ebiten.SetWindowTitle("Mudslinger")
	ebiten.SetWindowSize(1200, 800)
	log.Info("starting game", "difficulty", difficulty)
	if err := ebiten.RunGame(game.New(d)); err != nil {
		log.Fatal("game exited", "err", err)
	}
}

func parseDifficulty(s string) (game.Difficulty, bool) {
	switch s {
	case "easy":
		return game.DifficultyEasy, true
	case "medium":
		return game.DifficultyMedium, true
	case "hard":
		return game.DifficultyHard, true
	}
	return 0, false
}

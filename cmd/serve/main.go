package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calebwray/mudslinger/internal/game"
	"github.com/calebwray/mudslinger/internal/transport/ws"
)

func main() {
	var addr string
	var difficulty string
	var seed int64
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&difficulty, "difficulty", "medium", "enemy difficulty: easy, medium, hard")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	d, ok := parseDifficulty(difficulty)
	if !ok {
		log.Fatal("unknown difficulty", "difficulty", difficulty)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim := game.NewSimulation(game.SimConfig{
		Difficulty: d,
		Seed:       seed,
	})
	srv := ws.NewServer(sim)
	go srv.Run()
	defer srv.Stop()

	http.HandleFunc("/ws", srv.Handler)
	log.Info("serving", "addr", addr, "difficulty", difficulty, "seed", seed)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("server exited", "err", err)
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

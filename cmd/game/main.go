package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Sentinel-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Int64("seed", 1, "landscape seed")
	size := flag.Int("size", 32, "board width and height in squares")
	gravity := flag.Int("gravity", 2, "gravity level 0-5, higher means taller peaks")
	age := flag.Int("age", 2, "landscape age, higher means fewer plateaus")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	g, err := game.New(*seed, logger,
		game.WithBoardSize(*size, *size),
		game.WithGravity(*gravity),
		game.WithAge(*age),
	)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Sentinel Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

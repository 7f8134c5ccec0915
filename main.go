package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-dungen/config"
	"ebiten-dungen/generation"
	"ebiten-dungen/screens"
	"ebiten-dungen/systems"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed, 0 seeds from the clock")
	cells := flag.Int("cells", 0, "number of cells to sample, 0 keeps the default")
	orientation := flag.String("orientation", "", "room orientation: original, landscape or portrait")
	headless := flag.Bool("headless", false, "generate once, log a summary and exit")
	fullscreen := flag.Bool("fullscreen", false, "start the viewer in fullscreen mode")
	flag.Parse()

	cfg := config.DefaultGeneration()
	if *cells > 0 {
		cfg.DesiredCellCount = *cells
	}
	if *orientation != "" {
		cfg.Orientation = *orientation
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *headless {
		runHeadless(cfg, *seed)
		return
	}

	messages := systems.GetMessageLog()
	generator := generation.NewMapGenerator(cfg, messages.Add)
	if *seed != 0 {
		generator.SetSeed(*seed)
	}

	stack := screens.NewScreenStack()
	stack.Push(NewMapViewer(cfg, generator, messages, stack))

	// Get window size from config
	windowWidth, windowHeight := config.GetWindowSize()
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)
	ebiten.SetWindowTitle("Dungeon Layout Viewer")

	if err := ebiten.RunGame(stack); err != nil {
		log.Fatal(err)
	}
}

// runHeadless generates a single map and logs it without opening a window
func runHeadless(cfg config.Generation, seed int64) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	generator := generation.NewMapGenerator(cfg, func(msg string) { log.Print(msg) })
	if seed != 0 {
		generator.SetSeed(seed)
	}

	m, err := generator.Generate(ctx)
	if err != nil {
		log.Fatal(err)
	}

	log.Print(m)
	for i, room := range m.Rooms() {
		log.Printf("room %d at %s: %d top, %d bottom, %d left, %d right entrances", i, room.Rect,
			len(room.TopEntrances()), len(room.BottomEntrances()), len(room.LeftEntrances()), len(room.RightEntrances()))
	}
}

package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-dungen/config"
	"ebiten-dungen/events"
	"ebiten-dungen/generation"
	"ebiten-dungen/screens"
	"ebiten-dungen/systems"
)

const (
	panSpeed   = 8.0 // Pixels per frame
	zoomFactor = 1.25
	lineHeight = 16
)

// MapViewer is the bottom screen of the viewer. It starts generation in the background and
// shows the map once it arrives. The map is never regenerated.
type MapViewer struct {
	cfg      config.Generation
	stack    *screens.ScreenStack
	results  <-chan generation.Result
	cancel   context.CancelFunc
	renderer *MapRenderer
	summary  string
	camera   *systems.Camera
	messages *systems.MessageLog
	lineImg  *ebiten.Image
}

// NewMapViewer starts generator on a background goroutine
func NewMapViewer(cfg config.Generation, generator *generation.MapGenerator, messages *systems.MessageLog, stack *screens.ScreenStack) *MapViewer {
	screenW, screenH := config.GetScreenDimensions()

	em := events.NewManager()
	em.Subscribe(generation.EventAttemptFailed, func(e events.Event) {
		ev := e.(generation.AttemptFailed)
		messages.AddTyped(fmt.Sprintf("Attempt %d failed, retrying", ev.Attempt), systems.MessageTypeAlert)
	})
	em.Subscribe(generation.EventMapGenerated, func(e events.Event) {
		ev := e.(generation.MapGenerated)
		messages.AddTyped(fmt.Sprintf("Map ready after %d attempt(s): %d rooms, %d cells, %d corridor segments",
			ev.Attempts, ev.Rooms, ev.Cells, ev.Corridors), systems.MessageTypeSystem)
	})
	generator.SetEventManager(em)

	ctx, cancel := context.WithCancel(context.Background())
	v := &MapViewer{
		cfg:      cfg,
		stack:    stack,
		results:  generator.GenerateAsync(ctx),
		cancel:   cancel,
		camera:   systems.NewCamera(screenW, screenH, config.TileSize),
		messages: messages,
		lineImg:  ebiten.NewImage(screenW, lineHeight),
	}

	messages.AddTyped("Arrow keys: pan  +/-: zoom  F: fullscreen  L: log  Esc: quit", systems.MessageTypeSystem)
	return v
}

// Update polls for the generated map and handles input
func (v *MapViewer) Update() error {
	select {
	case res, ok := <-v.results:
		if ok {
			v.receive(res)
		}
		v.results = nil
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.cancel()
		return screens.ErrCloseScreen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		w, h := config.GetScreenDimensions()
		v.stack.Push(screens.NewLogScreen(v.messages, w*3/4, h*3/4))
		return nil
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camera.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camera.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camera.Pan(panSpeed, 0)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		v.camera.ZoomBy(zoomFactor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		v.camera.ZoomBy(1 / zoomFactor)
	}

	// Handle fullscreen toggle
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	return nil
}

func (v *MapViewer) receive(res generation.Result) {
	if res.Err != nil {
		v.messages.AddTyped(fmt.Sprintf("Generation failed: %v", res.Err), systems.MessageTypeAlert)
		return
	}

	v.renderer = NewMapRenderer(res.Map, v.cfg.RoomSpreadMargin)
	v.summary = res.Map.String()
	v.camera.Fit(res.Map.Bounds(), config.ViewMargin)
}

// Draw draws the map and the message panel
func (v *MapViewer) Draw(screen *ebiten.Image) {
	// Clear the screen with black background
	screen.Fill(color.RGBA{0, 0, 0, 255})

	if v.renderer != nil {
		v.renderer.Draw(screen, v.camera)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  zoom %.1f", v.summary, v.camera.Zoom), 10, 10)
	} else if v.results != nil {
		ebitenutil.DebugPrintAt(screen, "Generating...", 10, 10)
	}

	v.drawMessages(screen)
}

// drawMessages prints the most recent log lines at the bottom of the screen, oldest on top
func (v *MapViewer) drawMessages(screen *ebiten.Image) {
	recent := v.messages.RecentMessages(config.MessagePanelLines)
	baseY := screen.Bounds().Dy() - lineHeight*(len(recent)+1)

	for i := range recent {
		msg := recent[len(recent)-1-i]

		v.lineImg.Clear()
		ebitenutil.DebugPrintAt(v.lineImg, msg.Text, 10, 0)

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleWithColor(msg.GetColor())
		op.GeoM.Translate(0, float64(baseY+i*lineHeight))
		screen.DrawImage(v.lineImg, op)
	}
}

// Layout implements ebiten.Game's Layout
func (v *MapViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.camera.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-dungen/systems"
)

const (
	logLineHeight = 16
	logTitle      = "Generation log"
	logControls   = "Up/Down: scroll  L/Esc: close"
)

// LogScreen shows the whole message log in a scrollable modal window
type LogScreen struct {
	*BaseScreen
	messages     *systems.MessageLog
	scrollOffset int
	boxWidth     int
	boxHeight    int
	background   color.Color
	frame        color.Color
	modal        *ebiten.Image
	lineImg      *ebiten.Image
}

// NewLogScreen creates a log screen over messages
func NewLogScreen(messages *systems.MessageLog, width, height int) *LogScreen {
	return &LogScreen{
		BaseScreen: NewBaseScreen(),
		messages:   messages,
		boxWidth:   width,
		boxHeight:  height,
		background: color.RGBA{0, 0, 0, 230},
		frame:      color.White,
		modal:      ebiten.NewImage(width, height),
		lineImg:    ebiten.NewImage(width, logLineHeight),
	}
}

// Update handles scrolling and closing
func (s *LogScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < s.messages.Len()-1 {
		s.scrollOffset++
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyL) {
		return ErrCloseScreen
	}
	return nil
}

// Draw renders the modal centred on the screen
func (s *LogScreen) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	x := (bounds.Dx() - s.boxWidth) / 2
	y := (bounds.Dy() - s.boxHeight) / 2

	s.modal.Fill(s.background)
	vector.StrokeRect(s.modal, 1, 1, float32(s.boxWidth-2), float32(s.boxHeight-2), 2, s.frame, false)
	ebitenutil.DebugPrintAt(s.modal, logTitle, (s.boxWidth-len(logTitle)*6)/2, 6)

	messages := s.messages.Messages()
	startY := 30
	maxLines := (s.boxHeight - startY - 24) / logLineHeight

	// Calculate visible range
	startIdx := min(s.scrollOffset, max(0, len(messages)-maxLines))

	for i := 0; i < maxLines && startIdx+i < len(messages); i++ {
		msg := messages[startIdx+i]

		s.lineImg.Clear()
		ebitenutil.DebugPrintAt(s.lineImg, msg.Text, 10, 0)

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleWithColor(msg.GetColor())
		op.GeoM.Translate(0, float64(startY+i*logLineHeight))
		s.modal.DrawImage(s.lineImg, op)
	}

	// Draw scroll indicator if needed
	if len(messages) > maxLines {
		area := float32(s.boxHeight - startY - 24)
		barHeight := float32(maxLines) / float32(len(messages)) * area
		barY := float32(startY) + float32(startIdx)/float32(len(messages))*area
		vector.DrawFilledRect(s.modal, float32(s.boxWidth-10), barY, 5, barHeight, s.frame, false)
	}

	ebitenutil.DebugPrintAt(s.modal, logControls, 10, s.boxHeight-20)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(s.modal, op)
}

// Package visualize renders a single behavior-tree tick as a PNG trace: one
// row per node visited, colored by the status it exited with, with any
// utility scores observed along the way drawn alongside. It is demo-only
// tooling, not part of the behaviortree module's public API.
package visualize

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	rowHeight   = 16
	canvasWidth = 640
	leftMargin  = 8
	indentWidth = 14
)

// NodeEvent is one row of a rendered trace: a node's pre-order id, its
// nesting depth (for indentation), an optional label (e.g. "Sequence",
// "Action(3)"), and the status it exited with.
type NodeEvent struct {
	ID     int
	Depth  int
	Label  string
	Status string // "Running", "Success", or "Failure"
}

// UtilityScore annotates a node id with a considered score, drawn to the
// right of that row when present.
type UtilityScore struct {
	NodeID int
	Index  int
	Score  float64
}

// Trace is everything one tick emitted through an Observer, reshaped for
// rendering.
type Trace struct {
	Tick    uint64
	Events  []NodeEvent
	Scores  []UtilityScore
}

func statusColor(status string) color.RGBA {
	switch status {
	case "Success":
		return color.RGBA{0, 200, 0, 255}
	case "Failure":
		return color.RGBA{220, 0, 0, 255}
	case "Running":
		return color.RGBA{220, 180, 0, 255}
	default:
		return color.RGBA{120, 120, 120, 255}
	}
}

// RenderPNG draws t as a top-to-bottom list of rows, one per node, and
// returns the PNG-encoded bytes. The image height grows with the number of
// events; width is fixed.
func RenderPNG(t Trace) ([]byte, error) {
	height := rowHeight*len(t.Events) + rowHeight*2
	if height < rowHeight*3 {
		height = rowHeight * 3
	}
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{20, 20, 20, 255}}, image.Point{}, draw.Src)

	scoresByNode := make(map[int][]UtilityScore)
	for _, s := range t.Scores {
		scoresByNode[s.NodeID] = append(scoresByNode[s.NodeID], s)
	}

	drawLabel(img, leftMargin, rowHeight/2, fmt.Sprintf("tick %d", t.Tick), color.RGBA{255, 255, 255, 255})

	for i, e := range t.Events {
		y := rowHeight*(i+2) - rowHeight/3
		x := leftMargin + e.Depth*indentWidth
		drawSwatch(img, x, y-9, statusColor(e.Status))
		drawLabel(img, x+10, y, fmt.Sprintf("#%d %s [%s]", e.ID, e.Label, e.Status), color.RGBA{230, 230, 230, 255})

		if scores, ok := scoresByNode[e.ID]; ok {
			drawLabel(img, canvasWidth-160, y, formatScores(scores), color.RGBA{160, 200, 255, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("visualize: encode trace png: %w", err)
	}
	return buf.Bytes(), nil
}

func formatScores(scores []UtilityScore) string {
	out := ""
	for _, s := range scores {
		out += fmt.Sprintf("[%d]=%.2f ", s.Index, s.Score)
	}
	return out
}

func drawSwatch(img *image.RGBA, x, y int, c color.RGBA) {
	for dx := 0; dx < 8; dx++ {
		for dy := 0; dy < 8; dy++ {
			img.Set(x+dx, y+dy, c)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

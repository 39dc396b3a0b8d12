// File: render/ascii.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/breakoid/game"
	"github.com/lguibr/breakoid/geometry"
	"github.com/lguibr/breakoid/utils"
)

// RGBPixel is one cell of the rasterized playfield.
type RGBPixel struct {
	R, G, B uint8
}

// ASCII characters for grayscale, from lighter to darker.
const asciiChars = " .,:;i1tfLCG08@"

const grayFactor = 255.0 / float64(len(asciiChars)-1)

var brickColors = map[game.BrickKind]RGBPixel{
	game.BrickBlue:   {0, 80, 255},
	game.BrickCyan:   {0, 255, 255},
	game.BrickGold:   {212, 175, 55},
	game.BrickGreen:  {0, 220, 60},
	game.BrickOrange: {255, 140, 0},
	game.BrickPink:   {255, 105, 180},
	game.BrickRed:    {230, 30, 30},
	game.BrickSilver: {192, 192, 192},
	game.BrickWhite:  {250, 250, 250},
	game.BrickYellow: {255, 230, 0},
}

var (
	paddleColor  = RGBPixel{200, 200, 220}
	ballColor    = RGBPixel{255, 255, 255}
	boltColor    = RGBPixel{255, 60, 60}
	capsuleColor = RGBPixel{120, 255, 120}
)

// Rasterize paints a snapshot onto a pixel grid matching the screen size.
func Rasterize(snap game.Snapshot) [][]RGBPixel {
	width := int(snap.Screen.Width)
	height := int(snap.Screen.Height)
	if width <= 0 || height <= 0 {
		return nil
	}

	pixels := make([][]RGBPixel, height)
	for y := range pixels {
		pixels[y] = make([]RGBPixel, width)
	}

	for _, brick := range snap.Bricks {
		color, ok := brickColors[brick.Kind]
		if !ok {
			color = brickColors[game.BrickWhite]
		}
		fillRect(pixels, brick.Rect, color)
	}
	for _, capsule := range snap.PowerUps {
		fillRect(pixels, capsule.Rect, capsuleColor)
	}
	for _, bolt := range snap.Bolts {
		fillRect(pixels, bolt.Rect, boltColor)
	}
	fillRect(pixels, snap.Paddle.Rect, paddleColor)
	for _, ball := range snap.Balls {
		fillRect(pixels, ball.Rect, ballColor)
	}
	return pixels
}

func fillRect(pixels [][]RGBPixel, rect geometry.Rect, color RGBPixel) {
	height := len(pixels)
	if height == 0 {
		return
	}
	width := len(pixels[0])

	y0 := int(utils.Clamp(rect.Top(), 0, float64(height)))
	y1 := int(utils.Clamp(rect.Bottom(), 0, float64(height)))
	x0 := int(utils.Clamp(rect.Left(), 0, float64(width)))
	x1 := int(utils.Clamp(rect.Right(), 0, float64(width)))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pixels[y][x] = color
		}
	}
}

// rgbToGray converts an RGB pixel to grayscale using the luminosity method.
func rgbToGray(pixel RGBPixel) uint8 {
	gray := 0.299*float64(pixel.R) + 0.587*float64(pixel.G) + 0.114*float64(pixel.B)
	return uint8(gray)
}

func grayToAscii(gray uint8) byte {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return asciiChars[index]
}

// rgbToAnsi converts an RGB pixel to an ANSI truecolor escape code.
func rgbToAnsi(pixel RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// RenderToASCII downsamples a pixel grid to a resolution x resolution block
// of ANSI-colored ASCII characters. Each cell is doubled horizontally to
// compensate for terminal glyphs being taller than wide.
func RenderToASCII(pixels [][]RGBPixel, resolution int) string {
	height := len(pixels)
	if height == 0 || resolution <= 0 {
		return ""
	}
	width := len(pixels[0])
	stepX := float64(width) / float64(resolution)
	stepY := float64(height) / float64(resolution)

	var ascii strings.Builder
	for y := 0.0; y < float64(height-1); y += stepY {
		for x := 0.0; x < float64(width-1); x += stepX {
			pixel := pixels[int(math.Round(y))][int(math.Round(x))]
			ch := grayToAscii(rgbToGray(pixel))
			cell := rgbToAnsi(pixel) + string(ch) + string(ch) + "\033[0m"
			ascii.WriteString(cell)
		}
		ascii.WriteByte('\n')
	}
	return ascii.String()
}

// RenderSnapshot rasterizes and renders a snapshot with a one-line status
// header.
func RenderSnapshot(snap game.Snapshot, resolution int) string {
	header := fmt.Sprintf("round %d  score %d  lives %d  [%s]\n",
		snap.Round, snap.Score, snap.Lives, snap.State)
	return header + RenderToASCII(Rasterize(snap), resolution)
}

package tray

import (
	"bytes"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"
)

const iconSize = 22

var (
	foreground = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

	keyboardOnce sync.Once
	keyboardPNG  []byte
	blankOnce    sync.Once
	blankPNG     []byte
)

func KeyboardPNG() []byte {
	keyboardOnce.Do(func() {
		keyboardPNG = encode(drawKeyboard())
	})
	return keyboardPNG
}

func BlankPNG() []byte {
	blankOnce.Do(func() {
		blankPNG = encode(image.NewRGBA(image.Rect(0, 0, iconSize, iconSize)))
	})
	return blankPNG
}

// TextPNG draws text on a transparent strip as tall as the other icons.
func TextPNG(text string) []byte {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	width := d.MeasureString(text).Ceil() + 4
	if width < iconSize {
		width = iconSize
	}

	img := image.NewRGBA(image.Rect(0, 0, width, iconSize))
	d.Dst = img
	d.Src = image.NewUniform(foreground)

	textWidth := d.MeasureString(text)
	x := (fixed.I(width) - textWidth) / 2
	ascent := face.Metrics().Ascent
	y := (fixed.I(iconSize) + ascent - face.Metrics().Descent) / 2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)

	return encode(img)
}

func iconBytes(icon kbpanel.Icon, label string) []byte {
	if label != "" {
		return TextPNG(label)
	}
	if icon == kbpanel.KeyboardIcon {
		return KeyboardPNG()
	}
	return BlankPNG()
}

func drawKeyboard() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	fg := image.NewUniform(foreground)

	// body outline
	body := image.Rect(1, 5, iconSize-1, iconSize-5)
	for _, edge := range []image.Rectangle{
		image.Rect(body.Min.X, body.Min.Y, body.Max.X, body.Min.Y+1),
		image.Rect(body.Min.X, body.Max.Y-1, body.Max.X, body.Max.Y),
		image.Rect(body.Min.X, body.Min.Y, body.Min.X+1, body.Max.Y),
		image.Rect(body.Max.X-1, body.Min.Y, body.Max.X, body.Max.Y),
	} {
		draw.Draw(img, edge, fg, image.Point{}, draw.Src)
	}

	// two rows of keys and a space bar
	for row := 0; row < 2; row++ {
		y := body.Min.Y + 2 + row*3
		for x := body.Min.X + 2; x+2 <= body.Max.X-2; x += 3 {
			draw.Draw(img, image.Rect(x, y, x+2, y+2), fg, image.Point{}, draw.Src)
		}
	}
	space := body.Min.Y + 8
	draw.Draw(img, image.Rect(body.Min.X+5, space, body.Max.X-5, space+2), fg, image.Point{}, draw.Src)

	return img
}

func encode(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// encoding an in-memory RGBA cannot fail
		panic(err)
	}
	return buf.Bytes()
}

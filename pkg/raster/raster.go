// Package raster is the external "image raster" collaborator from
// spec.md §6: row-major 8-bit RGBA with declared (width, height), alpha
// ignored on input and always opaque on output. Resizing to a mode's
// (width, lines) before encoding, and file I/O for the CLIs, live here
// so the encoder/decoder packages never import an image library
// directly.
//
// The teacher carries no image package at all; Resize is grounded on
// the rest of the pack's use of golang.org/x/image for raster scaling.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Raster is a mutable W x H grid of 8-bit RGB pixels. Alpha is not
// stored per-pixel; it is always 255 when materialised as an
// image.RGBA.
type Raster struct {
	width, height int
	pix           []uint8 // len = width*height*3, R,G,B per pixel
}

// New allocates a black Raster of the given dimensions.
func New(width, height int) *Raster {
	return &Raster{width: width, height: height, pix: make([]uint8, width*height*3)}
}

// FromImage copies src into a new Raster of src's own bounds, discarding
// any alpha channel.
func FromImage(src image.Image) *Raster {
	b := src.Bounds()
	r := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rr, gg, bb, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			r.Set(x, y, uint8(rr>>8), uint8(gg>>8), uint8(bb>>8))
		}
	}
	return r
}

// Bounds returns the raster's width and height.
func (r *Raster) Bounds() (width, height int) {
	return r.width, r.height
}

// At returns the RGB triple at (x,y). Out-of-bounds coordinates return
// black.
func (r *Raster) At(x, y int) (rr, gg, bb uint8) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, 0, 0
	}
	i := (y*r.width + x) * 3
	return r.pix[i], r.pix[i+1], r.pix[i+2]
}

// Set writes an RGB triple at (x,y); a no-op out of bounds.
func (r *Raster) Set(x, y int, rr, gg, bb uint8) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	i := (y*r.width + x) * 3
	r.pix[i], r.pix[i+1], r.pix[i+2] = rr, gg, bb
}

// Image materialises the raster as an *image.RGBA with alpha=255
// everywhere, per spec.md's output invariant.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			rr, gg, bb := r.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: rr, G: gg, B: bb, A: 255})
		}
	}
	return img
}

// Resize scales src to exactly (width, height) using a Catmull-Rom
// kernel, the highest-quality scaler golang.org/x/image/draw offers —
// appropriate for the one-shot resize-before-encode step spec.md's
// encoder pipeline (C7) delegates to its external image collaborator.
func Resize(src image.Image, width, height int) *Raster {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return FromImage(dst)
}

// LoadFile reads a PNG or JPEG file (by extension) into a Raster.
func LoadFile(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// SaveFile writes r as a PNG or JPEG file, chosen by path's extension
// (default PNG).
func SaveFile(path string, r *Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	defer f.Close()

	img := r.Image()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(f, img)
	}
}

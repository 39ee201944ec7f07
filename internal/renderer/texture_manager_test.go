package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeImageFilePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "1.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rgba, err := DecodeImageFile(path)
	if err != nil {
		t.Fatalf("DecodeImageFile: %v", err)
	}
	if rgba.Rect.Dx() != 4 || rgba.Rect.Dy() != 2 {
		t.Errorf("Unexpected size %v", rgba.Rect)
	}
	if got := rgba.RGBAAt(1, 1); got.R != 255 || got.A != 255 {
		t.Errorf("Pixel (1,1) = %v, want opaque red", got)
	}
}

func TestDecodeImageFileErrors(t *testing.T) {
	if _, err := DecodeImageFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Missing file should fail")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeImageFile(garbage); err == nil {
		t.Error("Undecodable file should fail")
	}
}

func TestToRGBARebasesSubImages(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 8, 8))
	full.Set(5, 5, color.RGBA{G: 200, A: 255})
	sub := full.SubImage(image.Rect(4, 4, 8, 8))

	rgba := toRGBA(sub)
	if rgba.Rect.Min != (image.Point{}) {
		t.Fatalf("Converted image should start at the origin, got %v", rgba.Rect)
	}
	if rgba.Stride != rgba.Rect.Dx()*4 {
		t.Errorf("Converted image should be tightly packed, stride %d", rgba.Stride)
	}
	if got := rgba.RGBAAt(1, 1); got.G != 200 {
		t.Errorf("Pixel did not move with the sub image, got %v", got)
	}
}

func TestToRGBAKeepsPackedImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	if toRGBA(img) != img {
		t.Error("A packed RGBA image should be used as is")
	}
}

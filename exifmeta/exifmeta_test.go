package exifmeta

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestParse_ImageWithoutExif(t *testing.T) {
	m, err := parse(pngBytes(t, 8, 6))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if m.HasExif {
		t.Fatal("plain PNG reported as carrying EXIF")
	}
	if m.Format != "png" || m.Width != 8 || m.Height != 6 {
		t.Fatalf("basic info = %+v", m)
	}
	if m.GPS != nil {
		t.Fatal("unexpected GPS block")
	}
}

// tiffBytes builds a minimal little-endian TIFF with ImageWidth, ImageLength
// and Make tags. The stdlib image package has no TIFF decoder, so this only
// parses through the EXIF reader.
func tiffBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(0x2a))
	binary.Write(&buf, binary.LittleEndian, uint32(8)) // first IFD offset
	binary.Write(&buf, binary.LittleEndian, uint16(3)) // entry count
	entry := func(tag, typ uint16, count, value uint32) {
		binary.Write(&buf, binary.LittleEndian, tag)
		binary.Write(&buf, binary.LittleEndian, typ)
		binary.Write(&buf, binary.LittleEndian, count)
		binary.Write(&buf, binary.LittleEndian, value)
	}
	entry(256, 3, 1, 80) // ImageWidth, SHORT
	entry(257, 3, 1, 60) // ImageLength, SHORT
	entry(271, 2, 7, 50) // Make, ASCII "NexCam\x00" at offset 50
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // no next IFD
	buf.WriteString("NexCam\x00")
	return buf.Bytes()
}

func TestParse_RawTIFF(t *testing.T) {
	m, err := parse(tiffBytes(t))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !m.HasExif {
		t.Fatal("TIFF tags not reported as EXIF")
	}
	if m.Format != "tiff" {
		t.Fatalf("format = %q, want tiff", m.Format)
	}
	if m.Width != 80 || m.Height != 60 {
		t.Fatalf("dimensions = %dx%d, want 80x60", m.Width, m.Height)
	}
	var maker string
	for _, f := range m.Camera {
		if f.Name == "Make" {
			maker = f.Value
		}
	}
	if maker != "NexCam" {
		t.Fatalf("camera make = %q, want NexCam", maker)
	}
}

func TestParse_NotAnImage(t *testing.T) {
	if _, err := parse([]byte("definitely not an image")); err == nil {
		t.Fatal("expected error for non-image bytes")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	data := pngBytes(t, 4, 4)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if m.Source != path {
		t.Fatalf("source = %q", m.Source)
	}
	if m.Size != int64(len(data)) {
		t.Fatalf("size = %d, want %d", m.Size, len(data))
	}

	if _, err := FromFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		512:     "512.00 B",
		2048:    "2.00 KB",
		1048576: "1.00 MB",
	}
	for in, want := range cases {
		if got := HumanSize(in); got != want {
			t.Fatalf("HumanSize(%d) = %q, want %q", in, got, want)
		}
	}
}

// Package exifmeta extracts EXIF metadata from images, either local files or
// URLs. Images without EXIF are a normal outcome, not an error.
package exifmeta

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"

	"nexrecon/netutil"
)

// Field is one metadata entry in display form.
type Field struct {
	Name  string
	Value string
}

// GPS holds the privacy-sensitive location block.
type GPS struct {
	Latitude  float64
	Longitude float64
	Altitude  string
	MapsURL   string
}

// Metadata is everything the extractor reports about an image.
type Metadata struct {
	Source   string
	Format   string
	Width    int
	Height   int
	Size     int64 // bytes, 0 when unknown (URL source)
	HasExif  bool
	Camera   []Field
	Dates    []Field
	Exposure []Field
	Software []Field
	GPS      *GPS
}

// Megapixels returns the pixel count in MP.
func (m *Metadata) Megapixels() float64 {
	return float64(m.Width*m.Height) / 1e6
}

// FromFile extracts metadata from a local image file.
func FromFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	m, err := parse(data)
	if err != nil {
		return nil, err
	}
	m.Source = path
	m.Size = int64(len(data))
	return m, nil
}

// FromURL downloads an image and extracts its metadata.
func FromURL(c *netutil.Client, url string) (*Metadata, error) {
	data, err := c.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	m, err := parse(data)
	if err != nil {
		return nil, err
	}
	m.Source = url
	m.Size = int64(len(data))
	return m, nil
}

func parse(data []byte) (*Metadata, error) {
	m := &Metadata{}
	cfg, format, cfgErr := image.DecodeConfig(bytes.NewReader(data))
	if cfgErr == nil {
		m.Format = format
		m.Width = cfg.Width
		m.Height = cfg.Height
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("not a supported image: %w", cfgErr)
		}
		// stripped or unsupported container (PNG, BMP, ...)
		return m, nil
	}
	if cfgErr != nil {
		// raw TIFF: image has no decoder registered for it, but goexif
		// reads the container natively
		m.Format = "tiff"
		m.Width = tagInt(x, exif.ImageWidth)
		m.Height = tagInt(x, exif.ImageLength)
	}
	m.HasExif = true

	m.Camera = collect(x, []exif.FieldName{exif.Make, exif.Model, exif.LensModel, exif.LensMake})
	m.Dates = collect(x, []exif.FieldName{exif.DateTime, exif.DateTimeOriginal, exif.DateTimeDigitized})
	m.Exposure = collect(x, []exif.FieldName{
		exif.ExposureTime, exif.FNumber, exif.ISOSpeedRatings, exif.ExposureProgram,
		exif.MeteringMode, exif.Flash, exif.FocalLength, exif.WhiteBalance,
	})
	m.Software = collect(x, []exif.FieldName{exif.Software})

	if lat, long, err := x.LatLong(); err == nil {
		gps := &GPS{
			Latitude:  lat,
			Longitude: long,
			MapsURL:   fmt.Sprintf("https://www.google.com/maps/@%.6f,%.6f,17z", lat, long),
		}
		if tag, err := x.Get(exif.GPSAltitude); err == nil {
			if num, den, err := tag.Rat2(0); err == nil && den != 0 {
				gps.Altitude = fmt.Sprintf("%.1fm", float64(num)/float64(den))
			}
		}
		m.GPS = gps
	}
	return m, nil
}

func collect(x *exif.Exif, names []exif.FieldName) []Field {
	var out []Field
	for _, name := range names {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			val = tag.String()
		}
		if val != "" {
			out = append(out, Field{Name: string(name), Value: val})
		}
	}
	return out
}

func tagInt(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// HumanSize renders a byte count the way the toolkit displays file sizes.
func HumanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}

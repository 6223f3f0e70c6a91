package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Pixels covered by the render
	TotalSamples    int           // Paths traced
	TotalBounces    int           // Scattering events over all paths
	SamplesPerPixel int           // Samples accumulated per pixel after the render
	Tiles           int           // Tiles processed
	Duration        time.Duration // Wall time
}

// AverageDepth returns the mean number of bounces per path
func (rs RenderStats) AverageDepth() float64 {
	if rs.TotalSamples == 0 {
		return 0
	}
	return float64(rs.TotalBounces) / float64(rs.TotalSamples)
}

// add merges per-tile counters
func (rs *RenderStats) add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.TotalBounces += other.TotalBounces
	rs.Tiles += other.Tiles
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return sum / float64(pixels)
}

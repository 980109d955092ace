package awbridge

import (
	"os"
	"testing"
)

// Set AWBRIDGE_TEST_TIF to a readable raster to run the GDAL round trip.
func TestRenderPreviewFromTif(t *testing.T) {
	tif := os.Getenv("AWBRIDGE_TEST_TIF")
	if tif == "" {
		t.Skip("AWBRIDGE_TEST_TIF not set")
	}
	g := NewGdalToolbox()
	if g == nil {
		t.Fatal()
	}
	w, h, err := g.RasterSize(tif)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("raster size: %dx%d", w, h)
	img, err := g.RenderPreview(tif, w, h)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() > PreviewMaxDim || b.Dy() > PreviewMaxDim {
		t.Fatalf("preview exceeds cap: %dx%d", b.Dx(), b.Dy())
	}
	t.Logf("preview rendered: %dx%d", b.Dx(), b.Dy())
}

func TestWriteFlightLayerShp(t *testing.T) {
	if os.Getenv("AWBRIDGE_TEST_GDAL") == "" {
		t.Skip("AWBRIDGE_TEST_GDAL not set")
	}
	g := NewGdalToolbox()
	drafts, err := BuildFlightLayers(FlightPlan{
		Meridians:    contiguousSegs(),
		Horizontals:  contiguousSegs(),
		FlightHeight: 100,
		Meta:         FlightMeta{MaxAreaHeight: 150, MaxAreaWidth: 225, MetersPerPixel: 0.05, ResolutionHeight: 3000, ResolutionWidth: 4000, FocalLength: 35},
	})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, d := range drafts {
		shp, err := g.WriteFlightLayer(dir, d)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = os.Stat(shp); err != nil {
			t.Fatal(err)
		}
		t.Log("layer written:", shp)
	}
}

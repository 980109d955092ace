package awbridge

import (
	"image"

	"github.com/matafokka/aerialware-bridge/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// RasterSize reads the pixel dimensions of a raster dataset.
func (g *GdalToolbox) RasterSize(tif string) (x, y int, err error) {
	ds, err := gdal.Open(tif, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer ds.Close()
	x = ds.RasterXSize()
	y = ds.RasterYSize()
	return
}

// RenderPreview renders a raster dataset into an RGBA preview of at most
// width×height pixels, shrunk further if either side exceeds PreviewMaxDim.
// Bands 1-3 are taken as RGB; single-band rasters come out grayscale.
func (g *GdalToolbox) RenderPreview(tif string, width, height int) (img image.Image, err error) {
	ds, err := gdal.Open(tif, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer ds.Close()

	sx, sy := ds.RasterXSize(), ds.RasterYSize()
	tw, th := fitPreview(width, height)
	// read with 2x supersampling where the source allows, then resample down
	rw, rh := tw*2, th*2
	if rw > sx {
		rw = sx
	}
	if rh > sy {
		rh = sy
	}

	nb := ds.RasterCount()
	if nb > 3 {
		nb = 3
	}
	if nb < 1 {
		err = ErrInvalidTif
		return
	}
	log.Info(g.logTag+"render preview", zap.String("tif", tif),
		zap.Int("srcW", sx), zap.Int("srcH", sy), zap.Int("w", tw), zap.Int("h", th), zap.Int("bands", nb))

	bufs := make([][]uint8, nb)
	for i := 0; i < nb; i++ {
		bufs[i] = make([]uint8, rw*rh)
		band := ds.RasterBand(i + 1)
		if err = band.IO(gdal.Read, 0, 0, sx, sy, bufs[i], rw, rh, 0, 0); err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", i+1), zap.Error(err))
			return
		}
	}

	raw := image.NewNRGBA(image.Rect(0, 0, rw, rh))
	for p := 0; p < rw*rh; p++ {
		var r, gr, b uint8
		if nb == 3 {
			r, gr, b = bufs[0][p], bufs[1][p], bufs[2][p]
		} else {
			r, gr, b = bufs[0][p], bufs[0][p], bufs[0][p]
		}
		o := p * 4
		raw.Pix[o] = r
		raw.Pix[o+1] = gr
		raw.Pix[o+2] = b
		raw.Pix[o+3] = 0xff
	}
	if rw == tw && rh == th {
		img = raw
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), raw, raw.Bounds(), xdraw.Src, nil)
	img = dst
	return
}

// fitPreview shrinks width×height to honor PreviewMaxDim, keeping aspect.
func fitPreview(width, height int) (w, h int) {
	w, h = width, height
	if w <= PreviewMaxDim && h <= PreviewMaxDim {
		return
	}
	if w >= h {
		h = h * PreviewMaxDim / w
		w = PreviewMaxDim
	} else {
		w = w * PreviewMaxDim / h
		h = PreviewMaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return
}

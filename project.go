package awbridge

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/matafokka/aerialware-bridge/log"
	"github.com/matafokka/aerialware-bridge/utils"

	"go.uber.org/zap"
)

// RasterLayer is one raster dataset of the host project.
type RasterLayer interface {
	Name() string
	Width() int
	Height() int
	Preview(width, height int) (image.Image, error)
}

// Project is the narrow surface of the host the bridge consumes: enumerate
// raster layers and register new vector layers. Registration of several
// layers is all-or-nothing.
type Project interface {
	RasterLayers() ([]RasterLayer, error)
	AddVectorLayers(drafts ...*LayerDraft) error
}

// DirProject backs Project with a directory of GDAL datasets. Layer names are
// file names without extension, unique by construction.
type DirProject struct {
	dir    string
	tb     *GdalToolbox
	write  func(dir string, d *LayerDraft) (string, error) // seam for tests
	logTag string
}

func OpenDirProject(dir string, tb *GdalToolbox) (*DirProject, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("project dir check failed: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", dir)
	}
	return &DirProject{
		dir:    dir,
		tb:     tb,
		write:  tb.WriteFlightLayer,
		logTag: "DirProject:",
	}, nil
}

func (p *DirProject) RasterLayers() (layers []RasterLayer, err error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !rasterExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(p.dir, e.Name())
		w, h, e2 := p.tb.RasterSize(path)
		if e2 != nil {
			log.Warn(p.logTag+"skipping unreadable raster", zap.String("path", path), zap.Error(e2))
			continue
		}
		layers = append(layers, &dirRasterLayer{
			name:   utils.PurifyForUtf8(utils.GetFilenameWithoutExt(path)),
			path:   path,
			width:  w,
			height: h,
			tb:     p.tb,
		})
	}
	log.Info(p.logTag+"scanned project", zap.String("dir", p.dir), zap.Int("rasters", len(layers)))
	return
}

// AddVectorLayers stages every draft into a throwaway subdirectory first and
// only then moves the results into the project, so a failing draft leaves the
// project untouched.
func (p *DirProject) AddVectorLayers(drafts ...*LayerDraft) (err error) {
	for _, d := range drafts {
		target := filepath.Join(p.dir, d.Name+FILE_EXT_SHP)
		if _, e := os.Stat(target); e == nil {
			return fmt.Errorf("%w: %s", ErrLayerExists, d.Name)
		}
	}
	stage, err := utils.GetUniqSubDir(p.dir)
	if err != nil {
		return
	}
	defer os.RemoveAll(stage)
	for _, d := range drafts {
		if _, err = p.write(stage, d); err != nil {
			return
		}
	}
	staged, err := os.ReadDir(stage)
	if err != nil {
		return
	}
	for _, f := range staged {
		if err = utils.MoveFile(filepath.Join(stage, f.Name()), filepath.Join(p.dir, f.Name())); err != nil {
			return
		}
	}
	log.Info(p.logTag+"vector layers registered", zap.Int("count", len(drafts)))
	return
}

type dirRasterLayer struct {
	name   string
	path   string
	width  int
	height int
	tb     *GdalToolbox
}

func (l *dirRasterLayer) Name() string { return l.name }
func (l *dirRasterLayer) Width() int   { return l.width }
func (l *dirRasterLayer) Height() int  { return l.height }

func (l *dirRasterLayer) Preview(width, height int) (image.Image, error) {
	return l.tb.RenderPreview(l.path, width, height)
}

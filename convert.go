package awbridge

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matafokka/aerialware-bridge/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// BuildFlightLayers turns a finished flight plan into the two output layer
// drafts. Both geometries are built and validated before either is returned,
// so a broken path in the second list leaves nothing half-created.
func BuildFlightLayers(plan FlightPlan) (drafts []*LayerDraft, err error) {
	paths := []struct {
		name string
		segs []Segment
	}{
		{MeridiansLayerName, plan.Meridians},
		{HorizontalsLayerName, plan.Horizontals},
	}
	drafts = make([]*LayerDraft, 0, len(paths))
	for _, p := range paths {
		var wkt string
		if wkt, err = flightPathWKT(p.segs, plan.FlightHeight); err != nil {
			drafts = nil
			return
		}
		drafts = append(drafts, &LayerDraft{
			Name: p.name,
			Wkt:  wkt,
			Meta: plan.Meta,
		})
	}
	return
}

// flightPathWKT stitches connected segments into a LINESTRING M carrying the
// flight height as the measure of every point. m segments yield exactly m+1
// points: the first point of each segment must equal the previous segment's
// second point, which is validated rather than assumed.
func flightPathWKT(segs []Segment, height float64) (wkt string, err error) {
	if len(segs) == 0 {
		err = ErrEmptyFlightPath
		return
	}
	var b strings.Builder
	b.WriteString("LINESTRING M (")
	writePoint(&b, segs[0].X1, segs[0].Y1, height)
	prev := segs[0]
	for i, seg := range segs {
		if i > 0 {
			if math.Abs(seg.X1-prev.X2) > PathGapTolerance || math.Abs(seg.Y1-prev.Y2) > PathGapTolerance {
				err = ErrDiscontinuousPath
				return
			}
		}
		b.WriteString(", ")
		writePoint(&b, seg.X2, seg.Y2, height)
		prev = seg
	}
	b.WriteByte(')')
	wkt = b.String()
	return
}

func writePoint(b *strings.Builder, x, y, m float64) {
	b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(m, 'f', -1, 64))
}

// WriteFlightLayer writes one draft as a shapefile into dir and returns the
// .shp path. The attribute schema is created on the layer before the single
// feature is added.
func (g *GdalToolbox) WriteFlightLayer(dir string, d *LayerDraft) (shp string, err error) {
	shp = filepath.Join(dir, d.Name+FILE_EXT_SHP)
	log.Info(g.logTag+"write flight layer", zap.String("shp", shp))
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Create(shp, nil)
	if !ok {
		err = ErrGdalDriverCreate
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	ref, err := g.getSridRef(OUTPUT_SRID)
	if err != nil {
		return
	}
	layer := ds.CreateLayer(d.Name, ref, gdal.GT_Unknown, []string{ENCODING_OPTION})

	fields := []struct {
		name string
		ft   gdal.FieldType
	}{
		{FIELD_AREA_HEIGHT, gdal.FT_Real},
		{FIELD_AREA_WIDTH, gdal.FT_Real},
		{FIELD_PX_RATIO, gdal.FT_Real},
		{FIELD_RES_HEIGHT, gdal.FT_Integer},
		{FIELD_RES_WIDTH, gdal.FT_Integer},
		{FIELD_FOCAL_LEN, gdal.FT_Real},
	}
	for _, f := range fields {
		fd := gdal.CreateFieldDefinition(f.name, f.ft)
		if err = layer.CreateField(fd, false); err != nil {
			log.Error(g.logTag+"err in create field of layer", zap.String("field", f.name), zap.Error(err))
			return
		}
	}

	geo, err := g.parseWKT(d.Wkt, ref)
	if err != nil {
		return
	}
	def := layer.Definition()
	feature := def.Create()
	defer feature.Destroy()
	if err = feature.SetFID(0); err != nil {
		log.Error(g.logTag+"err in set feature fid", zap.Error(err))
		return
	}
	feature.SetFieldFloat64(def.FieldIndex(FIELD_AREA_HEIGHT), d.Meta.MaxAreaHeight)
	feature.SetFieldFloat64(def.FieldIndex(FIELD_AREA_WIDTH), d.Meta.MaxAreaWidth)
	feature.SetFieldFloat64(def.FieldIndex(FIELD_PX_RATIO), d.Meta.MetersPerPixel)
	feature.SetFieldInteger(def.FieldIndex(FIELD_RES_HEIGHT), d.Meta.ResolutionHeight)
	feature.SetFieldInteger(def.FieldIndex(FIELD_RES_WIDTH), d.Meta.ResolutionWidth)
	feature.SetFieldFloat64(def.FieldIndex(FIELD_FOCAL_LEN), d.Meta.FocalLength)
	if err = feature.SetGeometryDirectly(geo); err != nil {
		log.Error(g.logTag+"err in set geom of feature", zap.Error(err))
		return
	}
	if err = layer.Create(feature); err != nil {
		log.Error(g.logTag+"err in create feature of layer", zap.Error(err))
		return
	}
	log.Info(g.logTag+"flight layer written", zap.String("shp", shp))
	return
}

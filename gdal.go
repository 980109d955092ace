package awbridge

import (
	"sync"

	"github.com/matafokka/aerialware-bridge/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// GdalToolbox wraps the GDAL/OGR calls the bridge needs: raster preview
// rendering and output shapefile creation.
type GdalToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

// 初始化GDAL工具箱，tmpDir为可选的临时目录路径（未提供的话为当前目录）
func NewGdalToolbox(tmpDir ...string) *GdalToolbox {
	g := &GdalToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "GdalToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *GdalToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 固定数据轴次序为传统GIS坐标序(经度,纬度)，避免转换时次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

func (g *GdalToolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ErrInvalidWKT
	}
	return
}

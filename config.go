package awbridge

const (
	FILE_EXT_SHP = ".shp"

	SHAPE_ENCODING  = "UTF-8"
	SHP_DRIVER_NAME = "ESRI Shapefile"
	ENCODING_OPTION = "ENCODING=" + SHAPE_ENCODING

	OUTPUT_SRID = 4326

	// DBF-safe attribute names for the six metadata values
	FIELD_AREA_HEIGHT = "cap_h"
	FIELD_AREA_WIDTH  = "cap_w"
	FIELD_PX_RATIO    = "px_ratio"
	FIELD_RES_HEIGHT  = "res_h"
	FIELD_RES_WIDTH   = "res_w"
	FIELD_FOCAL_LEN   = "focal_len"

	MeridiansLayerName   = "Meridians"
	HorizontalsLayerName = "Horizontals"

	// PreviewMaxDim caps the longer side of the preview handed to the planner.
	PreviewMaxDim = 2048

	// PathGapTolerance bounds how far apart the shared endpoint of two
	// consecutive segments may drift before the path counts as broken.
	PathGapTolerance = 1e-9
)

// rasterExts are the dataset extensions the project scanner treats as raster
// layers.
var rasterExts = map[string]bool{
	".tif":  true,
	".tiff": true,
	".img":  true,
	".vrt":  true,
	".jp2":  true,
	".png":  true,
	".jpg":  true,
}

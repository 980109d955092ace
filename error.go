package awbridge

import "errors"

var (
	ErrGdalDriverCreate  = errors.New("gdal driver create err")
	ErrGdalDriverOpen    = errors.New("gdal driver open err")
	ErrInvalidWKT        = errors.New("invalid WKT")
	ErrInvalidTif        = errors.New("invalid tif")
	ErrEmptyFlightPath   = errors.New("flight path has no segments")
	ErrDiscontinuousPath = errors.New("flight path segments do not share endpoints")
	ErrLayerExists       = errors.New("layer with this name already in project")
)

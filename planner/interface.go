package planner

import (
	"encoding/gob"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

func init() {
	// Segments travel through net/rpc as gob-encoded slices
	gob.Register([]Segment{})
}

// Segment is one straight piece of a flight path. Consecutive segments of a
// valid path share an endpoint: P2 of segment k equals P1 of segment k+1.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Dimensions is a height/width pair in meters.
type Dimensions struct {
	Height float64
	Width  float64
}

// Resolution is a camera sensor size in pixels.
type Resolution struct {
	Height int
	Width  int
}

// FlightPlanner is the surface the external flight-planning tool exposes to
// the bridge. LoadImage and Show prepare and open the tool; Done blocks until
// the user has finished planning and fires at most once per session. The
// getters are only meaningful after Done has returned.
type FlightPlanner interface {
	LoadImage(png []byte) error
	Show() error
	Done() error

	MeridiansPath() ([]Segment, error)
	HorizontalsPath() ([]Segment, error)
	FlightHeight() (float64, error)
	MaxCaptureArea() (Dimensions, error)
	CameraResolution() (Resolution, error)
	CameraRatio() (float64, error)
	FocalLength() (float64, error)

	Close() error
}

// PlannerRPC implements FlightPlanner over a net/rpc connection to the
// planner subprocess.
type PlannerRPC struct {
	client *rpc.Client
}

func (p *PlannerRPC) LoadImage(png []byte) error {
	var ack bool
	return p.client.Call("Plugin.LoadImage", png, &ack)
}

func (p *PlannerRPC) Show() error {
	var ack bool
	return p.client.Call("Plugin.Show", struct{}{}, &ack)
}

func (p *PlannerRPC) Done() error {
	var ack bool
	return p.client.Call("Plugin.Done", struct{}{}, &ack)
}

func (p *PlannerRPC) MeridiansPath() (segs []Segment, err error) {
	err = p.client.Call("Plugin.MeridiansPath", struct{}{}, &segs)
	return
}

func (p *PlannerRPC) HorizontalsPath() (segs []Segment, err error) {
	err = p.client.Call("Plugin.HorizontalsPath", struct{}{}, &segs)
	return
}

func (p *PlannerRPC) FlightHeight() (h float64, err error) {
	err = p.client.Call("Plugin.FlightHeight", struct{}{}, &h)
	return
}

func (p *PlannerRPC) MaxCaptureArea() (d Dimensions, err error) {
	err = p.client.Call("Plugin.MaxCaptureArea", struct{}{}, &d)
	return
}

func (p *PlannerRPC) CameraResolution() (r Resolution, err error) {
	err = p.client.Call("Plugin.CameraResolution", struct{}{}, &r)
	return
}

func (p *PlannerRPC) CameraRatio() (r float64, err error) {
	err = p.client.Call("Plugin.CameraRatio", struct{}{}, &r)
	return
}

func (p *PlannerRPC) FocalLength() (f float64, err error) {
	err = p.client.Call("Plugin.FocalLength", struct{}{}, &f)
	return
}

func (p *PlannerRPC) Close() error {
	var ack bool
	return p.client.Call("Plugin.Close", struct{}{}, &ack)
}

// PlannerRPCServer is the server half running inside the planner binary.
type PlannerRPCServer struct {
	Impl FlightPlanner
}

func (s *PlannerRPCServer) LoadImage(png []byte, ack *bool) error {
	err := s.Impl.LoadImage(png)
	*ack = err == nil
	return err
}

func (s *PlannerRPCServer) Show(_ struct{}, ack *bool) error {
	err := s.Impl.Show()
	*ack = err == nil
	return err
}

func (s *PlannerRPCServer) Done(_ struct{}, ack *bool) error {
	err := s.Impl.Done()
	*ack = err == nil
	return err
}

func (s *PlannerRPCServer) MeridiansPath(_ struct{}, segs *[]Segment) (err error) {
	*segs, err = s.Impl.MeridiansPath()
	return
}

func (s *PlannerRPCServer) HorizontalsPath(_ struct{}, segs *[]Segment) (err error) {
	*segs, err = s.Impl.HorizontalsPath()
	return
}

func (s *PlannerRPCServer) FlightHeight(_ struct{}, h *float64) (err error) {
	*h, err = s.Impl.FlightHeight()
	return
}

func (s *PlannerRPCServer) MaxCaptureArea(_ struct{}, d *Dimensions) (err error) {
	*d, err = s.Impl.MaxCaptureArea()
	return
}

func (s *PlannerRPCServer) CameraResolution(_ struct{}, r *Resolution) (err error) {
	*r, err = s.Impl.CameraResolution()
	return
}

func (s *PlannerRPCServer) CameraRatio(_ struct{}, r *float64) (err error) {
	*r, err = s.Impl.CameraRatio()
	return
}

func (s *PlannerRPCServer) FocalLength(_ struct{}, f *float64) (err error) {
	*f, err = s.Impl.FocalLength()
	return
}

func (s *PlannerRPCServer) Close(_ struct{}, ack *bool) error {
	err := s.Impl.Close()
	*ack = err == nil
	return err
}

// Plugin wires FlightPlanner into go-plugin's net/rpc transport.
type Plugin struct {
	Impl FlightPlanner
}

func (p *Plugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &PlannerRPCServer{Impl: p.Impl}, nil
}

func (p *Plugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &PlannerRPC{client: c}, nil
}

// HandshakeConfig guards against the bridge talking to a binary that is not a
// flight planner.
func HandshakeConfig() plugin.HandshakeConfig {
	return plugin.HandshakeConfig{
		ProtocolVersion:  1,
		MagicCookieKey:   "AERIALWARE_PLANNER",
		MagicCookieValue: "aerialware_flight_planner",
	}
}

// PluginMap returns the dispense map shared by the bridge and planner
// binaries.
func PluginMap(impl FlightPlanner) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &Plugin{Impl: impl},
	}
}

// Serve runs impl as a planner plugin. Planner binaries call this from main.
func Serve(impl FlightPlanner) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: HandshakeConfig(),
		Plugins:         PluginMap(impl),
	})
}

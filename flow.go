package awbridge

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/matafokka/aerialware-bridge/log"
	"github.com/matafokka/aerialware-bridge/planner"

	"go.uber.org/zap"
)

const msgNoRasters = "Sorry, but AerialWare works with raster layers only. " +
	"Please, load at least one raster layer and try again."

// Dialogs is the modal surface the bridge needs from its UI toolkit.
type Dialogs interface {
	// SelectLayer shows a single-selection list of distinct layer names.
	// ok is false when the user cancels.
	SelectLayer(names []string) (choice string, ok bool, err error)
	// PromptPlannerPath asks for a planner directory; false means cancel.
	PromptPlannerPath() (string, bool)
	// ShowError blocks on a message dialog until dismissed.
	ShowError(title, text string) error
}

// Bootstrapper resolves and loads the external planner.
type Bootstrapper interface {
	Bootstrap(prompt planner.PromptFunc) (*planner.Handle, error)
}

// App runs the whole bridge session once: accessor, loader, selection,
// planner hand-off, conversion.
type App struct {
	Project Project
	UI      Dialogs
	Loader  Bootstrapper

	logTag string
}

func NewApp(project Project, ui Dialogs, loader Bootstrapper) *App {
	return &App{
		Project: project,
		UI:      ui,
		Loader:  loader,
		logTag:  "App:",
	}
}

// Run drives one session. A user cancellation at any dialog aborts silently;
// host-side failures during layer creation propagate as errors.
func (a *App) Run() error {
	layers, err := a.Project.RasterLayers()
	if err != nil {
		return fmt.Errorf("project scan failed: %w", err)
	}
	if len(layers) == 0 {
		log.Info(a.logTag + "no raster layers in project")
		return a.UI.ShowError("No raster layer opened", msgNoRasters)
	}

	handle, err := a.Loader.Bootstrap(a.UI.PromptPlannerPath)
	if err != nil {
		if errors.Is(err, planner.ErrCanceled) {
			log.Info(a.logTag + "planner bootstrap canceled by user")
			return nil
		}
		return fmt.Errorf("planner bootstrap failed: %w", err)
	}
	defer handle.Kill()

	names := make([]string, len(layers))
	byName := make(map[string]RasterLayer, len(layers))
	for i, l := range layers {
		names[i] = l.Name()
		byName[l.Name()] = l
	}
	name, ok, err := a.UI.SelectLayer(names)
	if err != nil {
		return fmt.Errorf("layer selection failed: %w", err)
	}
	if !ok {
		log.Info(a.logTag + "layer selection canceled by user")
		return nil
	}
	layer := byName[name]
	log.Info(a.logTag+"layer selected", zap.String("layer", name))

	img, err := layer.Preview(layer.Width(), layer.Height())
	if err != nil {
		return fmt.Errorf("preview render failed: %w", err)
	}
	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return fmt.Errorf("preview encode failed: %w", err)
	}

	p := handle.Planner
	if err = p.LoadImage(buf.Bytes()); err != nil {
		return fmt.Errorf("planner image load failed: %w", err)
	}
	if err = p.Show(); err != nil {
		return fmt.Errorf("planner show failed: %w", err)
	}
	log.Info(a.logTag + "waiting for planner session to finish")
	if err = p.Done(); err != nil {
		return fmt.Errorf("planner session failed: %w", err)
	}

	plan, err := readPlan(p)
	if err != nil {
		return fmt.Errorf("planner results read failed: %w", err)
	}
	if err = p.Close(); err != nil {
		log.Warn(a.logTag+"planner close failed", zap.Error(err))
	}

	drafts, err := BuildFlightLayers(plan)
	if err != nil {
		return fmt.Errorf("flight path conversion failed: %w", err)
	}
	if err = a.Project.AddVectorLayers(drafts...); err != nil {
		return fmt.Errorf("layer registration failed: %w", err)
	}
	log.Info(a.logTag+"session done",
		zap.Int("meridians", len(plan.Meridians)), zap.Int("horizontals", len(plan.Horizontals)))
	return nil
}

// readPlan pulls every result getter of the finished planner session.
func readPlan(p planner.FlightPlanner) (plan FlightPlan, err error) {
	if plan.Meridians, err = p.MeridiansPath(); err != nil {
		return
	}
	if plan.Horizontals, err = p.HorizontalsPath(); err != nil {
		return
	}
	if plan.FlightHeight, err = p.FlightHeight(); err != nil {
		return
	}
	area, err := p.MaxCaptureArea()
	if err != nil {
		return
	}
	plan.Meta.MaxAreaHeight = area.Height
	plan.Meta.MaxAreaWidth = area.Width
	res, err := p.CameraResolution()
	if err != nil {
		return
	}
	plan.Meta.ResolutionHeight = res.Height
	plan.Meta.ResolutionWidth = res.Width
	if plan.Meta.MetersPerPixel, err = p.CameraRatio(); err != nil {
		return
	}
	plan.Meta.FocalLength, err = p.FocalLength()
	return
}

package awbridge

import (
	"errors"
	"strings"
	"testing"
)

func contiguousSegs() []Segment {
	return []Segment{
		{X1: 0, Y1: 0, X2: 0, Y2: 10},
		{X1: 0, Y1: 10, X2: 5, Y2: 10},
		{X1: 5, Y1: 10, X2: 5, Y2: 0},
	}
}

func TestFlightPathWKT(t *testing.T) {
	wkt, err := flightPathWKT(contiguousSegs(), 120)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(wkt, "LINESTRING M (") || !strings.HasSuffix(wkt, ")") {
		t.Fatalf("unexpected wkt form: %s", wkt)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(wkt, "LINESTRING M ("), ")")
	points := strings.Split(body, ", ")
	if len(points) != len(contiguousSegs())+1 {
		t.Fatalf("got %d points, want %d", len(points), len(contiguousSegs())+1)
	}
	for i, p := range points {
		if !strings.HasSuffix(p, " 120") {
			t.Fatalf("point %d misses flight height measure: %q", i, p)
		}
	}
	if points[0] != "0 0 120" {
		t.Fatalf("wrong first point: %q", points[0])
	}
	if points[len(points)-1] != "5 0 120" {
		t.Fatalf("wrong last point: %q", points[len(points)-1])
	}
}

func TestFlightPathWKTEmpty(t *testing.T) {
	if _, err := flightPathWKT(nil, 100); !errors.Is(err, ErrEmptyFlightPath) {
		t.Fatalf("got %v, want ErrEmptyFlightPath", err)
	}
}

func TestFlightPathWKTDiscontinuous(t *testing.T) {
	segs := contiguousSegs()
	segs[1].X1 += 0.5
	if _, err := flightPathWKT(segs, 100); !errors.Is(err, ErrDiscontinuousPath) {
		t.Fatalf("got %v, want ErrDiscontinuousPath", err)
	}
}

func TestFlightPathWKTGapTolerance(t *testing.T) {
	segs := contiguousSegs()
	segs[1].X1 += PathGapTolerance / 2
	if _, err := flightPathWKT(segs, 100); err != nil {
		t.Fatalf("sub-tolerance gap rejected: %v", err)
	}
}

func TestBuildFlightLayers(t *testing.T) {
	plan := FlightPlan{
		Meridians:    contiguousSegs(),
		Horizontals:  contiguousSegs(),
		FlightHeight: 80,
		Meta: FlightMeta{
			MaxAreaHeight:    150,
			MaxAreaWidth:     225,
			MetersPerPixel:   0.05,
			ResolutionHeight: 3000,
			ResolutionWidth:  4000,
			FocalLength:      35,
		},
	}
	drafts, err := BuildFlightLayers(plan)
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2", len(drafts))
	}
	if drafts[0].Name != MeridiansLayerName || drafts[1].Name != HorizontalsLayerName {
		t.Fatalf("wrong draft names: %s, %s", drafts[0].Name, drafts[1].Name)
	}
	for _, d := range drafts {
		if d.Meta != plan.Meta {
			t.Fatalf("draft %s lost metadata", d.Name)
		}
	}
}

func TestBuildFlightLayersAllOrNothing(t *testing.T) {
	broken := contiguousSegs()
	broken[2].Y1 += 1
	plan := FlightPlan{
		Meridians:    contiguousSegs(),
		Horizontals:  broken,
		FlightHeight: 80,
	}
	drafts, err := BuildFlightLayers(plan)
	if !errors.Is(err, ErrDiscontinuousPath) {
		t.Fatalf("got %v, want ErrDiscontinuousPath", err)
	}
	if drafts != nil {
		t.Fatal("broken plan still produced drafts")
	}
}

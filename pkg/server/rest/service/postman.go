package service

import (
	"context"
	"errors"
	"time"

	"lintang/postmanx/pkg/costing"
	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/engine/assignment"
	"lintang/postmanx/pkg/engine/routingalgorithm"
	"lintang/postmanx/pkg/geo"
	"lintang/postmanx/pkg/kv"
	"lintang/postmanx/pkg/postman"
	"lintang/postmanx/pkg/selection"
	"lintang/postmanx/pkg/server"

	"github.com/twpayne/go-polyline"
)

type Snapper interface {
	CorrelateLocation(lat, lon float64) (datastructure.Location, error)
}

type EdgeSelector interface {
	SelectEdges(polygon []geo.Location, avoidPolygons [][]geo.Location) []selection.SelectedEdge
}

// RouteResult is the materialized inspection route of one request.
type RouteResult struct {
	Steps []datastructure.PathStep
	Shape string
	Dist  float64 // meters
	ETA   float64 // seconds
}

// PostmanService solves route-inspection requests: visit every selected
// road segment at least once and return to the start.
type PostmanService struct {
	db       *kv.KVDB
	snapper  Snapper
	selector EdgeSelector
	costing  *costing.AutoCost
}

func NewPostmanService(db *kv.KVDB, snapper Snapper, selector EdgeSelector) *PostmanService {
	return &PostmanService{
		db:       db,
		snapper:  snapper,
		selector: selector,
		costing:  costing.NewAutoCost(),
	}
}

// ChinesePostmanRoute computes a closed route covering every selected
// edge inside polygon. departAt is an optional local time in the
// "2006-01-02T15:04" layout; when empty the costing is time-invariant.
func (uc *PostmanService) ChinesePostmanRoute(ctx context.Context, polygon []geo.Location, avoidPolygons [][]geo.Location,
	origin, dest geo.Location, departAt string) (RouteResult, error) {

	ti, invariant, err := parseDepartAt(departAt)
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid depart_at, want layout 2006-01-02T15:04")
	}

	originLoc, err := uc.snapper.CorrelateLocation(origin.Lat, origin.Lon)
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "origin is not near any road")
	}
	destLoc, err := uc.snapper.CorrelateLocation(dest.Lat, dest.Lon)
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "destination is not near any road")
	}

	selected := uc.selector.SelectEdges(polygon, avoidPolygons)
	if len(selected) == 0 {
		return RouteResult{}, server.WrapErrorf(nil, server.ErrNotFound, "no road inside the requested polygon")
	}

	g := postman.NewMultigraph()
	for _, e := range selected {
		g.AddVertex(e.From)
		g.AddVertex(e.To)
		// uniform cost, the circuit traverses each selected edge exactly
		// once regardless of its length
		g.AddEdge(e.From, e.To, datastructure.NewCost(1, 1), e.ID)
	}

	reader := uc.db.NewReader()

	if len(g.UnbalancedVertices()) != 0 {
		engine := routingalgorithm.NewRouteAlgorithm(reader, uc.costing)
		resolver := postman.NewImbalanceResolver(engine, assignment.NewHungarian())
		if err := resolver.Balance(g); err != nil {
			return RouteResult{}, server.WrapErrorf(err, server.ErrUnprocessable, "selected area cannot be balanced into a closed route")
		}
	}

	circuit, err := g.EulerCircuit(g.StartVertex())
	if err != nil {
		return RouteResult{}, server.WrapErrorf(err, server.ErrUnprocessable, "selected area is not connected")
	}

	builder := postman.NewPathBuilder(reader, uc.costing)
	steps, err := builder.BuildPath(circuit, originLoc, destLoc, ti, invariant)
	if err != nil {
		if errors.Is(err, postman.ErrNoCandidateEdge) {
			return RouteResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "origin or destination does not touch the route")
		}
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "failed to materialize the route")
	}

	return uc.renderResult(reader, steps)
}

func parseDepartAt(departAt string) (costing.TimeInfo, bool, error) {
	if departAt == "" {
		return costing.TimeInfo{}, true, nil
	}
	t, err := time.Parse("2006-01-02T15:04", departAt)
	if err != nil {
		return costing.TimeInfo{}, true, err
	}
	return costing.NewTimeInfo(t), false, nil
}

func (uc *PostmanService) renderResult(reader *kv.Reader, steps []datastructure.PathStep) (RouteResult, error) {
	coords := make([][]float64, 0, len(steps)+1)
	dist := 0.0
	for i, step := range steps {
		edge, err := reader.DirectedEdge(step.EdgeID)
		if err != nil {
			return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "route references an unknown edge")
		}
		dist += edge.Dist

		if node, err := reader.NodeInfo(edge.FromNode); err == nil {
			coords = append(coords, []float64{node.Lat, node.Lon})
		}
		if i == len(steps)-1 {
			if node, err := reader.NodeInfo(edge.ToNode); err == nil {
				coords = append(coords, []float64{node.Lat, node.Lon})
			}
		}
	}

	eta := 0.0
	if len(steps) != 0 {
		eta = steps[len(steps)-1].ElapsedCost.Secs
	}

	return RouteResult{
		Steps: steps,
		Shape: string(polyline.EncodeCoords(coords)),
		Dist:  dist,
		ETA:   eta,
	}, nil
}

package osmparser

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/kv"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
)

const (
	tileSizeDeg = 0.25
	tileColumns = 1440 // 360 / tileSizeDeg
)

// roadLevel hierarchy level of a road class. 0 highways, 1 arterials,
// 2 everything else.
func roadLevel(highway string) uint8 {
	switch highway {
	case "motorway", "trunk", "motorway_link", "trunk_link":
		return 0
	case "primary", "secondary", "tertiary",
		"primary_link", "secondary_link", "tertiary_link":
		return 1
	default:
		return 2
	}
}

// tileIDFromLatLon maps a coordinate onto the 0.25 degree tile grid.
func tileIDFromLatLon(lat, lon float64) uint32 {
	row := uint32(math.Floor((lat + 90) / tileSizeDeg))
	col := uint32(math.Floor((lon + 180) / tileSizeDeg))
	return row*tileColumns + col
}

func parseMaxSpeed(tag string) float64 {
	fields := strings.Fields(tag)
	if len(fields) == 0 {
		return 0
	}
	speed, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	if len(fields) > 1 && fields[1] == "mph" {
		speed *= 1.609
	}
	return speed
}

func isOneway(tagMap map[string]string) bool {
	if oneway, ok := tagMap["oneway"]; ok {
		return oneway == "yes" || oneway == "1" || oneway == "true"
	}
	if junction, ok := tagMap["junction"]; ok {
		return junction == "roundabout" || junction == "circular"
	}
	return false
}

// https://github.com/RoutingKit/RoutingKit/blob/master/src/osm_profile.cpp  [is_osm_way_used_by_cars()]
func isOsmWayUsedByCars(tagMap map[string]string) bool {
	if _, ok := tagMap["junction"]; ok {
		return true
	}

	route, ok := tagMap["route"]
	if ok && route == "ferry" {
		return true
	}

	ferry, ok := tagMap["ferry"]
	if ok && ferry == "yes" {
		return true
	}

	highway, okHW := tagMap["highway"]
	if !okHW {
		return false
	}

	motorcar, ok := tagMap["motorcar"]
	if ok && motorcar == "no" {
		return false
	}

	motorVehicle, ok := tagMap["motor_vehicle"]
	if ok && motorVehicle == "no" {
		return false
	}

	access, ok := tagMap["access"]
	if ok {
		if !(access == "yes" || access == "permissive" || access == "designated" || access == "delivery" || access == "destination") {
			return false
		}
	}

	if highway == "motorway" ||
		highway == "trunk" ||
		highway == "primary" ||
		highway == "secondary" ||
		highway == "tertiary" ||
		highway == "unclassified" ||
		highway == "residential" ||
		highway == "living_street" ||
		highway == "service" ||
		highway == "motorway_link" ||
		highway == "trunk_link" ||
		highway == "primary_link" ||
		highway == "secondary_link" ||
		highway == "tertiary_link" {
		return true
	}

	if highway == "bicycle_road" {
		motorcar, ok := tagMap["motorcar"]
		if ok && motorcar == "yes" {
			return true
		}
		return false
	}

	if highway == "construction" ||
		highway == "path" ||
		highway == "footway" ||
		highway == "cycleway" ||
		highway == "bridleway" ||
		highway == "pedestrian" ||
		highway == "bus_guideway" ||
		highway == "raceway" ||
		highway == "escape" ||
		highway == "steps" ||
		highway == "proposed" ||
		highway == "conveying" {
		return false
	}

	oneway, ok := tagMap["oneway"]
	if ok {
		if oneway == "reversible" || oneway == "alternating" {
			return false
		}
	}

	if _, ok := tagMap["maxspeed"]; ok {
		return true
	}

	return false
}

type parsedNode struct {
	lat          float64
	lon          float64
	trafficLight bool
	level        uint8
	gid          datastructure.GraphID
}

// TileBuilder accumulates the parsed road network into hierarchical
// tiles plus the h3-indexed snap candidates.
type TileBuilder struct {
	nodes map[osm.NodeID]*parsedNode
	tiles map[[2]uint32]*kv.Tile // [tileID, level]

	nodeCounter map[[2]uint32]uint64
	edgeCounter map[[2]uint32]uint64

	cells map[h3.Cell][]kv.CandidateRecord
}

func newTileBuilder() *TileBuilder {
	return &TileBuilder{
		nodes:       make(map[osm.NodeID]*parsedNode),
		tiles:       make(map[[2]uint32]*kv.Tile),
		nodeCounter: make(map[[2]uint32]uint64),
		edgeCounter: make(map[[2]uint32]uint64),
		cells:       make(map[h3.Cell][]kv.CandidateRecord),
	}
}

func (b *TileBuilder) tile(tileID uint32, level uint8) *kv.Tile {
	key := [2]uint32{tileID, uint32(level)}
	t, ok := b.tiles[key]
	if !ok {
		t = kv.NewTile(tileID, level)
		b.tiles[key] = t
	}
	return t
}

func (b *TileBuilder) nodeGraphID(id osm.NodeID) datastructure.GraphID {
	n := b.nodes[id]
	if n.gid.IsValid() {
		return n.gid
	}
	tileID := tileIDFromLatLon(n.lat, n.lon)
	key := [2]uint32{tileID, uint32(n.level)}
	index := b.nodeCounter[key]
	b.nodeCounter[key]++

	n.gid = datastructure.NewGraphID(tileID, n.level, index)
	b.tile(tileID, n.level).Nodes[index] = kv.NodeRecord{
		ID:           uint64(n.gid),
		Lat:          n.lat,
		Lon:          n.lon,
		TrafficLight: n.trafficLight,
	}
	return n.gid
}

func (b *TileBuilder) addEdge(from, to osm.NodeID, forward bool, dist, maxSpeed float64,
	roadClass string, shortcut bool, inner []datastructure.GraphID) datastructure.GraphID {

	fromNode := b.nodes[from]
	fromGID := b.nodeGraphID(from)
	toGID := b.nodeGraphID(to)
	toNode := b.nodes[to]

	level := roadLevel(roadClass)
	tileID := tileIDFromLatLon(fromNode.lat, fromNode.lon)
	key := [2]uint32{tileID, uint32(level)}
	index := b.edgeCounter[key]
	b.edgeCounter[key]++

	gid := datastructure.NewGraphID(tileID, level, index)

	innerRaw := make([]uint64, len(inner))
	for i, id := range inner {
		innerRaw[i] = uint64(id)
	}
	b.tile(tileID, level).Edges[index] = kv.EdgeRecord{
		ID:             uint64(gid),
		FromNode:       uint64(fromGID),
		ToNode:         uint64(toGID),
		FromLat:        fromNode.lat,
		FromLon:        fromNode.lon,
		ToLat:          toNode.lat,
		ToLon:          toNode.lon,
		Forward:        forward,
		Dist:           dist,
		MaxSpeed:       maxSpeed,
		RoadClass:      roadClass,
		Shortcut:       shortcut,
		InnerEdges:     innerRaw,
		RestrictionIdx: -1,
	}

	b.linkEdge(fromGID, gid, true)
	b.linkEdge(toGID, gid, false)

	if forward && !shortcut {
		midLat := (fromNode.lat + toNode.lat) / 2
		midLon := (fromNode.lon + toNode.lon) / 2
		cell := h3.LatLngToCell(h3.NewLatLng(midLat, midLon), 9)
		b.cells[cell] = append(b.cells[cell], kv.CandidateRecord{
			EdgeID:  uint64(gid),
			FromLat: fromNode.lat,
			FromLon: fromNode.lon,
			ToLat:   toNode.lat,
			ToLon:   toNode.lon,
		})
	}
	return gid
}

func (b *TileBuilder) linkEdge(nodeGID, edgeGID datastructure.GraphID, out bool) {
	t := b.tile(nodeGID.TileID(), nodeGID.Level())
	rec := t.Nodes[nodeGID.Index()]
	if out {
		rec.OutEdges = append(rec.OutEdges, uint64(edgeGID))
	} else {
		rec.InEdges = append(rec.InEdges, uint64(edgeGID))
	}
	t.Nodes[nodeGID.Index()] = rec
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6371000.0
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// addWay turns one osm way into per-segment directed edges plus, for
// multi-segment ways, one shortcut edge per direction whose inner edges
// are the segments it bypasses.
func (b *TileBuilder) addWay(way *osm.Way) {
	tagMap := way.TagMap()
	highway := tagMap["highway"]
	oneway := isOneway(tagMap)
	maxSpeed := parseMaxSpeed(tagMap["maxspeed"])

	forwardIDs := make([]datastructure.GraphID, 0, len(way.Nodes)-1)
	backwardIDs := make([]datastructure.GraphID, 0, len(way.Nodes)-1)
	totalDist := 0.0

	for i := 0; i+1 < len(way.Nodes); i++ {
		u := way.Nodes[i].ID
		v := way.Nodes[i+1].ID
		un, okU := b.nodes[u]
		vn, okV := b.nodes[v]
		if !okU || !okV {
			continue
		}
		dist := haversineMeters(un.lat, un.lon, vn.lat, vn.lon)
		totalDist += dist

		fid := b.addEdge(u, v, true, dist, maxSpeed, highway, false, nil)
		forwardIDs = append(forwardIDs, fid)

		bid := b.addEdge(v, u, !oneway, dist, maxSpeed, highway, false, nil)
		backwardIDs = append(backwardIDs, bid)
	}

	// shortcut per direction, expanded back into its segments when a
	// final path is materialized
	if len(forwardIDs) >= 2 {
		first := way.Nodes[0].ID
		last := way.Nodes[len(way.Nodes)-1].ID
		if _, ok := b.nodes[first]; ok {
			if _, ok := b.nodes[last]; ok {
				b.addEdge(first, last, true, totalDist, maxSpeed, highway, true, forwardIDs)
				if !oneway {
					reversed := make([]datastructure.GraphID, len(backwardIDs))
					for i, id := range backwardIDs {
						reversed[len(backwardIDs)-1-i] = id
					}
					b.addEdge(last, first, true, totalDist, maxSpeed, highway, true, reversed)
				}
			}
		}
	}
}

// ParsePBF reads an openstreetmap pbf extract and builds the tiled
// graph plus the h3 snap candidates.
func ParsePBF(mapFile string) ([]*kv.Tile, map[h3.Cell][]kv.CandidateRecord, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 3)

	ways := []*osm.Way{}
	wayNodesMap := make(map[osm.NodeID]bool)

	bar := progressbar.NewOptions(450000,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/3][reset] processing openstreetmap ways..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	count := 0
	for scanner.Scan() {
		o := scanner.Object()
		if count%50000 == 0 {
			bar.Add(50000)
		}
		count++

		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !isOsmWayUsedByCars(way.TagMap()) {
			continue
		}
		ways = append(ways, way)
		for _, node := range way.Nodes {
			wayNodesMap[node.ID] = true
		}
	}
	scanner.Close()
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 3)
	defer scanner.Close()

	builder := newTileBuilder()
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if !wayNodesMap[node.ID] {
			continue
		}
		trafficLight := false
		for _, tag := range node.Tags {
			if strings.Contains(tag.Value, "traffic_signals") {
				trafficLight = true
			}
		}
		builder.nodes[node.ID] = &parsedNode{
			lat:          node.Lat,
			lon:          node.Lon,
			trafficLight: trafficLight,
			level:        2,
			gid:          datastructure.InvalidGraphID,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	// a node lives at the most important level among its ways
	for _, way := range ways {
		lvl := roadLevel(way.TagMap()["highway"])
		for _, wn := range way.Nodes {
			if n, ok := builder.nodes[wn.ID]; ok && lvl < n.level {
				n.level = lvl
			}
		}
	}

	fmt.Println("")
	bar = progressbar.NewOptions(len(ways),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][2/3][reset] building graph tiles..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	for _, way := range ways {
		builder.addWay(way)
		bar.Add(1)
	}
	fmt.Println("")

	tiles := make([]*kv.Tile, 0, len(builder.tiles))
	for _, t := range builder.tiles {
		tiles = append(tiles, t)
	}
	return tiles, builder.cells, nil
}

package costing

import (
	"time"

	"lintang/postmanx/pkg/datastructure"
)

const trafficLightPenaltySecs = 15.0

// peak-hour multiplier applied when the time context is variant
const rushHourFactor = 1.3

// TimeInfo is the time-of-day context of a request. When Valid is
// false (or the request asked for invariant costing) traversal costs do
// not depend on the clock.
type TimeInfo struct {
	LocalTime time.Time
	Valid     bool
}

func NewTimeInfo(t time.Time) TimeInfo {
	return TimeInfo{LocalTime: t, Valid: true}
}

// AutoCost is the car costing profile: traversal seconds from segment
// length and road-class speed, a fixed penalty at traffic lights.
type AutoCost struct{}

func NewAutoCost() *AutoCost {
	return &AutoCost{}
}

// Allowed reports whether the profile may traverse the edge in its
// stored direction.
func (c *AutoCost) Allowed(e datastructure.DirectedEdge) bool {
	return e.Forward
}

// EdgeCost traversal cost of e at the given time context.
func (c *AutoCost) EdgeCost(e datastructure.DirectedEdge, ti TimeInfo, invariant bool) datastructure.Cost {
	speed := e.MaxSpeed
	if speed <= 0 {
		speed = datastructure.RoadTypeMaxSpeed(e.RoadClass)
	}
	secs := e.Dist / (speed / 3.6) // Dist meters, speed km/h

	cost := secs
	if !invariant && ti.Valid {
		hour := ti.LocalTime.Hour()
		if (hour >= 7 && hour < 9) || (hour >= 16 && hour < 18) {
			cost = secs * rushHourFactor
		}
	}
	return datastructure.NewCost(secs, cost)
}

func secsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// TransitionCost maneuver cost of entering an edge through node.
func (c *AutoCost) TransitionCost(node datastructure.NodeInfo) datastructure.Cost {
	if node.TrafficLight {
		return datastructure.NewCost(trafficLightPenaltySecs, trafficLightPenaltySecs)
	}
	return datastructure.Cost{}
}

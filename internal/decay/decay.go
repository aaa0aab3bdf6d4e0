package decay

import (
	"errors"
	"math"
)

// Caffeine elimination half-life used for the display curve. Display only;
// the ledger never consumes projected values.
const (
	HalfLifeHours = 5.0
	HorizonHours  = 12.0
	StepHours     = 0.5
)

// Point is one sample of the projected decay curve.
type Point struct {
	Hour     float64 `json:"hour"`
	Caffeine int     `json:"caffeine"`
}

// Project returns the decay curve for the current amount over the default
// 12-hour horizon at half-hour steps.
func Project(currentMg int) []Point {
	points, _ := ProjectCurve(currentMg, HorizonHours, StepHours, HalfLifeHours)
	return points
}

// ProjectCurve computes projected remaining caffeine at each step:
// amount * 0.5^(hour/halfLife), rounded to whole milligrams.
// Pure function of its inputs.
func ProjectCurve(currentMg int, horizonHours, stepHours, halfLifeHours float64) ([]Point, error) {
	if currentMg < 0 {
		return nil, errors.New("current amount must be non-negative")
	}
	if stepHours <= 0 || horizonHours < 0 || halfLifeHours <= 0 {
		return nil, errors.New("horizon, step and half-life must be positive")
	}

	points := make([]Point, 0, int(horizonHours/stepHours)+1)
	for hour := 0.0; hour <= horizonHours; hour += stepHours {
		amount := float64(currentMg) * math.Pow(0.5, hour/halfLifeHours)
		points = append(points, Point{Hour: hour, Caffeine: int(math.Round(amount))})
	}
	return points, nil
}

// At returns the projected amount at a single point in time.
func At(currentMg int, hour float64) int {
	return int(math.Round(float64(currentMg) * math.Pow(0.5, hour/HalfLifeHours)))
}

package analytics

import "math"

// WaterReading is a simulated IoT water-quality sample.
type WaterReading struct {
	Location     string  `json:"location"`
	PH           float64 `json:"pH"`
	Turbidity    float64 `json:"Turbidity"`
	Contaminants float64 `json:"Contaminants"`
}

const (
	basePH           = 7.2
	baseTurbidity    = 3.5
	baseContaminants = 15.0
)

// SimulateWater derives stable readings from the location name so each
// location shows slightly different, repeatable values.
func SimulateWater(location string) WaterReading {
	offset := float64(runeSum(location)%7) - 3

	return WaterReading{
		Location:     location,
		PH:           round2(basePH + offset*0.05),
		Turbidity:    round2(math.Max(0.5, baseTurbidity+offset*0.2)),
		Contaminants: round2(math.Max(0, baseContaminants+offset*1.5)),
	}
}

// HotspotCount is the placeholder case count shown per hotspot (0..19).
func HotspotCount(name string) int {
	return runeSum(name) % 20
}

func runeSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

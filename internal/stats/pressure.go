package stats

import "sort"

// Pressure band thresholds, evaluated high to low with strict comparison.
const (
	criticalPercent = 90
	highPercent     = 75
	moderatePercent = 50

	// Containers above this individual memory percentage are flagged.
	atRiskPercent = 80
)

// Classify derives the memory-pressure summary from the latest per-container
// snapshots. An empty map yields a low-pressure result with zero totals.
func Classify(snapshots map[string]Snapshot) Pressure {
	p := Pressure{
		Level:            PressureLow,
		ContainersAtRisk: []string{},
	}

	for _, snap := range snapshots {
		p.TotalUsed += snap.MemoryUsage
		p.TotalLimit += snap.MemoryLimit
		if snap.MemoryPercent > atRiskPercent {
			p.ContainersAtRisk = append(p.ContainersAtRisk, snap.DisplayName())
		}
	}

	if p.TotalLimit > 0 {
		p.Percent = p.TotalUsed / p.TotalLimit * 100
	}

	switch {
	case p.Percent > criticalPercent:
		p.Level = PressureCritical
	case p.Percent > highPercent:
		p.Level = PressureHigh
	case p.Percent > moderatePercent:
		p.Level = PressureModerate
	}

	sort.Strings(p.ContainersAtRisk)
	return p
}

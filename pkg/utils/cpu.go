package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether the host is below maxCPUUsage, along with
// the current aggregate usage. A read error counts as saturated.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	percentages, err := cpu.Percent(0, false)
	if err != nil || len(percentages) == 0 {
		return false, 0
	}
	return percentages[0] <= maxCPUUsage, percentages[0]
}

package pipeline

import (
	"fmt"
	"runtime"
	"time"
)

// PerformanceReport exposes simple runtime metrics for the current process.
type PerformanceReport struct {
	Time    string `json:"time"`
	Memory  string `json:"memory"`
	Threads int    `json:"threads"`
}

// BuildPerformanceReport captures elapsed time since start, current heap
// usage, and the number of live goroutines.
func BuildPerformanceReport(start time.Time) *PerformanceReport {
	elapsed := time.Since(start)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	memoryMB := float64(mem.Alloc) / (1024.0 * 1024.0)

	return &PerformanceReport{
		Time:    fmt.Sprintf("%.3f ms", float64(elapsed.Microseconds())/1000.0),
		Memory:  fmt.Sprintf("%.2f MB", memoryMB),
		Threads: runtime.NumGoroutine(),
	}
}

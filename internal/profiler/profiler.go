// Package profiler tracks per-frame timing and periodically logs FPS and
// heap statistics. It has no dependency on the rest of the module; a Viewer
// ticks it once per completed frame.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler accumulates frame counts between log intervals.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// New returns a Profiler that logs once per second.
func New() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Tick records one completed frame and returns true if it logged a summary
// (i.e. updateInterval has elapsed since the last log).
func (p *Profiler) Tick() bool {
	p.frameCount++

	elapsed := time.Since(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	allocRate := float64(mem.TotalAlloc-p.lastTotalAlloc) / elapsed.Seconds() / (1024 * 1024)

	var pauseTotal time.Duration
	var pauseSamples int
	for i, gcCount := uint32(0), mem.NumGC; i < 256 && gcCount > p.lastGCCount && i < gcCount-p.lastGCCount; i++ {
		idx := (gcCount - 1 - i) % uint32(len(mem.PauseNs))
		pauseTotal += time.Duration(mem.PauseNs[idx])
		pauseSamples++
	}
	var avgPause time.Duration
	if pauseSamples > 0 {
		avgPause = pauseTotal / time.Duration(pauseSamples)
	}

	log.Printf(
		"frame stats: fps=%.1f heap=%.1fMB sys=%.1fMB alloc_rate=%.2fMB/s gc_count=%d avg_pause=%s",
		fps,
		float64(mem.Alloc)/(1024*1024),
		float64(mem.Sys)/(1024*1024),
		allocRate,
		mem.NumGC-p.lastGCCount,
		avgPause,
	)

	p.frameCount = 0
	p.lastTime = time.Now()
	p.lastGCCount = mem.NumGC
	p.lastTotalAlloc = mem.TotalAlloc

	return true
}

package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	// SysInfoInterval is how often CPU and RAM are sampled.
	SysInfoInterval = time.Second
	// cpuHistoryLen is the number of bars in the CPU graph.
	cpuHistoryLen = 8
)

var gaugeBars = []rune("▁▂▃▄▅▆▇█")

// Sampler reads current CPU and memory usage as percentages.
type Sampler interface {
	Sample() (cpuPct, ramPct float64, err error)
}

type hostSampler struct{}

// Sample implements Sampler using gopsutil.
func (hostSampler) Sample() (float64, float64, error) {
	cpus, err := cpu.Percent(0, false)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu usage: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("memory usage: %w", err)
	}
	usage := 0.0
	if len(cpus) > 0 {
		usage = cpus[0]
	}
	return usage, vm.UsedPercent, nil
}

// SysInfoMsg carries one CPU/RAM sample.
type SysInfoMsg struct {
	CPU float64
	RAM float64
	Err error
}

// SysInfo is the taskbar gauge state.
type SysInfo struct {
	CPUHistory []float64
	RAM        float64
}

// Add records a sample, keeping the last few CPU readings.
func (s *SysInfo) Add(cpuPct, ramPct float64) {
	if len(s.CPUHistory) >= cpuHistoryLen {
		s.CPUHistory = s.CPUHistory[1:]
	}
	s.CPUHistory = append(s.CPUHistory, clampPct(cpuPct))
	s.RAM = clampPct(ramPct)
}

// Gauge renders a fixed-width "CPU:▁▂▃ 12% RAM: 45%" string.
func (s *SysInfo) Gauge() string {
	var b strings.Builder
	b.WriteString("CPU:")
	if pad := cpuHistoryLen - len(s.CPUHistory); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	current := 0.0
	for _, usage := range s.CPUHistory {
		b.WriteRune(bar(usage))
		current = usage
	}
	fmt.Fprintf(&b, " %3.0f%% RAM:%3.0f%%", current, s.RAM)
	return b.String()
}

func bar(pct float64) rune {
	i := int(pct / (100.0 / float64(len(gaugeBars))))
	return gaugeBars[min(max(i, 0), len(gaugeBars)-1)]
}

func clampPct(v float64) float64 {
	return min(max(v, 0), 100)
}

// sampleCmd samples usage off the update loop after delay.
func sampleCmd(s Sampler, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		c, r, err := s.Sample()
		return SysInfoMsg{CPU: c, RAM: r, Err: err}
	})
}

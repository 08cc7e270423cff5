// internal/monitor/sampler.go
package monitor

import (
	"context"
	"time"

	"github.com/prometheus/procfs"
	"github.com/rs/zerolog"
)

// Sampler periodically reads CPU and storage-I/O signals from procfs and
// publishes them to Metrics plus a debug log line. It is purely advisory:
// it never blocks the pipeline, and a failed sample is skipped, not fatal.
type Sampler struct {
	interval time.Duration
	fs       procfs.FS
	proc     procfs.Proc
	m        *Metrics
	log      *zerolog.Logger
}

// NewSampler builds a sampler. Returns an error when procfs is unavailable
// (non-Linux or restricted environments); callers treat that as "monitoring
// off", not as a run failure.
func NewSampler(interval time.Duration, m *Metrics, log *zerolog.Logger) (*Sampler, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, err
	}
	proc, err := procfs.Self()
	if err != nil {
		return nil, err
	}
	return &Sampler{interval: interval, fs: fs, proc: proc, m: m, log: log}, nil
}

// Run samples until ctx is done. Call it on its own goroutine.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	prevCPU, cpuOK := s.cpuSample()
	prevIO, ioOK := s.ioSample()
	prevT := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		now := time.Now()
		elapsed := now.Sub(prevT).Seconds()
		if elapsed <= 0 {
			continue
		}

		var util, rd, wr float64
		if cur, ok := s.cpuSample(); ok {
			if cpuOK {
				util = cpuUtil(prevCPU, cur)
				s.m.CPUUtil.Set(util)
			}
			prevCPU, cpuOK = cur, true
		}
		if cur, ok := s.ioSample(); ok {
			if ioOK {
				rd = float64(cur.ReadBytes-prevIO.ReadBytes) / elapsed
				wr = float64(cur.WriteBytes-prevIO.WriteBytes) / elapsed
				s.m.ReadBytesPerS.Set(rd)
				s.m.WriteBytesPerS.Set(wr)
			}
			prevIO, ioOK = cur, true
		}
		s.log.Debug().
			Float64("cpu_util", util).
			Float64("read_bps", rd).
			Float64("write_bps", wr).
			Msg("resource sample")
		prevT = now
	}
}

func (s *Sampler) cpuSample() (procfs.CPUStat, bool) {
	stat, err := s.fs.Stat()
	if err != nil {
		return procfs.CPUStat{}, false
	}
	return stat.CPUTotal, true
}

func (s *Sampler) ioSample() (procfs.ProcIO, bool) {
	io, err := s.proc.IO()
	if err != nil {
		return procfs.ProcIO{}, false
	}
	return io, true
}

// cpuUtil computes utilization from two cumulative /proc/stat samples:
// 1 - idle share of the elapsed ticks.
func cpuUtil(prev, cur procfs.CPUStat) float64 {
	idle := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	total := sum(cur) - sum(prev)
	if total <= 0 {
		return 0
	}
	u := 1 - idle/total
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

func sum(c procfs.CPUStat) float64 {
	return c.User + c.Nice + c.System + c.Idle + c.Iowait + c.IRQ + c.SoftIRQ + c.Steal
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sysinfo samples host CPU, memory and process statistics.
package sysinfo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// CPUStats is a utilisation sample over one interval.
type CPUStats struct {
	Percent float64
	Cores   int
}

// MemoryStats describes virtual memory. Sizes are in bytes.
type MemoryStats struct {
	Percent   float64
	Total     uint64
	Available uint64
	Used      uint64
}

// Process is one row of the process table.
type Process struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float32
}

// Sampler reads host statistics. CPU blocks for the sampling interval and
// returns early with ctx.Err() when ctx is cancelled.
type Sampler interface {
	CPU(ctx context.Context, interval time.Duration) (CPUStats, error)
	Memory(ctx context.Context) (MemoryStats, error)
	Processes(ctx context.Context) ([]Process, error)
}

// =============================================================================
// HOST SAMPLER
// =============================================================================

// HostSampler reads statistics of the machine the shell runs on.
type HostSampler struct{}

// NewHostSampler creates a sampler backed by gopsutil.
func NewHostSampler() *HostSampler {
	return &HostSampler{}
}

// CPU measures total utilisation across all cores over interval.
func (HostSampler) CPU(ctx context.Context, interval time.Duration) (CPUStats, error) {
	percents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		if ctx.Err() != nil {
			return CPUStats{}, ctx.Err()
		}
		return CPUStats{}, fmt.Errorf("sample cpu: %w", err)
	}
	if len(percents) == 0 {
		return CPUStats{}, fmt.Errorf("sample cpu: no data")
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return CPUStats{}, fmt.Errorf("count cpus: %w", err)
	}
	return CPUStats{Percent: percents[0], Cores: cores}, nil
}

// Memory reads virtual memory usage.
func (HostSampler) Memory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("read memory: %w", err)
	}
	return MemoryStats{
		Percent:   vm.UsedPercent,
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
	}, nil
}

// Processes lists running processes sorted by PID. Processes that exit or
// deny access while being read are skipped.
func (HostSampler) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	rows := make([]Process, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		rows = append(rows, Process{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: cpuPct,
			MemPercent: memPct,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].PID < rows[j].PID })
	return rows, nil
}

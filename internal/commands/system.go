// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/rigsh/internal/ui/styles"
	"github.com/jeranaias/rigsh/internal/util"
)

// CPUSampleInterval is how long cpu measures utilisation for.
const CPUSampleInterval = time.Second

// processNameWidth is the display width of the ps NAME column.
const processNameWidth = 30

var errNoSampler = errors.New("host statistics are unavailable")

// =============================================================================
// RESOURCE USAGE
// =============================================================================

func handleCPU(ctx context.Context, env *Env, _ string) error {
	if env.Sampler == nil {
		return collaboratorError("cpu", "cannot sample CPU", errNoSampler)
	}
	stats, err := env.Sampler.CPU(ctx, CPUSampleInterval)
	if err != nil {
		return collaboratorError("cpu", "cannot sample CPU", err)
	}

	fmt.Fprintf(env.Out, "CPU Usage: %s\n", styles.RenderValue(fmt.Sprintf("%.1f%%", stats.Percent)))
	fmt.Fprintf(env.Out, "CPU Cores: %d\n", stats.Cores)
	return nil
}

func handleMemory(ctx context.Context, env *Env, _ string) error {
	if env.Sampler == nil {
		return collaboratorError("memory", "cannot read memory", errNoSampler)
	}
	mem, err := env.Sampler.Memory(ctx)
	if err != nil {
		return collaboratorError("memory", "cannot read memory", err)
	}

	fmt.Fprintf(env.Out, "Memory Usage: %s\n", styles.RenderValue(fmt.Sprintf("%.1f%%", mem.Percent)))
	fmt.Fprintf(env.Out, "Total: %s\n", humanize.IBytes(mem.Total))
	fmt.Fprintf(env.Out, "Available: %s\n", humanize.IBytes(mem.Available))
	fmt.Fprintf(env.Out, "Used: %s\n", humanize.IBytes(mem.Used))
	return nil
}

// handlePs prints one row per process. Processes that exit or deny access
// while being read are left out by the sampler.
func handlePs(ctx context.Context, env *Env, _ string) error {
	if env.Sampler == nil {
		return collaboratorError("ps", "cannot list processes", errNoSampler)
	}
	procs, err := env.Sampler.Processes(ctx)
	if err != nil {
		return collaboratorError("ps", "cannot list processes", err)
	}

	header := fmt.Sprintf("%-10s %-10s %-10s %s", "PID", "CPU%", "MEM%", "NAME")
	fmt.Fprintln(env.Out, styles.RenderHeader(header))
	for _, p := range procs {
		fmt.Fprintf(env.Out, "%-10d %-10.1f %-10.1f %s\n",
			p.PID, p.CPUPercent, p.MemPercent, util.TruncateWidth(p.Name, processNameWidth))
	}
	return nil
}

// Package hostinfo gathers the server information shown by the quick test.
package hostinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info is a best-effort snapshot; fields that could not be read stay zero.
type Info struct {
	GoVersion      string
	ServerSoftware string
	Hostname       string
	Platform       string
	MemoryTotal    uint64
	MemoryUsed     uint64
	DiskFree       uint64
	WorkDir        string
}

// Collect reads host facts. It never fails; missing facts are left empty.
func Collect(ctx context.Context, serverSoftware string) Info {
	info := Info{
		GoVersion:      runtime.Version(),
		ServerSoftware: serverSoftware,
	}

	if h, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = h.Hostname
		info.Platform = fmt.Sprintf("%s %s (%s)", h.Platform, h.PlatformVersion, h.KernelArch)
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.Used
	}
	if wd, err := os.Getwd(); err == nil {
		info.WorkDir = wd
		if usage, err := disk.UsageWithContext(ctx, wd); err == nil {
			info.DiskFree = usage.Free
		}
	}
	return info
}

// Lines renders the info block.
func (i Info) Lines() []string {
	lines := []string{"Go Version: " + i.GoVersion}
	lines = append(lines, "Server Software: "+orUnknown(i.ServerSoftware))
	if i.Hostname != "" {
		lines = append(lines, "Host: "+i.Hostname)
	}
	if i.Platform != "" {
		lines = append(lines, "Platform: "+i.Platform)
	}
	if i.MemoryTotal > 0 {
		lines = append(lines, fmt.Sprintf("Memory: %s used of %s", humanize.IBytes(i.MemoryUsed), humanize.IBytes(i.MemoryTotal)))
	}
	if i.WorkDir != "" {
		lines = append(lines, "Working Directory: "+i.WorkDir)
	}
	if i.DiskFree > 0 {
		lines = append(lines, "Disk Free: "+humanize.IBytes(i.DiskFree))
	}
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

package gopsutilx

import (
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	// LowMemoryPercent 可用内存低于总内存的该百分比，视为低内存
	LowMemoryPercent = 10
	// LowMemoryBytes 可用内存低于该值（512MB），视为低内存
	LowMemoryBytes uint64 = 512 << 20
)

// Usage 空间结构体使用情况
//   - Total: 总空间，默认单位为字节
//   - Used: 已使用空间，默认单位为字节
//   - Usable: 可用空间，默认单位为字节
//   - UsedPercent: 使用百分比,使用率，%0-100
type Usage struct {
	Name        string
	Total       uint64
	Used        uint64
	Usable      uint64
	UsedPercent float64
}

// SystemLoad 系统内存采样【assetX 插入缓存前、memMonitorX 定时任务都会调用】
type SystemLoad struct {
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

func NewSystemLoad() *SystemLoad {
	return &SystemLoad{virtualMemory: mem.VirtualMemory}
}

// MemUsage 获取内存使用情况
func (s *SystemLoad) MemUsage() (Usage, error) {
	var usage Usage
	v, err := s.virtualMemory()
	if err != nil {
		return usage, err
	}
	usage = Usage{Name: "内存", Total: v.Total, Used: v.Used, Usable: v.Available, UsedPercent: v.UsedPercent}
	return usage, nil
}

// IsLowMemory 可用内存 < 总内存的10% 或 < 512MB 时返回 true
func (s *SystemLoad) IsLowMemory() (bool, error) {
	u, err := s.MemUsage()
	if err != nil {
		return false, err
	}
	return IsLow(u), nil
}

// IsLow 低内存判定
func IsLow(u Usage) bool {
	if u.Total == 0 {
		return false
	}
	return u.Usable*100 < u.Total*LowMemoryPercent || u.Usable < LowMemoryBytes
}

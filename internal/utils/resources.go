package utils

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	// MinAvailableMemory 启动浏览器会话前要求的最低可用内存(500MB)
	MinAvailableMemory = 500 * 1024 * 1024

	// MaxCPULoad CPU负载上限(%)
	MaxCPULoad = 95.0
)

// CheckSystemResources 浏览器会话启动前的资源预检
// 返回是否满足条件以及不满足时的原因描述。
// 读取系统信息失败时放行,不阻塞批处理。
func CheckSystemResources() (bool, string) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		Debugf("读取内存信息失败,跳过资源预检: %v", err)
		return true, ""
	}

	if vm.Available < MinAvailableMemory {
		return false, fmt.Sprintf("可用内存不足: %dMB (最低要求 %dMB)",
			vm.Available/(1024*1024), MinAvailableMemory/(1024*1024))
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		Debugf("读取CPU负载失败,跳过CPU预检: %v", err)
		return true, ""
	}

	if len(percents) > 0 && percents[0] > MaxCPULoad {
		return false, fmt.Sprintf("CPU负载过高: %.1f%% (上限 %.0f%%)", percents[0], MaxCPULoad)
	}

	return true, ""
}

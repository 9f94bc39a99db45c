// Package process 提供进程查找功能，用于按可执行文件名定位游戏进程
package process

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// FindProcess 按名称查找进程 (不区分大小写，忽略 .exe 后缀)
func FindProcess(name string) ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	var matches []ProcessInfo
	for _, proc := range procs {
		procName, err := proc.Name()
		if err != nil || !MatchName(procName, name) {
			continue
		}

		exe, _ := proc.Exe()
		matches = append(matches, ProcessInfo{
			PID:  int(proc.Pid),
			Name: procName,
			Path: exe,
		})
	}

	return matches, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}

// MatchName 判断进程名是否与目标名称一致
func MatchName(procName, want string) bool {
	if want == "" {
		return false
	}
	normalize := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".exe")
	}
	return normalize(procName) == normalize(want)
}

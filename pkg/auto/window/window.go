// Package window 提供窗口查找与激活功能
package window

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/process"
)

// WindowInfo 窗口信息
type WindowInfo struct {
	PID       int             `json:"pid"`
	Title     string          `json:"title"`
	OwnerName string          `json:"owner_name"`
	Bounds    image.Rectangle `json:"bounds"`
}

// activateSettle 激活窗口后等待前台切换完成
const activateSettle = 100 * time.Millisecond

// GetWindows 获取所有带标题的顶层窗口
func GetWindows() ([]WindowInfo, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	var windows []WindowInfo
	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}
		windows = append(windows, describe(pid, title))
	}
	return windows, nil
}

func describe(pid int, title string) WindowInfo {
	name, _ := robotgo.FindName(pid)
	x, y, w, h := robotgo.GetBounds(pid)
	return WindowInfo{
		PID:       pid,
		Title:     title,
		OwnerName: name,
		Bounds:    image.Rect(x, y, x+w, y+h),
	}
}

// Match 按优先级在窗口列表中选出目标窗口：
// 标题完全一致 > 标题包含 > 进程名一致。均不区分大小写
func Match(windows []WindowInfo, title, processName string) *WindowInfo {
	want := strings.ToLower(strings.TrimSpace(title))

	if want != "" {
		for i := range windows {
			if strings.ToLower(windows[i].Title) == want {
				return &windows[i]
			}
		}
		for i := range windows {
			if strings.Contains(strings.ToLower(windows[i].Title), want) {
				return &windows[i]
			}
		}
	}

	for i := range windows {
		if process.MatchName(windows[i].OwnerName, processName) {
			return &windows[i]
		}
	}
	return nil
}

// Find 查找游戏窗口，找不到标题时回退到按进程名查找
func Find(title, processName string) (*WindowInfo, error) {
	windows, err := GetWindows()
	if err != nil {
		return nil, err
	}

	if w := Match(windows, title, processName); w != nil {
		return w, nil
	}

	if processName != "" {
		procs, err := process.FindProcess(processName)
		if err != nil {
			return nil, err
		}
		if p := firstRunning(procs, process.IsProcessRunning); p != nil {
			logger.Info("按进程名找到游戏: %s (PID=%d, %s)", p.Name, p.PID, p.Path)
			info := describe(p.PID, robotgo.GetTitle(p.PID))
			info.OwnerName = p.Name
			return &info, nil
		}
	}

	return nil, fmt.Errorf("未找到窗口: title=%q process=%q", title, processName)
}

// Focus 查找并激活游戏窗口，成功返回 true
func Focus(title, processName string) bool {
	startTime := time.Now()

	w, err := Find(title, processName)
	if err != nil {
		logger.LogEvent("Window", false, float64(time.Since(startTime).Milliseconds()), err.Error())
		return false
	}

	if err := robotgo.ActivePid(w.PID); err != nil {
		logger.LogEvent("Window", false, float64(time.Since(startTime).Milliseconds()),
			fmt.Sprintf("激活窗口失败: %v", err))
		return false
	}
	time.Sleep(activateSettle)

	if err := ensureForeground(w,
		func() string { return robotgo.GetTitle() },
		func(pid int) error { return robotgo.ActivePid(pid) }); err != nil {
		logger.Warn("再次激活窗口失败: %v", err)
	}

	logger.LogEvent("Window", true, float64(time.Since(startTime).Milliseconds()),
		fmt.Sprintf("已激活窗口: %s (PID=%d)", w.Title, w.PID))
	return true
}

// firstRunning 返回第一个仍在运行的进程
func firstRunning(procs []process.ProcessInfo, running func(pid int) bool) *process.ProcessInfo {
	for i := range procs {
		if running(procs[i].PID) {
			return &procs[i]
		}
	}
	return nil
}

// ensureForeground 部分平台首次激活只会闪烁任务栏，前台标题不一致时再激活一次
func ensureForeground(w *WindowInfo, activeTitle func() string, activate func(pid int) error) error {
	if w.Title == "" || strings.EqualFold(activeTitle(), w.Title) {
		return nil
	}
	if err := activate(w.PID); err != nil {
		return fmt.Errorf("PID=%d: %w", w.PID, err)
	}
	return nil
}

// GetActiveWindowTitle 获取当前活动窗口标题
func GetActiveWindowTitle() string {
	return robotgo.GetTitle()
}

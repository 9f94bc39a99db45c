package window

import (
	"errors"
	"testing"

	"github.com/zoeyai/relicscan/pkg/process"
)

func TestMatch(t *testing.T) {
	windows := []WindowInfo{
		{PID: 1, Title: "Honkai: Star Rail Launcher", OwnerName: "launcher.exe"},
		{PID: 2, Title: "Honkai: Star Rail", OwnerName: "StarRail.exe"},
		{PID: 3, Title: "", OwnerName: "StarRail.exe"},
		{PID: 4, Title: "notes - honkai ideas", OwnerName: "notepad.exe"},
	}

	tests := []struct {
		name, title, process string
		wantPID              int
	}{
		{"标题完全一致优先", "honkai: star rail", "", 2},
		{"标题包含", "ideas", "", 4},
		{"进程名回退", "Genshin Impact", "starrail", 2},
		{"都不匹配", "Genshin Impact", "yuanshen.exe", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(windows, tt.title, tt.process)
			if tt.wantPID == 0 {
				if got != nil {
					t.Errorf("不应匹配, 实际 %+v", got)
				}
				return
			}
			if got == nil || got.PID != tt.wantPID {
				t.Errorf("匹配结果 = %+v, 期望 PID %d", got, tt.wantPID)
			}
		})
	}
}

func TestFirstRunning(t *testing.T) {
	procs := []process.ProcessInfo{
		{PID: 10, Name: "StarRail.exe"},
		{PID: 11, Name: "StarRail.exe", Path: `C:\Games\StarRail.exe`},
	}

	got := firstRunning(procs, func(pid int) bool { return pid == 11 })
	if got == nil || got.PID != 11 || got.Path == "" {
		t.Errorf("firstRunning = %+v, 期望 PID 11", got)
	}
	if got := firstRunning(procs, func(int) bool { return false }); got != nil {
		t.Errorf("没有运行中的进程时应返回 nil, 实际 %+v", got)
	}
}

func TestEnsureForeground(t *testing.T) {
	w := &WindowInfo{PID: 2, Title: "Honkai: Star Rail"}
	errActivate := errors.New("activate failed")

	calls := 0
	activate := func(pid int) error {
		calls++
		if pid != 2 {
			t.Errorf("激活 PID = %d, 期望 2", pid)
		}
		return errActivate
	}

	if err := ensureForeground(w, func() string { return "honkai: star rail" }, activate); err != nil || calls != 0 {
		t.Errorf("已在前台时不应再激活: err=%v calls=%d", err, calls)
	}

	err := ensureForeground(w, func() string { return "Desktop" }, activate)
	if !errors.Is(err, errActivate) || calls != 1 {
		t.Errorf("再次激活失败应返回错误: err=%v calls=%d", err, calls)
	}

	if err := ensureForeground(&WindowInfo{PID: 3}, func() string { return "Desktop" }, activate); err != nil || calls != 1 {
		t.Errorf("无标题窗口不应再激活: err=%v calls=%d", err, calls)
	}
}

// TestGetWindows 需要桌面环境
func TestGetWindows(t *testing.T) {
	windows, err := GetWindows()
	if err != nil {
		t.Skipf("获取窗口列表失败: %v", err)
	}
	t.Logf("找到 %d 个窗口", len(windows))
}

// Package permissions 检查扫描所需的系统权限。只有 macOS 需要单独授权
package permissions

import "strings"

// Status 权限状态
type Status struct {
	// Accessibility 辅助功能，自动翻页按键需要
	Accessibility bool `json:"accessibility"`
	// ScreenRecording 屏幕录制，截图需要
	ScreenRecording bool `json:"screen_recording"`
}

// Check 检查当前进程的权限（不触发系统弹窗）
func Check() Status {
	return check()
}

// Missing 返回扫描缺少的权限说明。needKeyboard 为 false 时不要求辅助功能权限
func (s Status) Missing(needKeyboard bool) []string {
	var missing []string
	if !s.ScreenRecording {
		missing = append(missing, "屏幕录制 (系统设置 > 隐私与安全性 > 屏幕录制)")
	}
	if needKeyboard && !s.Accessibility {
		missing = append(missing, "辅助功能 (系统设置 > 隐私与安全性 > 辅助功能)")
	}
	return missing
}

// Instructions 缺少权限时的提示，不缺少时返回空字符串
func (s Status) Instructions(needKeyboard bool) string {
	missing := s.Missing(needKeyboard)
	if len(missing) == 0 {
		return ""
	}
	return "需要授权以下权限，授权后重启终端生效:\n  " + strings.Join(missing, "\n  ")
}

// OpenSettings 打开缺少的权限对应的系统设置页面
func (s Status) OpenSettings(needKeyboard bool) {
	if !s.ScreenRecording {
		openSettings(paneScreenCapture)
	}
	if needKeyboard && !s.Accessibility {
		openSettings(paneAccessibility)
	}
}

const (
	paneScreenCapture = "Privacy_ScreenCapture"
	paneAccessibility = "Privacy_Accessibility"
)

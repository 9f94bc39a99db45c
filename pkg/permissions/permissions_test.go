package permissions

import (
	"strings"
	"testing"
)

func TestMissing(t *testing.T) {
	tests := []struct {
		name         string
		status       Status
		needKeyboard bool
		want         int
	}{
		{"全部授权", Status{Accessibility: true, ScreenRecording: true}, true, 0},
		{"不按键时忽略辅助功能", Status{ScreenRecording: true}, false, 0},
		{"按键时需要辅助功能", Status{ScreenRecording: true}, true, 1},
		{"都缺少", Status{}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Missing(tt.needKeyboard); len(got) != tt.want {
				t.Errorf("Missing = %v, 期望 %d 项", got, tt.want)
			}
		})
	}
}

func TestInstructions(t *testing.T) {
	if got := (Status{Accessibility: true, ScreenRecording: true}).Instructions(true); got != "" {
		t.Errorf("全部授权时提示应为空, 实际 %q", got)
	}
	if got := (Status{}).Instructions(false); !strings.Contains(got, "屏幕录制") {
		t.Errorf("提示 = %q", got)
	}
}

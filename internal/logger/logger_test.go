package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"", INFO},
		{"verbose", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, 期望 %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.SetLevel(WARN)

	l.Info("不应输出")
	l.Warn("应该输出 %d", 1)

	out := buf.String()
	if strings.Contains(out, "不应输出") {
		t.Errorf("INFO 日志在 WARN 级别下不应输出: %s", out)
	}
	if !strings.Contains(out, "应该输出 1") {
		t.Errorf("WARN 日志缺失: %s", out)
	}
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.LogEvent("OCR", false, 12.5, "识别失败")

	out := buf.String()
	for _, want := range []string{"OCR", "NG", "识别失败"} {
		if !strings.Contains(out, want) {
			t.Errorf("事件日志缺少 %q: %s", want, out)
		}
	}
}

func TestSetFile(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	path := filepath.Join(t.TempDir(), "scan.log")
	if err := l.SetFile(path); err != nil {
		t.Fatalf("设置日志文件失败: %v", err)
	}
	l.Info("写入文件")
	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "写入文件") {
		t.Errorf("日志文件内容缺失: %s", data)
	}
}

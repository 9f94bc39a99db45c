package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zoeyai/relicscan/pkg/config"
	"github.com/zoeyai/relicscan/pkg/relic"
	"github.com/zoeyai/relicscan/pkg/scanner"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("执行失败: %v", err)
	}
	if !strings.Contains(out, "relicscan v"+Version) {
		t.Errorf("输出 = %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("capture:\n  max_iterations: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("执行失败: %v", err)
	}
	if !strings.Contains(out, "max_iterations: 42") {
		t.Errorf("输出缺少 max_iterations:\n%s", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: csv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", path, "config", "show"); err == nil {
		t.Error("配置不合法时应返回错误")
	}
}

func TestWriteOutput(t *testing.T) {
	relics := []relic.Relic{
		relic.New("Poet's Dill Wreath", relic.Poet, relic.Head, relic.NewStat(relic.HP, 705), nil),
	}

	var buf bytes.Buffer
	if err := writeOutput(&buf, config.OutputConfig{Format: "json"}, relics); err != nil {
		t.Fatalf("输出失败: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "Poet's Dill Wreath"`) {
		t.Errorf("输出 = %s", buf.String())
	}

	if err := writeOutput(&buf, config.OutputConfig{Format: "xlsx"}, relics); err == nil {
		t.Error("xlsx 输出到标准输出应返回错误")
	}

	path := filepath.Join(t.TempDir(), "relics.yaml")
	if err := writeOutput(&buf, config.OutputConfig{Format: "json", Path: path}, relics); err != nil {
		t.Fatalf("写文件失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "slot: HEAD") {
		t.Errorf("按扩展名应输出 YAML, 实际 %q %v", data, err)
	}
}

func TestNewSettler(t *testing.T) {
	c := config.Default().Capture
	if _, ok := newSettler(c).(scanner.FixedDelay); !ok {
		t.Error("未设置稳定阈值时应使用固定等待")
	}

	c.StabilityThreshold = 0.02
	s, ok := newSettler(c).(scanner.StableFrames)
	if !ok {
		t.Fatal("设置稳定阈值时应使用稳定检测")
	}
	if s.Delay != 2*time.Second || s.Threshold != 0.02 || s.Capture == nil {
		t.Errorf("稳定检测配置 = %+v", s)
	}
}

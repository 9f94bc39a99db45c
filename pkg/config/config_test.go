package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Game.WindowTitle != "Honkai: Star Rail" {
		t.Errorf("默认窗口标题 = %q", cfg.Game.WindowTitle)
	}
	if cfg.Capture.Delay != 2*time.Second {
		t.Errorf("默认等待 = %v", cfg.Capture.Delay)
	}
	if cfg.Data.SetsPath() != filepath.Join("data", "relic_sets.json") {
		t.Errorf("套装表路径 = %s", cfg.Data.SetsPath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("默认配置应合法: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "sets.json")
	d := DataConfig{Dir: "data", SetsFile: abs, RelicsFile: "relics.json"}

	if d.SetsPath() != abs {
		t.Errorf("绝对路径不应拼接目录: %s", d.SetsPath())
	}
	if d.RelicsPath() != filepath.Join("data", "relics.json") {
		t.Errorf("相对路径 = %s", d.RelicsPath())
	}

	d.Dir = ""
	if d.RelicsPath() != "relics.json" {
		t.Errorf("目录为空时 = %s", d.RelicsPath())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"窗口标题和进程名都为空", func(c *Config) { c.Game = GameConfig{} }},
		{"未知 OCR 引擎", func(c *Config) { c.OCR.Engine = "easyocr" }},
		{"几何配置不合法", func(c *Config) { c.Geometry.StatLines = 0 }},
		{"负数等待", func(c *Config) { c.Capture.Delay = -time.Second }},
		{"负数次数", func(c *Config) { c.Capture.MaxIterations = -1 }},
		{"稳定阈值超出范围", func(c *Config) { c.Capture.StabilityThreshold = 2 }},
		{"稳定检测间隔为 0", func(c *Config) {
			c.Capture.StabilityThreshold = 0.01
			c.Capture.StabilityInterval = 0
		}},
		{"未知输出格式", func(c *Config) { c.Output.Format = "csv" }},
		{"数据文件名为空", func(c *Config) { c.Data.RelicsFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("错误 = %v, 期望 ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	convey.Convey("Given the config loader", t, func() {
		convey.Convey("When loading without a file", func() {
			cfg, err := Load("")

			convey.Convey("Then the defaults are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Capture.Delay, convey.ShouldEqual, 2*time.Second)
				convey.So(cfg.Geometry.CropWidth, convey.ShouldEqual, 600)
			})
		})

		convey.Convey("When loading a partial YAML file", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := strings.Join([]string{
				"capture:",
				"  delay: 1500ms",
				"  advance_key: d",
				"geometry:",
				"  crop_width: 640",
				"output:",
				"  format: xlsx",
			}, "\n")
			convey.So(os.WriteFile(path, []byte(content), 0644), convey.ShouldBeNil)

			cfg, err := Load(path)

			convey.Convey("Then the file overrides only what it names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Capture.Delay, convey.ShouldEqual, 1500*time.Millisecond)
				convey.So(cfg.Capture.AdvanceKey, convey.ShouldEqual, "d")
				convey.So(cfg.Geometry.CropWidth, convey.ShouldEqual, 640)
				convey.So(cfg.Geometry.CropHeight, convey.ShouldEqual, 550)
				convey.So(cfg.Output.Format, convey.ShouldEqual, "xlsx")
				convey.So(cfg.Game.WindowTitle, convey.ShouldEqual, "Honkai: Star Rail")
			})
		})

		convey.Convey("When environment variables are set", func() {
			t.Setenv("RELICSCAN_CAPTURE__MAX_ITERATIONS", "50")
			t.Setenv("RELICSCAN_OCR__ENGINE", "tesseract")
			t.Setenv("RELICSCAN_LOG__LEVEL", "debug")

			cfg, err := Load("")

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Capture.MaxIterations, convey.ShouldEqual, 50)
				convey.So(cfg.OCR.Engine, convey.ShouldEqual, "tesseract")
				convey.So(cfg.Log.Level, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the file produces an invalid config", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(path, []byte("output:\n  format: csv\n"), 0644), convey.ShouldBeNil)

			_, err := Load(path)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestManagerSaveAndLoad(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("加载默认配置失败: %v", err)
	}

	cfg.Capture.MaxIterations = 300
	cfg.Capture.StabilityThreshold = 0.02
	cfg.Output.Path = "relics.json"
	if err := manager.Save(cfg); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if loaded.Capture.MaxIterations != 300 || loaded.Capture.StabilityThreshold != 0.02 {
		t.Errorf("加载的 capture = %+v", loaded.Capture)
	}
	if loaded.Capture.Delay != cfg.Capture.Delay {
		t.Errorf("等待时间 = %v, 期望 %v", loaded.Capture.Delay, cfg.Capture.Delay)
	}
	if loaded.Output.Path != "relics.json" {
		t.Errorf("输出路径 = %q", loaded.Output.Path)
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}
	if err := manager.Clear(); err != nil {
		t.Errorf("重复清除不应报错: %v", err)
	}
}

// Package config 定义 relicscan 的配置结构，以及配置文件的加载与保存
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/zoeyai/relicscan/pkg/export"
	"github.com/zoeyai/relicscan/pkg/vision/ocr"
	"github.com/zoeyai/relicscan/pkg/vision/region"
)

// ErrInvalidConfig 配置不合法
var ErrInvalidConfig = errors.New("配置不合法")

// Config 完整配置
type Config struct {
	Game     GameConfig      `koanf:"game" yaml:"game"`
	Data     DataConfig      `koanf:"data" yaml:"data"`
	OCR      ocr.Config      `koanf:"ocr" yaml:"ocr"`
	Geometry region.Geometry `koanf:"geometry" yaml:"geometry"`
	Capture  CaptureConfig   `koanf:"capture" yaml:"capture"`
	Output   OutputConfig    `koanf:"output" yaml:"output"`
	Log      LogConfig       `koanf:"log" yaml:"log"`
}

// GameConfig 游戏窗口
type GameConfig struct {
	// WindowTitle 窗口标题，优先完全匹配
	WindowTitle string `koanf:"window_title" yaml:"window_title"`
	// ProcessName 找不到标题时按进程名查找
	ProcessName string `koanf:"process_name" yaml:"process_name"`
}

// DataConfig 数据文件，相对路径基于 Dir
type DataConfig struct {
	Dir            string `koanf:"dir" yaml:"dir"`
	SetsFile       string `koanf:"sets_file" yaml:"sets_file"`
	RelicsFile     string `koanf:"relics_file" yaml:"relics_file"`
	AnchorTemplate string `koanf:"anchor_template" yaml:"anchor_template"`
}

// CaptureConfig 扫描循环
type CaptureConfig struct {
	// Delay 每次截图前的固定等待
	Delay time.Duration `koanf:"delay" yaml:"delay"`
	// FocusDelay 激活窗口后的等待
	FocusDelay time.Duration `koanf:"focus_delay" yaml:"focus_delay"`
	// MaxIterations 最多截图次数，0 不限制
	MaxIterations int `koanf:"max_iterations" yaml:"max_iterations"`
	// AdvanceKey 每次截图前按下的按键，例如 "d" 或 "ctrl+right"，为空不按键
	AdvanceKey string `koanf:"advance_key" yaml:"advance_key"`
	// StabilityThreshold 大于 0 时启用画面稳定检测 (0-1)
	StabilityThreshold float64       `koanf:"stability_threshold" yaml:"stability_threshold"`
	StabilityTimeout   time.Duration `koanf:"stability_timeout" yaml:"stability_timeout"`
	StabilityInterval  time.Duration `koanf:"stability_interval" yaml:"stability_interval"`
}

// OutputConfig 输出
type OutputConfig struct {
	// Format json / yaml / xlsx
	Format string `koanf:"format" yaml:"format"`
	// Path 输出文件，为空时写到标准输出
	Path string `koanf:"path" yaml:"path"`
	// DebugDir 不为空时保存每次截图切出的区域
	DebugDir string `koanf:"debug_dir" yaml:"debug_dir"`
	// MetricsFile 不为空时在会话结束后写入 Prometheus textfile
	MetricsFile string `koanf:"metrics_file" yaml:"metrics_file"`
}

// LogConfig 日志
type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			WindowTitle: "Honkai: Star Rail",
			ProcessName: "StarRail.exe",
		},
		Data: DataConfig{
			Dir:            "data",
			SetsFile:       "relic_sets.json",
			RelicsFile:     "relics.json",
			AnchorTemplate: "inventoryposition.png",
		},
		OCR:      ocr.DefaultConfig(),
		Geometry: region.DefaultGeometry(),
		Capture: CaptureConfig{
			Delay:             2 * time.Second,
			FocusDelay:        500 * time.Millisecond,
			StabilityTimeout:  3 * time.Second,
			StabilityInterval: 200 * time.Millisecond,
		},
		Output: OutputConfig{
			Format: string(export.FormatJSON),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetsPath 套装表路径
func (d DataConfig) SetsPath() string {
	return d.resolve(d.SetsFile)
}

// RelicsPath 遗器表路径
func (d DataConfig) RelicsPath() string {
	return d.resolve(d.RelicsFile)
}

// AnchorPath 锚点模板路径
func (d DataConfig) AnchorPath() string {
	return d.resolve(d.AnchorTemplate)
}

func (d DataConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || d.Dir == "" {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Game.WindowTitle == "" && c.Game.ProcessName == "" {
		return fmt.Errorf("%w: game.window_title 和 game.process_name 不能同时为空", ErrInvalidConfig)
	}
	if c.Data.SetsFile == "" || c.Data.RelicsFile == "" || c.Data.AnchorTemplate == "" {
		return fmt.Errorf("%w: data 中的文件名不能为空", ErrInvalidConfig)
	}

	switch c.OCR.Normalize().Engine {
	case ocr.EnginePaddle, ocr.EngineTesseract:
	default:
		return fmt.Errorf("%w: ocr.engine 不支持 %q", ErrInvalidConfig, c.OCR.Engine)
	}

	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("%w: geometry: %v", ErrInvalidConfig, err)
	}

	switch {
	case c.Capture.Delay < 0 || c.Capture.FocusDelay < 0:
		return fmt.Errorf("%w: capture 等待时间不能为负数", ErrInvalidConfig)
	case c.Capture.MaxIterations < 0:
		return fmt.Errorf("%w: capture.max_iterations 不能为负数", ErrInvalidConfig)
	case c.Capture.StabilityThreshold < 0 || c.Capture.StabilityThreshold > 1:
		return fmt.Errorf("%w: capture.stability_threshold 必须在 0-1 之间", ErrInvalidConfig)
	case c.Capture.StabilityThreshold > 0 && c.Capture.StabilityInterval <= 0:
		return fmt.Errorf("%w: capture.stability_interval 必须大于 0", ErrInvalidConfig)
	}

	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	return nil
}

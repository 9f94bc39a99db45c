// Package vision 组合锚点定位与文字识别，扫描和离线解析共用同一套资源
//
// 基本用法:
//
//	kit, err := vision.Open("data/inventoryposition.png", ocr.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer kit.Close()
//
//	reader := kit.Reader(region.DefaultGeometry(), table)
//	r, err := reader.Read(screenshot)
package vision

import (
	"fmt"
	"time"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/scanner"
	"github.com/zoeyai/relicscan/pkg/vision/cv"
	"github.com/zoeyai/relicscan/pkg/vision/ocr"
	"github.com/zoeyai/relicscan/pkg/vision/region"
)

// Toolkit 一次会话使用的锚点模板和识别引擎
type Toolkit struct {
	Locator    *cv.Locator
	Recognizer ocr.Recognizer
}

// Open 加载锚点模板并创建识别引擎
func Open(anchorPath string, config ocr.Config) (*Toolkit, error) {
	startTime := time.Now()

	locator, err := cv.LoadLocator(anchorPath)
	if err != nil {
		return nil, fmt.Errorf("加载锚点模板失败: %w", err)
	}

	rec, err := ocr.New(config)
	if err != nil {
		locator.Close()
		return nil, fmt.Errorf("初始化 OCR 失败: %w", err)
	}

	size := locator.Size()
	logger.Debug("视觉资源已加载: 模板 %dx%d, 引擎 %s, 耗时 %v",
		size.X, size.Y, config.Normalize().Engine, time.Since(startTime).Round(time.Millisecond))
	return &Toolkit{Locator: locator, Recognizer: rec}, nil
}

// Reader 基于当前资源创建读取器
func (t *Toolkit) Reader(geometry region.Geometry, table names.Table, opts ...scanner.ReaderOption) *scanner.Reader {
	return scanner.NewReader(t.Locator, geometry, t.Recognizer, table, opts...)
}

// Close 释放识别引擎和模板
func (t *Toolkit) Close() error {
	err := t.Recognizer.Close()
	t.Locator.Close()
	return err
}

package scanner

import (
	"fmt"
	"image"
	"time"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/debugdump"
	"github.com/zoeyai/relicscan/pkg/metrics"
	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/relic"
	"github.com/zoeyai/relicscan/pkg/vision/ocr"
	"github.com/zoeyai/relicscan/pkg/vision/region"
)

// Locator 在全屏截图中定位锚点
type Locator interface {
	Locate(full image.Image) (image.Point, error)
}

// Reader 从一张全屏截图中读出一件遗器
//
// 锚点只在第一次读取时定位，之后的截图复用同一位置，截图尺寸变化时重新定位。
type Reader struct {
	locator  Locator
	geometry region.Geometry
	rec      ocr.Recognizer
	table    names.Table
	metrics  *metrics.Recorder
	dump     *debugdump.Writer

	layout *region.Layout
	size   image.Point
	anchor *image.Point
	reads  int
}

// ReaderOption 读取器选项
type ReaderOption func(*Reader)

// WithReaderMetrics 记录 OCR 耗时、解析成功/失败次数
func WithReaderMetrics(m *metrics.Recorder) ReaderOption {
	return func(r *Reader) {
		r.metrics = m
	}
}

// WithDebugDump 保存每次截图切出的区域
func WithDebugDump(w *debugdump.Writer) ReaderOption {
	return func(r *Reader) {
		r.dump = w
	}
}

// NewReader 创建读取器。识别器由调用方持有并负责关闭
func NewReader(locator Locator, geometry region.Geometry, rec ocr.Recognizer, table names.Table, opts ...ReaderOption) *Reader {
	r := &Reader{
		locator:  locator,
		geometry: geometry,
		rec:      rec,
		table:    table,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset 清除缓存的锚点和布局，下次读取时重新定位
func (r *Reader) Reset() {
	r.layout = nil
	r.anchor = nil
	r.size = image.Point{}
}

// Anchor 当前锚点，尚未定位时返回 false
func (r *Reader) Anchor() (image.Point, bool) {
	if r.anchor == nil {
		return image.Point{}, false
	}
	return *r.anchor, true
}

// Read 读取截图中的遗器
func (r *Reader) Read(full image.Image) (relic.Relic, error) {
	reading, err := r.Recognize(full)
	if err != nil {
		r.metrics.CaptureFailed()
		return relic.Relic{}, err
	}

	rel, dropped, err := Assemble(*reading, r.table)
	r.metrics.SubStatsDropped(dropped)
	if err != nil {
		r.metrics.CaptureFailed()
		return relic.Relic{}, err
	}

	r.metrics.CaptureParsed()
	logger.Debug("解析遗器: %s %v %v 主属性 %v 副属性 %v", rel.Name, rel.Set, rel.Slot, rel.MainStat, rel.SubStats)
	return rel, nil
}

// Recognize 定位、切分并识别截图中的文字，不做解析
func (r *Reader) Recognize(full image.Image) (*Reading, error) {
	if err := r.prepare(full); err != nil {
		return nil, err
	}

	bands, err := r.layout.Slice(full, *r.anchor)
	if err != nil {
		return nil, err
	}
	r.reads++

	info, err := r.extract(bands.Info)
	if err != nil {
		return nil, fmt.Errorf("识别信息区域失败: %w", err)
	}

	reading := &Reading{Info: info}
	statLines := make([][]string, len(bands.StatLines))
	for i, strip := range bands.StatLines {
		lines, err := r.extract(strip)
		if err != nil {
			return nil, fmt.Errorf("识别第 %d 行属性失败: %w", i+1, err)
		}
		statLines[i] = lines
		reading.Stats = append(reading.Stats, first(lines))
	}

	setLines, err := r.extract(bands.Set)
	if err != nil {
		return nil, fmt.Errorf("识别套装区域失败: %w", err)
	}
	reading.Set = first(setLines)

	if r.dump != nil {
		dumpBands := []debugdump.Band{{Name: "info", Image: bands.Info, Lines: info}}
		for i, strip := range bands.StatLines {
			dumpBands = append(dumpBands, debugdump.Band{Name: fmt.Sprintf("stat%d", i), Image: strip, Lines: statLines[i]})
		}
		dumpBands = append(dumpBands, debugdump.Band{Name: "set", Image: bands.Set, Lines: setLines})
		if err := r.dump.Dump(r.reads, dumpBands); err != nil {
			logger.Warn("保存调试图片失败: %v", err)
		}
	}

	return reading, nil
}

// prepare 按截图尺寸解析布局并定位锚点
func (r *Reader) prepare(full image.Image) error {
	size := full.Bounds().Size()
	if r.layout != nil && r.anchor != nil && size == r.size {
		return nil
	}

	layout, err := r.geometry.Resolve(full.Bounds())
	if err != nil {
		return err
	}

	startTime := time.Now()
	anchor, err := r.locator.Locate(full)
	elapsed := float64(time.Since(startTime).Milliseconds())
	if err != nil {
		logger.LogEvent("Anchor", false, elapsed, err.Error())
		return fmt.Errorf("定位锚点失败: %w", err)
	}
	logger.LogEvent("Anchor", true, elapsed, fmt.Sprintf("锚点位置 (%d, %d)", anchor.X, anchor.Y))

	r.layout = layout
	r.size = size
	r.anchor = &anchor
	return nil
}

func (r *Reader) extract(img image.Image) ([]string, error) {
	startTime := time.Now()
	lines, err := ocr.ExtractLines(r.rec, img)
	r.metrics.ObserveOCR(time.Since(startTime))
	return lines, err
}

func first(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

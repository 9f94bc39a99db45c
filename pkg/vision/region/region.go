// Package region 根据锚点位置从全屏截图中切出遗器详情的各个区域
//
// 所有偏移和尺寸都来自 Geometry 配置，启动时经 Resolve 与实际截图尺寸校验后
// 得到只读的 Layout，之后每次截图都复用同一个 Layout。
//
//	┌──────────── crop ────────────┐
//	│ info band (名称 / 部位)      │ infoHeight
//	├──────────────────────────────┤ + statOffsetY
//	│      stat line 0 (主属性)    │
//	│      stat line 1..4 (副属性) │ statAreaHeight = lines * lineHeight (+ 余数)
//	├──────────────────────────────┤
//	│ set band (套装)              │ bottomMargin
//	└──────────────────────────────┘
package region

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidGeometry 几何配置不合法
	ErrInvalidGeometry = errors.New("区域几何配置不合法")
	// ErrCropOutOfBounds 裁剪区域超出截图范围
	ErrCropOutOfBounds = errors.New("裁剪区域超出截图范围")
)

// Geometry 区域几何配置（像素，基于参考分辨率）
type Geometry struct {
	// ReferenceWidth 参考窗口宽度，裁剪区域贴着窗口右侧
	ReferenceWidth int `koanf:"reference_width" yaml:"reference_width"`
	// ReferenceHeight 参考窗口高度
	ReferenceHeight int `koanf:"reference_height" yaml:"reference_height"`
	// CropWidth / CropHeight 遗器详情区域尺寸
	CropWidth  int `koanf:"crop_width" yaml:"crop_width"`
	CropHeight int `koanf:"crop_height" yaml:"crop_height"`
	// CropOffsetY 详情区域相对锚点的纵向偏移
	CropOffsetY int `koanf:"crop_offset_y" yaml:"crop_offset_y"`
	// InfoHeight 顶部名称/部位区域高度
	InfoHeight int `koanf:"info_height" yaml:"info_height"`
	// StatChopLeft 属性区域左侧裁掉的宽度（图标）
	StatChopLeft int `koanf:"stat_chop_left" yaml:"stat_chop_left"`
	// StatOffsetY 属性区域相对信息区域底部的偏移
	StatOffsetY int `koanf:"stat_offset_y" yaml:"stat_offset_y"`
	// BottomMargin 底部套装区域高度
	BottomMargin int `koanf:"bottom_margin" yaml:"bottom_margin"`
	// StatLines 属性行数（主属性 + 最多 4 条副属性）
	StatLines int `koanf:"stat_lines" yaml:"stat_lines"`
	// ScaleToCapture 截图宽度与参考宽度不同时按比例缩放所有尺寸
	ScaleToCapture bool `koanf:"scale_to_capture" yaml:"scale_to_capture"`
}

// DefaultGeometry 1920x1080 下的默认几何配置
func DefaultGeometry() Geometry {
	return Geometry{
		ReferenceWidth:  1920,
		ReferenceHeight: 1080,
		CropWidth:       600,
		CropHeight:      550,
		CropOffsetY:     75,
		InfoHeight:      275,
		StatChopLeft:    75,
		StatOffsetY:     15,
		BottomMargin:    50,
		StatLines:       5,
	}
}

// StatAreaHeight 属性区域总高度
func (g Geometry) StatAreaHeight() int {
	return g.CropHeight - g.InfoHeight - g.BottomMargin - g.StatOffsetY
}

// Validate 校验几何配置自身是否一致
func (g Geometry) Validate() error {
	switch {
	case g.ReferenceWidth <= 0 || g.ReferenceHeight <= 0:
		return fmt.Errorf("%w: 参考分辨率必须大于 0", ErrInvalidGeometry)
	case g.CropWidth <= 0 || g.CropHeight <= 0:
		return fmt.Errorf("%w: 裁剪尺寸必须大于 0", ErrInvalidGeometry)
	case g.CropWidth > g.ReferenceWidth:
		return fmt.Errorf("%w: 裁剪宽度 %d 超过参考宽度 %d", ErrInvalidGeometry, g.CropWidth, g.ReferenceWidth)
	case g.InfoHeight <= 0 || g.BottomMargin <= 0:
		return fmt.Errorf("%w: 信息区域和套装区域高度必须大于 0", ErrInvalidGeometry)
	case g.StatChopLeft < 0 || g.StatChopLeft >= g.CropWidth:
		return fmt.Errorf("%w: 属性区域左侧裁剪 %d 不合法", ErrInvalidGeometry, g.StatChopLeft)
	case g.StatOffsetY < 0 || g.CropOffsetY < 0:
		return fmt.Errorf("%w: 偏移不能为负数", ErrInvalidGeometry)
	case g.StatLines <= 0:
		return fmt.Errorf("%w: 属性行数必须大于 0", ErrInvalidGeometry)
	case g.StatAreaHeight() < g.StatLines:
		return fmt.Errorf("%w: 属性区域高度 %d 不足以切分 %d 行", ErrInvalidGeometry, g.StatAreaHeight(), g.StatLines)
	}
	return nil
}

// Scale 按比例缩放所有像素尺寸（行数不变）
func (g Geometry) Scale(factor float64) Geometry {
	s := func(v int) int { return int(math.Round(float64(v) * factor)) }
	return Geometry{
		ReferenceWidth:  s(g.ReferenceWidth),
		ReferenceHeight: s(g.ReferenceHeight),
		CropWidth:       s(g.CropWidth),
		CropHeight:      s(g.CropHeight),
		CropOffsetY:     s(g.CropOffsetY),
		InfoHeight:      s(g.InfoHeight),
		StatChopLeft:    s(g.StatChopLeft),
		StatOffsetY:     s(g.StatOffsetY),
		BottomMargin:    s(g.BottomMargin),
		StatLines:       g.StatLines,
		ScaleToCapture:  g.ScaleToCapture,
	}
}

// Resolve 根据实际截图尺寸得到最终布局
func (g Geometry) Resolve(capture image.Rectangle) (*Layout, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if g.ScaleToCapture && capture.Dx() > 0 && capture.Dx() != g.ReferenceWidth {
		g = g.Scale(float64(capture.Dx()) / float64(g.ReferenceWidth))
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}

	if capture.Dx() < g.CropWidth || capture.Dy() < g.CropHeight {
		return nil, fmt.Errorf("%w: 截图 %dx%d 小于裁剪区域 %dx%d",
			ErrCropOutOfBounds, capture.Dx(), capture.Dy(), g.CropWidth, g.CropHeight)
	}

	return newLayout(g), nil
}

// Layout 解析后的只读布局，所有矩形均相对于裁剪区域左上角
type Layout struct {
	geometry   Geometry
	info       image.Rectangle
	statArea   image.Rectangle
	strips     []image.Rectangle
	set        image.Rectangle
	lineHeight int
}

func newLayout(g Geometry) *Layout {
	statTop := g.InfoHeight + g.StatOffsetY
	statHeight := g.StatAreaHeight()
	lineHeight := statHeight / g.StatLines

	l := &Layout{
		geometry:   g,
		info:       image.Rect(0, 0, g.CropWidth, g.InfoHeight),
		statArea:   image.Rect(g.StatChopLeft, statTop, g.CropWidth, statTop+statHeight),
		set:        image.Rect(0, g.CropHeight-g.BottomMargin, g.CropWidth, g.CropHeight),
		lineHeight: lineHeight,
	}

	for i := 0; i < g.StatLines; i++ {
		y := statTop + i*lineHeight
		l.strips = append(l.strips, image.Rect(g.StatChopLeft, y, g.CropWidth, y+lineHeight))
	}
	return l
}

// Geometry 返回（可能已缩放的）几何配置
func (l *Layout) Geometry() Geometry {
	return l.geometry
}

// LineHeight 单行属性高度
func (l *Layout) LineHeight() int {
	return l.lineHeight
}

// StatArea 属性区域矩形
func (l *Layout) StatArea() image.Rectangle {
	return l.statArea
}

// StripRects 各属性行矩形
func (l *Layout) StripRects() []image.Rectangle {
	out := make([]image.Rectangle, len(l.strips))
	copy(out, l.strips)
	return out
}

// CropRect 锚点对应的详情区域在全屏截图中的位置
func (l *Layout) CropRect(anchor image.Point) image.Rectangle {
	g := l.geometry
	x := anchor.X + g.ReferenceWidth - g.CropWidth
	y := anchor.Y + g.CropOffsetY
	return image.Rect(x, y, x+g.CropWidth, y+g.CropHeight)
}

// Bands 切分出的各区域图像
type Bands struct {
	// Crop 完整详情区域
	Crop image.Image
	// Info 名称 / 部位区域
	Info image.Image
	// StatLines 属性行，每行一张
	StatLines []image.Image
	// Set 套装区域
	Set image.Image
}

// Slice 按锚点切分全屏截图
func (l *Layout) Slice(full image.Image, anchor image.Point) (*Bands, error) {
	bounds := full.Bounds()
	crop := l.CropRect(anchor).Add(bounds.Min)
	if !crop.In(bounds) {
		return nil, fmt.Errorf("%w: 区域 %v 截图 %v", ErrCropOutOfBounds, crop, bounds)
	}

	detail := imaging.Crop(full, crop)

	bands := &Bands{
		Crop: detail,
		Info: imaging.Crop(detail, l.info),
		Set:  imaging.Crop(detail, l.set),
	}
	for _, r := range l.strips {
		bands.StatLines = append(bands.StatLines, imaging.Crop(detail, r))
	}
	return bands, nil
}

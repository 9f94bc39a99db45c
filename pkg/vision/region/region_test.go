package region

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestDefaultGeometryLayout(t *testing.T) {
	layout, err := DefaultGeometry().Resolve(image.Rect(0, 0, 1920, 1080))
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}

	// 550 - 275 - 50 - 15 = 210, 210 / 5 = 42
	if h := layout.StatArea().Dy(); h != 210 {
		t.Errorf("属性区域高度 = %d, 期望 210", h)
	}
	if layout.LineHeight() != 42 {
		t.Errorf("单行高度 = %d, 期望 42", layout.LineHeight())
	}

	strips := layout.StripRects()
	if len(strips) != 5 {
		t.Fatalf("属性行数 = %d, 期望 5", len(strips))
	}
	if strips[0].Min != image.Pt(75, 290) {
		t.Errorf("第一行起点 = %v, 期望 (75,290)", strips[0].Min)
	}
}

func TestStripsEqualHeightWithinStatArea(t *testing.T) {
	geometries := []Geometry{
		DefaultGeometry(),
		func() Geometry { g := DefaultGeometry(); g.CropHeight = 553; return g }(),
		func() Geometry { g := DefaultGeometry(); g.StatLines = 7; return g }(),
		func() Geometry { g := DefaultGeometry(); g.StatOffsetY = 0; g.BottomMargin = 1; return g }(),
	}
	sizes := []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(0, 0, 2560, 1440),
		image.Rect(0, 0, 600, 550),
	}

	for _, g := range geometries {
		for _, size := range sizes {
			layout, err := g.Resolve(size)
			if err != nil {
				t.Fatalf("解析布局失败 %+v %v: %v", g, size, err)
			}

			strips := layout.StripRects()
			total := 0
			for i, s := range strips {
				if s.Dy() != strips[0].Dy() {
					t.Errorf("第 %d 行高度 %d 与第一行 %d 不同", i, s.Dy(), strips[0].Dy())
				}
				if !s.In(layout.StatArea()) {
					t.Errorf("第 %d 行 %v 超出属性区域 %v", i, s, layout.StatArea())
				}
				total += s.Dy()
			}
			if total > g.StatAreaHeight() {
				t.Errorf("属性行总高度 %d 超过属性区域高度 %d", total, g.StatAreaHeight())
			}
		}
	}
}

func TestSliceBands(t *testing.T) {
	full := imaging.New(1920, 1080, color.White)
	layout, err := DefaultGeometry().Resolve(full.Bounds())
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}

	// 锚点位于窗口左上角
	bands, err := layout.Slice(full, image.Pt(0, 0))
	if err != nil {
		t.Fatalf("切分失败: %v", err)
	}

	check := func(name string, img image.Image, w, h int) {
		t.Helper()
		if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
			t.Errorf("%s 尺寸 = %v, 期望 %dx%d", name, img.Bounds().Size(), w, h)
		}
	}
	check("crop", bands.Crop, 600, 550)
	check("info", bands.Info, 600, 275)
	check("set", bands.Set, 600, 50)
	if len(bands.StatLines) != 5 {
		t.Fatalf("属性行数 = %d, 期望 5", len(bands.StatLines))
	}
	for _, line := range bands.StatLines {
		check("stat", line, 525, 42)
	}
}

func TestSliceCropsTheRightPixels(t *testing.T) {
	full := imaging.New(1920, 1080, color.White)
	layout, err := DefaultGeometry().Resolve(full.Bounds())
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}

	anchor := image.Pt(-10, 20)
	crop := layout.CropRect(anchor)
	// 套装区域左上角涂黑
	marker := image.Pt(crop.Min.X, crop.Max.Y-50)
	full.Set(marker.X, marker.Y, color.Black)

	bands, err := layout.Slice(full, anchor)
	if err != nil {
		t.Fatalf("切分失败: %v", err)
	}

	r, g, b, _ := bands.Set.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("套装区域左上角应为黑色, 实际 (%d,%d,%d)", r, g, b)
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	full := imaging.New(1920, 1080, color.White)
	layout, err := DefaultGeometry().Resolve(full.Bounds())
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}

	for _, anchor := range []image.Point{{X: 100, Y: 0}, {X: 0, Y: 600}, {X: -1400, Y: 0}} {
		if _, err := layout.Slice(full, anchor); !errors.Is(err, ErrCropOutOfBounds) {
			t.Errorf("锚点 %v 应返回 ErrCropOutOfBounds, 实际 %v", anchor, err)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	if _, err := DefaultGeometry().Resolve(image.Rect(0, 0, 500, 500)); !errors.Is(err, ErrCropOutOfBounds) {
		t.Errorf("截图过小应返回 ErrCropOutOfBounds, 实际 %v", err)
	}

	bad := DefaultGeometry()
	bad.StatLines = 0
	if _, err := bad.Resolve(image.Rect(0, 0, 1920, 1080)); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("行数为 0 应返回 ErrInvalidGeometry, 实际 %v", err)
	}

	bad = DefaultGeometry()
	bad.InfoHeight = 500
	if err := bad.Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("属性区域为负应返回 ErrInvalidGeometry, 实际 %v", err)
	}
}

func TestResolveScalesToCapture(t *testing.T) {
	g := DefaultGeometry()
	g.ScaleToCapture = true

	layout, err := g.Resolve(image.Rect(0, 0, 2560, 1440))
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}

	scaled := layout.Geometry()
	if scaled.ReferenceWidth != 2560 || scaled.CropWidth != 800 {
		t.Errorf("缩放结果不符: %+v", scaled)
	}
	if scaled.StatLines != 5 {
		t.Errorf("缩放不应改变行数: %d", scaled.StatLines)
	}

	g.ScaleToCapture = false
	layout, err = g.Resolve(image.Rect(0, 0, 2560, 1440))
	if err != nil {
		t.Fatalf("解析布局失败: %v", err)
	}
	if layout.Geometry().CropWidth != 600 {
		t.Errorf("未开启缩放时不应缩放: %+v", layout.Geometry())
	}
}

package vision

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/zoeyai/relicscan/pkg/vision/ocr"
)

func TestOpenMissingTemplate(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png"), ocr.DefaultConfig()); err == nil {
		t.Error("模板不存在时应返回错误")
	}
}

func TestOpenMissingModels(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "anchor.png")
	if err := imaging.Save(imaging.New(24, 24, color.White), template); err != nil {
		t.Fatalf("保存模板失败: %v", err)
	}

	cfg := ocr.Config{
		Engine:             ocr.EnginePaddle,
		OnnxRuntimeLibPath: filepath.Join(dir, "onnxruntime.so"),
		DetModelPath:       filepath.Join(dir, "det.onnx"),
		RecModelPath:       filepath.Join(dir, "rec.onnx"),
		DictPath:           filepath.Join(dir, "dict.txt"),
	}
	if _, err := Open(template, cfg); err == nil {
		t.Error("模型缺失时应返回错误")
	}
}

func TestToolkitReader(t *testing.T) {
	kit, err := Open(filepath.Join("..", "..", "data", "inventoryposition.png"), ocr.DefaultConfig())
	if err != nil {
		t.Skipf("视觉资源不可用: %v", err)
	}
	defer kit.Close()

	if size := kit.Locator.Size(); size == (image.Point{}) {
		t.Error("模板尺寸不应为 0")
	}
}

package ocr

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	goocr "github.com/getcharzp/go-ocr"

	"github.com/zoeyai/relicscan/internal/logger"
)

// ErrRecognizerClosed 识别器已关闭
var ErrRecognizerClosed = errors.New("OCR 识别器已关闭")

// PaddleRecognizer 基于 PaddleOCR (ONNX) 的识别器
type PaddleRecognizer struct {
	engine goocr.Engine
	mu     sync.Mutex
}

// NewPaddleRecognizer 创建 PaddleOCR 识别器
func NewPaddleRecognizer(config Config) (*PaddleRecognizer, error) {
	if missing := config.MissingFiles(); len(missing) > 0 {
		return nil, fmt.Errorf("OCR 模型文件缺失: %v", missing)
	}

	engine, err := goocr.NewPaddleOcrEngine(goocr.Config{
		OnnxRuntimeLibPath: config.OnnxRuntimeLibPath,
		DetModelPath:       config.DetModelPath,
		RecModelPath:       config.RecModelPath,
		DictPath:           config.DictPath,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 OCR 引擎失败: %w", err)
	}

	logger.Info("OCR 引擎初始化成功: paddle")
	return &PaddleRecognizer{engine: engine}, nil
}

// Recognize 识别图像中的所有文字行
func (r *PaddleRecognizer) Recognize(img image.Image) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.engine == nil {
		return nil, ErrRecognizerClosed
	}

	startTime := time.Now()
	results, err := r.engine.RunOCR(img)
	elapsed := float64(time.Since(startTime).Milliseconds())
	if err != nil {
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("OCR 识别失败: %w", err)
	}

	lines := make([]Line, 0, len(results))
	for _, result := range results {
		lines = append(lines, convertResult(result))
	}

	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个文本", len(lines)))
	return lines, nil
}

// Close 释放资源
func (r *PaddleRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.engine != nil {
		r.engine.Destroy()
		r.engine = nil
	}
	return nil
}

// convertResult 转换 go-ocr 结果
func convertResult(result goocr.RecResult) Line {
	// go-ocr RecResult: Box [4]int{x1, y1, x2, y2}, Text string, Score float32
	box := result.Box
	return Line{
		Text:       result.Text,
		Box:        image.Rect(box[0], box[1], box[2], box[3]),
		Confidence: float64(result.Score),
	}
}

// New 按配置中的引擎创建识别器
func New(config Config) (Recognizer, error) {
	config = config.Normalize()
	switch config.Engine {
	case EnginePaddle:
		return NewPaddleRecognizer(config)
	case EngineTesseract:
		return NewTesseractRecognizer(config)
	default:
		return nil, fmt.Errorf("不支持的 OCR 引擎: %s", config.Engine)
	}
}

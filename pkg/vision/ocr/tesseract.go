package ocr

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/vision/cv"
)

// TesseractRecognizer 基于 Tesseract 的识别器，不需要 ONNX 模型
type TesseractRecognizer struct {
	client *gosseract.Client
	mu     sync.Mutex
}

// NewTesseractRecognizer 创建 Tesseract 识别器
func NewTesseractRecognizer(config Config) (*TesseractRecognizer, error) {
	client := gosseract.NewClient()

	if config.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(config.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("设置 tessdata 目录失败: %w", err)
		}
	}
	if err := client.SetLanguage(config.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("设置 OCR 语言失败: %w", err)
	}
	// 游戏界面文字不是词典单词，关闭词典纠正
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	logger.Info("OCR 引擎初始化成功: tesseract (%s)", config.Language)
	return &TesseractRecognizer{client: client}, nil
}

// Recognize 识别图像中的所有文字行
func (r *TesseractRecognizer) Recognize(img image.Image) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil, ErrRecognizerClosed
	}

	startTime := time.Now()

	mat, err := cv.ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("图像编码失败: %w", err)
	}
	defer buf.Close()

	if err := r.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, fmt.Errorf("设置分页模式失败: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("设置图像失败: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	elapsed := float64(time.Since(startTime).Milliseconds())
	if err != nil {
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("OCR 识别失败: %w", err)
	}

	lines := make([]Line, 0, len(boxes))
	for _, box := range boxes {
		lines = append(lines, Line{
			Text:       box.Word,
			Box:        box.Box,
			Confidence: box.Confidence / 100,
		})
	}

	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个文本", len(lines)))
	return lines, nil
}

// Close 释放资源
func (r *TesseractRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

// Package ocr 提供文字识别功能
package ocr

import (
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// 支持的识别引擎
const (
	EnginePaddle    = "paddle"
	EngineTesseract = "tesseract"
)

// Line 一行识别结果
type Line struct {
	// Text 识别的文字内容
	Text string `json:"text"`
	// Box 文字边界框（相对输入图像）
	Box image.Rectangle `json:"box"`
	// Confidence 识别置信度 (0-1)
	Confidence float64 `json:"confidence"`
}

// Recognizer 文字识别器
//
// 实现需要保证 Recognize 可被多次调用，Close 之后不可再使用。
type Recognizer interface {
	Recognize(img image.Image) ([]Line, error)
	Close() error
}

// Config OCR 配置
type Config struct {
	// Engine 识别引擎 (paddle, tesseract)
	Engine string `koanf:"engine" yaml:"engine"`
	// OnnxRuntimeLibPath ONNX Runtime 动态库路径
	OnnxRuntimeLibPath string `koanf:"onnxruntime_lib_path" yaml:"onnxruntime_lib_path"`
	// DetModelPath 检测模型路径
	DetModelPath string `koanf:"det_model_path" yaml:"det_model_path"`
	// RecModelPath 识别模型路径
	RecModelPath string `koanf:"rec_model_path" yaml:"rec_model_path"`
	// DictPath 字典文件路径
	DictPath string `koanf:"dict_path" yaml:"dict_path"`
	// TessdataPrefix Tesseract 语言数据目录
	TessdataPrefix string `koanf:"tessdata_prefix" yaml:"tessdata_prefix"`
	// Language Tesseract 语言 (eng)
	Language string `koanf:"language" yaml:"language"`
}

// DefaultConfig 默认配置，模型路径按可执行文件目录和工作目录查找
func DefaultConfig() Config {
	return Config{
		Engine:             EnginePaddle,
		OnnxRuntimeLibPath: getDefaultOnnxRuntimePath(),
		DetModelPath:       getDefaultModelPath("det.onnx"),
		RecModelPath:       getDefaultModelPath("rec.onnx"),
		DictPath:           getDefaultModelPath("dict.txt"),
		Language:           "eng",
	}
}

// Normalize 统一引擎名称并为空字段补充默认值
func (c Config) Normalize() Config {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Engine == "" {
		c.Engine = EnginePaddle
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	return c
}

// MissingFiles 返回 PaddleOCR 所需但不存在的文件
func (c Config) MissingFiles() []string {
	var missing []string
	for _, p := range []string{c.OnnxRuntimeLibPath, c.DetModelPath, c.RecModelPath, c.DictPath} {
		if !fileExists(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// IsAvailable 检查默认配置下 PaddleOCR 模型文件是否齐全
func IsAvailable() bool {
	return len(DefaultConfig().MissingFiles()) == 0
}

// getExecutableDir 获取可执行文件所在目录
func getExecutableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "."
	}
	return filepath.Dir(execPath)
}

// getDefaultOnnxRuntimePath 获取默认的 ONNX Runtime 库路径
func getDefaultOnnxRuntimePath() string {
	execDir := getExecutableDir()

	var paths []string
	switch runtime.GOOS {
	case "darwin":
		paths = []string{
			filepath.Join(execDir, "libonnxruntime.dylib"),
			filepath.Join(execDir, "models", "lib", "onnxruntime_"+runtime.GOARCH+".dylib"),
			filepath.Join("models", "lib", "onnxruntime_"+runtime.GOARCH+".dylib"),
		}
	case "windows":
		paths = []string{
			filepath.Join(execDir, "onnxruntime.dll"),
			filepath.Join(execDir, "models", "lib", "onnxruntime.dll"),
			filepath.Join("models", "lib", "onnxruntime.dll"),
		}
	default:
		paths = []string{
			filepath.Join(execDir, "libonnxruntime.so"),
			filepath.Join(execDir, "models", "lib", "onnxruntime_"+runtime.GOARCH+".so"),
			filepath.Join("models", "lib", "onnxruntime_"+runtime.GOARCH+".so"),
		}
	}

	for _, p := range paths {
		if fileExists(p) {
			return p
		}
	}
	return paths[len(paths)-1]
}

// getDefaultModelPath 获取默认的模型路径
func getDefaultModelPath(filename string) string {
	paths := []string{
		filepath.Join(getExecutableDir(), "models", "paddle_weights", filename),
		filepath.Join("models", "paddle_weights", filename),
	}

	for _, p := range paths {
		if fileExists(p) {
			return p
		}
	}
	return paths[0]
}

// fileExists 检查文件是否存在
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

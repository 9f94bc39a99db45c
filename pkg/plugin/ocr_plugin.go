// Package plugin 管理可选的 OCR 模型文件：下载、状态检查与卸载
package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/vision/ocr"
)

// HFRepoBase 模型仓库地址
const HFRepoBase = "https://huggingface.co/getcharzp/go-ocr/resolve/main"

var (
	// ErrNotInstalled 模型文件不完整
	ErrNotInstalled = errors.New("OCR 模型未安装")
	// ErrDownloading 已有下载在进行
	ErrDownloading = errors.New("正在下载中")
)

// OCRModels OCR 模型管理器
type OCRModels struct {
	baseDir string
	baseURL string
	client  *http.Client

	mu          sync.RWMutex
	downloading bool
	progress    float64
	onProgress  func(float64)
}

// FileStatus 单个文件状态
type FileStatus struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// Status 模型状态
type Status struct {
	Installed   bool         `json:"installed"`
	Downloading bool         `json:"downloading"`
	Progress    float64      `json:"progress"` // 0-100
	BaseDir     string       `json:"baseDir"`
	Files       []FileStatus `json:"files"`
}

// Option 管理器选项
type Option func(*OCRModels)

// WithBaseDir 设置安装目录
func WithBaseDir(dir string) Option {
	return func(m *OCRModels) {
		m.baseDir = dir
	}
}

// WithBaseURL 设置下载地址
func WithBaseURL(url string) Option {
	return func(m *OCRModels) {
		m.baseURL = url
	}
}

// WithHTTPClient 设置下载使用的 HTTP 客户端
func WithHTTPClient(client *http.Client) Option {
	return func(m *OCRModels) {
		m.client = client
	}
}

// WithProgress 设置进度回调
func WithProgress(callback func(float64)) Option {
	return func(m *OCRModels) {
		m.onProgress = callback
	}
}

// DefaultBaseDir 默认安装目录 ~/.relicscan/plugins/ocr
func DefaultBaseDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".relicscan", "plugins", "ocr")
}

// NewOCRModels 创建模型管理器
func NewOCRModels(opts ...Option) *OCRModels {
	m := &OCRModels{
		baseDir: DefaultBaseDir(),
		baseURL: HFRepoBase,
		client:  &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BaseDir 安装目录
func (m *OCRModels) BaseDir() string {
	return m.baseDir
}

// modelFile 需要下载的文件
type modelFile struct {
	name   string
	remote string
	local  string
}

func (m *OCRModels) files() []modelFile {
	lib := onnxRuntimeName()
	return []modelFile{
		{name: lib, remote: "lib/" + lib, local: filepath.Join(m.baseDir, "lib", lib)},
		{name: "det.onnx", remote: "paddle_weights/det.onnx", local: filepath.Join(m.baseDir, "paddle_weights", "det.onnx")},
		{name: "rec.onnx", remote: "paddle_weights/rec.onnx", local: filepath.Join(m.baseDir, "paddle_weights", "rec.onnx")},
		{name: "dict.txt", remote: "paddle_weights/dict.txt", local: filepath.Join(m.baseDir, "paddle_weights", "dict.txt")},
	}
}

// onnxRuntimeName 当前平台的 ONNX Runtime 库文件名
func onnxRuntimeName() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "onnxruntime_" + runtime.GOARCH + ".dylib"
	default:
		return "onnxruntime_" + runtime.GOARCH + ".so"
	}
}

// Status 获取模型状态
func (m *OCRModels) Status() Status {
	m.mu.RLock()
	status := Status{
		Downloading: m.downloading,
		Progress:    m.progress,
		BaseDir:     m.baseDir,
	}
	m.mu.RUnlock()

	status.Installed = true
	for _, f := range m.files() {
		present := fileExists(f.local)
		status.Installed = status.Installed && present
		status.Files = append(status.Files, FileStatus{Name: f.name, Path: f.local, Present: present})
	}
	return status
}

// IsInstalled 模型文件是否齐全
func (m *OCRModels) IsInstalled() bool {
	return m.Status().Installed
}

// Config 返回指向已安装模型的 OCR 配置
func (m *OCRModels) Config() (ocr.Config, error) {
	if !m.IsInstalled() {
		return ocr.Config{}, fmt.Errorf("%w: %s", ErrNotInstalled, m.baseDir)
	}
	files := m.files()
	return ocr.Config{
		Engine:             ocr.EnginePaddle,
		OnnxRuntimeLibPath: files[0].local,
		DetModelPath:       files[1].local,
		RecModelPath:       files[2].local,
		DictPath:           files[3].local,
	}.Normalize(), nil
}

// Apply 用已安装的模型补齐配置中为空或不存在的路径，未安装时原样返回
func (m *OCRModels) Apply(cfg ocr.Config) ocr.Config {
	installed, err := m.Config()
	if err != nil {
		return cfg
	}
	fill := func(current *string, fallback string) {
		if !fileExists(*current) {
			*current = fallback
		}
	}
	fill(&cfg.OnnxRuntimeLibPath, installed.OnnxRuntimeLibPath)
	fill(&cfg.DetModelPath, installed.DetModelPath)
	fill(&cfg.RecModelPath, installed.RecModelPath)
	fill(&cfg.DictPath, installed.DictPath)
	return cfg
}

// Install 下载缺失的模型文件。已存在的文件不会重复下载
func (m *OCRModels) Install(ctx context.Context) error {
	m.mu.Lock()
	if m.downloading {
		m.mu.Unlock()
		return ErrDownloading
	}
	m.downloading = true
	m.progress = 0
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.downloading = false
		m.mu.Unlock()
	}()

	files := m.files()
	for i, f := range files {
		if fileExists(f.local) {
			logger.Debug("已存在，跳过: %s", f.local)
			m.setProgress(float64(i+1) / float64(len(files)) * 100)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(f.local), 0755); err != nil {
			return fmt.Errorf("创建目录失败: %w", err)
		}

		startTime := time.Now()
		url := m.baseURL + "/" + f.remote
		err := m.download(ctx, url, f.local, func(fraction float64) {
			m.setProgress((float64(i) + fraction) / float64(len(files)) * 100)
		})
		elapsed := float64(time.Since(startTime).Milliseconds())
		if err != nil {
			logger.LogEvent("Download", false, elapsed, fmt.Sprintf("%s: %v", f.name, err))
			return fmt.Errorf("下载 %s 失败: %w", f.name, err)
		}
		logger.LogEvent("Download", true, elapsed, f.name)
	}

	m.setProgress(100)
	return nil
}

func (m *OCRModels) setProgress(p float64) {
	m.mu.Lock()
	m.progress = p
	callback := m.onProgress
	m.mu.Unlock()

	if callback != nil {
		callback(p)
	}
}

// Uninstall 删除安装目录
func (m *OCRModels) Uninstall() error {
	return os.RemoveAll(m.baseDir)
}

// download 下载到临时文件，完成后重命名
func (m *OCRModels) download(ctx context.Context, url, destPath string, onProgress func(float64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	counter := &progressWriter{total: resp.ContentLength, onProgress: onProgress}
	if _, err := io.Copy(out, io.TeeReader(resp.Body, counter)); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, destPath)
}

// progressWriter 统计已下载字节数，total 未知时不回调
type progressWriter struct {
	written    int64
	total      int64
	onProgress func(float64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.total > 0 && w.onProgress != nil {
		w.onProgress(float64(w.written) / float64(w.total))
	}
	return len(p), nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

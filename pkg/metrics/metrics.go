// Package metrics 记录一次扫描会话的 Prometheus 指标，会话结束时写入 textfile
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder 扫描指标。nil 接收者上的所有方法都是空操作
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	captures        prometheus.Counter
	captureErrors   prometheus.Counter
	relics          prometheus.Counter
	duplicates      prometheus.Counter
	droppedSubStats prometheus.Counter
	ocrLatency      prometheus.Histogram
	sessionSeconds  prometheus.Gauge
}

// Option 指标选项
type Option func(*Recorder)

// WithNamespace 设置指标命名空间
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = namespace
	}
}

// WithRegistry 使用指定的注册表
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		r.registry = registry
	}
}

// WithOCRBuckets 设置 OCR 耗时直方图的分桶（毫秒）
func WithOCRBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		r.buckets = buckets
	}
}

// NewRecorder 创建指标记录器，默认使用独立注册表，不包含 Go 运行时指标
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "relicscan",
		buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(r.registry)
	r.captures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "captures_total",
		Help:      "Screen captures parsed into a relic",
	})
	r.captureErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "capture_errors_total",
		Help:      "Captures that failed to produce a relic",
	})
	r.relics = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "relics_total",
		Help:      "Distinct relics appended to the result list",
	})
	r.duplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "duplicates_total",
		Help:      "Captures equal to the previous relic",
	})
	r.droppedSubStats = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "substats_dropped_total",
		Help:      "Stat lines that could not be parsed and were dropped",
	})
	r.ocrLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "ocr_latency_milliseconds",
		Help:      "OCR latency per image band in milliseconds",
		Buckets:   r.buckets,
	})
	r.sessionSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "session_duration_seconds",
		Help:      "Wall time of the last scan session",
	})
	return r
}

// Registry 返回底层注册表
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// CaptureParsed 记录一次成功解析
func (r *Recorder) CaptureParsed() {
	if r != nil {
		r.captures.Inc()
	}
}

// CaptureFailed 记录一次解析失败
func (r *Recorder) CaptureFailed() {
	if r != nil {
		r.captureErrors.Inc()
	}
}

// RelicAppended 记录新增遗器
func (r *Recorder) RelicAppended() {
	if r != nil {
		r.relics.Inc()
	}
}

// DuplicateSeen 记录重复遗器
func (r *Recorder) DuplicateSeen() {
	if r != nil {
		r.duplicates.Inc()
	}
}

// SubStatsDropped 记录被丢弃的属性行
func (r *Recorder) SubStatsDropped(n int) {
	if r != nil && n > 0 {
		r.droppedSubStats.Add(float64(n))
	}
}

// ObserveOCR 记录一次 OCR 耗时
func (r *Recorder) ObserveOCR(d time.Duration) {
	if r != nil {
		r.ocrLatency.Observe(float64(d) / float64(time.Millisecond))
	}
}

// SessionFinished 记录会话总耗时
func (r *Recorder) SessionFinished(d time.Duration) {
	if r != nil {
		r.sessionSeconds.Set(d.Seconds())
	}
}

// WriteTextfile 以 node_exporter textfile 格式写出所有指标
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("写入指标文件失败: %w", err)
	}
	return nil
}

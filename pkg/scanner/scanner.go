// Package scanner 实现遗器扫描循环：截图、识别、解析，直到读到与上一件相同的遗器为止
//
// 状态只有两个：累积中和结束。进入时先读取一件遗器作为起点；之后每轮先翻页（可选）、
// 等待界面稳定，再读取一件，与上一件相同则结束（重复的那件不加入结果），否则追加并继续。
// 循环可以被 ctx 取消，也可以通过 WithMaxIterations 限制最多读取次数。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/metrics"
	"github.com/zoeyai/relicscan/pkg/relic"
)

// ErrIterationLimit 达到最大读取次数仍未遇到重复遗器
var ErrIterationLimit = errors.New("达到最大扫描次数")

// DefaultDelay 默认翻页等待
const DefaultDelay = 2 * time.Second

// Source 每次调用读取当前画面中的一件遗器
type Source interface {
	Next(ctx context.Context) (relic.Relic, error)
}

// SourceFunc 函数形式的 Source
type SourceFunc func(ctx context.Context) (relic.Relic, error)

// Next 实现 Source
func (f SourceFunc) Next(ctx context.Context) (relic.Relic, error) {
	return f(ctx)
}

// ScreenSource 截屏后交给 Reader 解析
type ScreenSource struct {
	Capture Capturer
	Reader  *Reader
}

// Next 实现 Source
func (s *ScreenSource) Next(ctx context.Context) (relic.Relic, error) {
	if err := ctx.Err(); err != nil {
		return relic.Relic{}, err
	}
	img, err := s.Capture()
	if err != nil {
		return relic.Relic{}, err
	}
	return s.Reader.Read(img)
}

// Scanner 扫描循环
type Scanner struct {
	source        Source
	settler       Settler
	advance       func() error
	maxIterations int
	metrics       *metrics.Recorder
	sessionID     string
}

// Option 扫描选项
type Option func(*Scanner)

// WithSettler 设置翻页后的等待策略，默认 FixedDelay(DefaultDelay)
func WithSettler(s Settler) Option {
	return func(sc *Scanner) {
		sc.settler = s
	}
}

// WithAdvance 每轮等待前调用，用于自动翻到下一件遗器
func WithAdvance(advance func() error) Option {
	return func(sc *Scanner) {
		sc.advance = advance
	}
}

// WithMaxIterations 最多读取 n 次（包含第一次），0 表示不限制
func WithMaxIterations(n int) Option {
	return func(sc *Scanner) {
		sc.maxIterations = n
	}
}

// WithMetrics 记录扫描指标
func WithMetrics(m *metrics.Recorder) Option {
	return func(sc *Scanner) {
		sc.metrics = m
	}
}

// WithSessionID 指定会话 ID，默认随机生成
func WithSessionID(id string) Option {
	return func(sc *Scanner) {
		sc.sessionID = id
	}
}

// New 创建扫描器
func New(source Source, opts ...Option) *Scanner {
	s := &Scanner{
		source:  source,
		settler: FixedDelay(DefaultDelay),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == "" {
		s.sessionID = uuid.NewString()
	}
	return s
}

// SessionID 会话 ID
func (s *Scanner) SessionID() string {
	return s.sessionID
}

// Run 执行扫描，返回按读取顺序排列的遗器
//
// 遇到重复遗器时正常结束；达到次数上限返回已读取的遗器和 ErrIterationLimit；
// ctx 取消返回已读取的遗器和 ctx.Err()；其他读取错误返回 nil 和该错误。
func (s *Scanner) Run(ctx context.Context) ([]relic.Relic, error) {
	startTime := time.Now()
	defer func() { s.metrics.SessionFinished(time.Since(startTime)) }()

	logger.Info("开始扫描遗器 (会话 %s)", s.sessionID)

	prev, err := s.source.Next(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("读取第 1 件遗器失败: %w", err)
	}
	relics := []relic.Relic{prev}
	s.metrics.RelicAppended()
	logger.Info("[1] %s", prev.Name)

	for reads := 1; ; reads++ {
		if s.maxIterations > 0 && reads >= s.maxIterations {
			logger.Warn("已读取 %d 次仍未遇到重复遗器，停止扫描", reads)
			return relics, fmt.Errorf("%w: %d", ErrIterationLimit, s.maxIterations)
		}

		if s.advance != nil {
			if err := s.advance(); err != nil {
				return nil, fmt.Errorf("翻到下一件遗器失败: %w", err)
			}
		}

		if err := s.settler.Settle(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Warn("扫描被取消，已读取 %d 件遗器", len(relics))
				return relics, ctx.Err()
			}
			return nil, fmt.Errorf("等待界面稳定失败: %w", err)
		}

		current, err := s.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("扫描被取消，已读取 %d 件遗器", len(relics))
				return relics, ctx.Err()
			}
			return nil, fmt.Errorf("读取第 %d 件遗器失败: %w", reads+1, err)
		}

		if current.Equal(prev) {
			s.metrics.DuplicateSeen()
			logger.Info("发现重复遗器，扫描结束: 共 %d 件, 耗时 %v", len(relics), time.Since(startTime).Round(time.Millisecond))
			return relics, nil
		}

		relics = append(relics, current)
		prev = current
		s.metrics.RelicAppended()
		logger.Info("[%d] %s", len(relics), current.Name)
	}
}

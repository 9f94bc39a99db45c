package scanner

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/vision/cv"
)

// Capturer 截取一帧全屏画面
type Capturer func() (image.Image, error)

// Settler 在翻页后等待界面稳定
type Settler interface {
	Settle(ctx context.Context) error
}

// FixedDelay 固定等待
type FixedDelay time.Duration

// Settle 等待固定时长，可被 ctx 取消
func (d FixedDelay) Settle(ctx context.Context) error {
	return sleep(ctx, time.Duration(d))
}

// StableFrames 先固定等待，再连续截图直到相邻两帧差异低于阈值或超时
type StableFrames struct {
	// Delay 首次截图前的固定等待
	Delay time.Duration
	// Interval 相邻两次截图的间隔
	Interval time.Duration
	// Timeout 稳定检测的最长时间，超时后直接继续
	Timeout time.Duration
	// Threshold 平均绝对差阈值 (0-1)
	Threshold float64
	// Capture 截图函数
	Capture Capturer
	// Diff 画面差异函数，为空时使用 cv.FrameDifference
	Diff func(a, b image.Image) (float64, error)
}

// Settle 等待画面稳定
func (s StableFrames) Settle(ctx context.Context) error {
	if err := sleep(ctx, s.Delay); err != nil {
		return err
	}

	diff := s.Diff
	if diff == nil {
		diff = cv.FrameDifference
	}

	prev, err := s.Capture()
	if err != nil {
		return fmt.Errorf("稳定检测截图失败: %w", err)
	}

	deadline := time.Now().Add(s.Timeout)
	for frames := 1; ; frames++ {
		if err := sleep(ctx, s.Interval); err != nil {
			return err
		}

		cur, err := s.Capture()
		if err != nil {
			return fmt.Errorf("稳定检测截图失败: %w", err)
		}

		d, err := diff(prev, cur)
		if err != nil {
			return err
		}
		if d <= s.Threshold {
			logger.Debug("画面已稳定: %d 帧, 差异 %.4f", frames, d)
			return nil
		}
		if !time.Now().Before(deadline) {
			logger.Warn("等待画面稳定超时 (%v), 最后差异 %.4f", s.Timeout, d)
			return nil
		}
		prev = cur
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

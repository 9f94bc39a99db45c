package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/auto/input"
	"github.com/zoeyai/relicscan/pkg/auto/screen"
	"github.com/zoeyai/relicscan/pkg/auto/window"
	"github.com/zoeyai/relicscan/pkg/config"
	"github.com/zoeyai/relicscan/pkg/debugdump"
	"github.com/zoeyai/relicscan/pkg/export"
	"github.com/zoeyai/relicscan/pkg/metrics"
	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/permissions"
	"github.com/zoeyai/relicscan/pkg/plugin"
	"github.com/zoeyai/relicscan/pkg/relic"
	"github.com/zoeyai/relicscan/pkg/scanner"
	"github.com/zoeyai/relicscan/pkg/vision"
)

// ErrWindowNotFound 找不到游戏窗口
var ErrWindowNotFound = errors.New("未找到游戏窗口")

func newScanCmd(a *app) *cobra.Command {
	var (
		output     string
		format     string
		maxIter    int
		advanceKey string
		debugDir   string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "激活游戏窗口并逐件扫描遗器，直到遇到重复遗器",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("max") {
				cfg.Capture.MaxIterations = maxIter
			}
			if cmd.Flags().Changed("advance-key") {
				cfg.Capture.AdvanceKey = advanceKey
			}
			if cmd.Flags().Changed("debug-dir") {
				cfg.Output.DebugDir = debugDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScan(ctx, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件，为空时输出到标准输出")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "输出格式 (json, yaml, xlsx)")
	cmd.Flags().IntVar(&maxIter, "max", 0, "最多截图次数，0 不限制")
	cmd.Flags().StringVar(&advanceKey, "advance-key", "", "每次截图前按下的按键，例如 d 或 ctrl+right")
	cmd.Flags().StringVar(&debugDir, "debug-dir", "", "保存切分区域图片的目录")
	return cmd
}

func runScan(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	needKeyboard := cfg.Capture.AdvanceKey != ""
	if status := permissions.Check(); len(status.Missing(needKeyboard)) > 0 {
		status.OpenSettings(needKeyboard)
		return errors.New(status.Instructions(needKeyboard))
	}

	table, err := names.Load(cfg.Data.SetsPath(), cfg.Data.RelicsPath())
	if err != nil {
		return err
	}

	kit, err := vision.Open(cfg.Data.AnchorPath(), plugin.NewOCRModels().Apply(cfg.OCR))
	if err != nil {
		return err
	}
	defer kit.Close()

	if !window.Focus(cfg.Game.WindowTitle, cfg.Game.ProcessName) {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, cfg.Game.WindowTitle)
	}
	if err := scanner.FixedDelay(cfg.Capture.FocusDelay).Settle(ctx); err != nil {
		return err
	}

	sessionID := uuid.NewString()

	var recorder *metrics.Recorder
	if cfg.Output.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	readerOpts := []scanner.ReaderOption{scanner.WithReaderMetrics(recorder)}
	if cfg.Output.DebugDir != "" {
		dump, err := debugdump.New(cfg.Output.DebugDir, sessionID)
		if err != nil {
			return err
		}
		logger.Info("调试图片保存到 %s", dump.Dir())
		readerOpts = append(readerOpts, scanner.WithDebugDump(dump))
	}

	source := &scanner.ScreenSource{
		Capture: screen.CaptureScreen,
		Reader:  kit.Reader(cfg.Geometry, table, readerOpts...),
	}

	opts := []scanner.Option{
		scanner.WithSettler(newSettler(cfg.Capture)),
		scanner.WithMaxIterations(cfg.Capture.MaxIterations),
		scanner.WithMetrics(recorder),
		scanner.WithSessionID(sessionID),
	}
	if key := cfg.Capture.AdvanceKey; key != "" {
		opts = append(opts, scanner.WithAdvance(func() error {
			return input.HotKey(key)
		}))
	}

	relics, err := scanner.New(source, opts...).Run(ctx)

	if recorder != nil {
		if werr := recorder.WriteTextfile(cfg.Output.MetricsFile); werr != nil {
			logger.Warn("写入指标文件失败: %v", werr)
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, scanner.ErrIterationLimit):
		logger.Warn("%v，输出已扫描的 %d 件遗器", err, len(relics))
	case errors.Is(err, context.Canceled):
		logger.Warn("扫描已取消，输出已扫描的 %d 件遗器", len(relics))
	default:
		return err
	}

	return writeOutput(stdout, cfg.Output, relics)
}

func newSettler(c config.CaptureConfig) scanner.Settler {
	if c.StabilityThreshold <= 0 {
		return scanner.FixedDelay(c.Delay)
	}
	return scanner.StableFrames{
		Delay:     c.Delay,
		Interval:  c.StabilityInterval,
		Timeout:   c.StabilityTimeout,
		Threshold: c.StabilityThreshold,
		Capture:   screen.CaptureScreen,
	}
}

// writeOutput 输出到文件或标准输出
func writeOutput(stdout io.Writer, out config.OutputConfig, relics []relic.Relic) error {
	format, err := export.ParseFormat(out.Format)
	if err != nil {
		return err
	}

	if out.Path == "" {
		if format == export.FormatXLSX {
			return errors.New("xlsx 格式需要指定输出文件")
		}
		return export.Write(stdout, format, relics)
	}

	startTime := time.Now()
	format = export.FormatFromPath(out.Path, format)
	if err := export.WriteFile(out.Path, format, relics); err != nil {
		return err
	}
	logger.Info("已导出 %d 件遗器到 %s (%s, %v)", len(relics), out.Path, format, time.Since(startTime).Round(time.Millisecond))
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/config"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// skipConfig 标记不需要加载配置的命令
const skipConfig = "skip-config"

// app 各子命令共享的状态
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "relicscan",
		Short:         "从游戏界面截图中识别遗器并导出",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Default().Close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		fmt.Sprintf("配置文件 (默认 %s)", config.GetDefaultManager().GetConfigFile()))
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "日志级别 (debug, info, warn, error)")

	root.AddCommand(
		newScanCmd(a),
		newParseCmd(a),
		newNamesCmd(a),
		newModelsCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load 加载配置并应用日志设置，命令行参数优先
func (a *app) load() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.GetDefaultManager().Load()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	logger.Default().SetLevel(logger.ParseLevel(a.cfg.Log.Level))
	if a.cfg.Log.File != "" {
		if err := logger.Default().SetFile(a.cfg.Log.File); err != nil {
			return fmt.Errorf("打开日志文件失败: %w", err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "显示版本信息",
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "relicscan v%s\n", Version)
			fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

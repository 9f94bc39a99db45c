package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/plugin"
)

func newModelsCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:         "models",
		Short:       "管理 PaddleOCR 模型文件",
		Annotations: map[string]string{skipConfig: "true"},
	}

	install := &cobra.Command{
		Use:         "install",
		Short:       "下载缺少的模型文件",
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			last := -1
			m := plugin.NewOCRModels(
				plugin.WithBaseURL(baseURL),
				plugin.WithProgress(func(p float64) {
					// 每 10% 输出一次
					if step := int(p) / 10; step != last {
						last = step
						logger.Info("下载进度 %.0f%%", p)
					}
				}),
			)
			if err := m.Install(cmd.Context()); err != nil {
				return err
			}
			logger.Info("模型已安装到 %s", m.BaseDir())
			return nil
		},
	}
	install.Flags().StringVar(&baseURL, "base-url", plugin.HFRepoBase, "模型下载地址")

	status := &cobra.Command{
		Use:         "status",
		Short:       "检查模型文件",
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			s := plugin.NewOCRModels().Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "目录: %s\n", s.BaseDir)
			for _, f := range s.Files {
				mark := "缺少"
				if f.Present {
					mark = "已安装"
				}
				fmt.Fprintf(out, "  %-28s %s\n", f.Name, mark)
			}
			fmt.Fprintf(out, "已安装: %v\n", s.Installed)
		},
	}

	uninstall := &cobra.Command{
		Use:         "uninstall",
		Short:       "删除已下载的模型文件",
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return plugin.NewOCRModels().Uninstall()
		},
	}

	cmd.AddCommand(install, status, uninstall)
	return cmd
}

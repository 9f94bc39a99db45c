package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "管理配置文件",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "写入默认配置文件",
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := config.GetDefaultManager()
			if m.Exists() && !force {
				return errors.New("配置文件已存在，使用 --force 覆盖: " + m.GetConfigFile())
			}
			if err := m.Save(config.Default()); err != nil {
				return err
			}
			logger.Info("配置已保存到 %s", m.GetConfigFile())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的配置文件")

	show := &cobra.Command{
		Use:   "show",
		Short: "输出合并后的配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	path := &cobra.Command{
		Use:         "path",
		Short:       "输出配置文件路径",
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GetDefaultManager().GetConfigFile())
		},
	}

	cmd.AddCommand(initCmd, show, path)
	return cmd
}

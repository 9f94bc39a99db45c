package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/relicscan/pkg/auto/screen"
	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/plugin"
	"github.com/zoeyai/relicscan/pkg/relic"
	"github.com/zoeyai/relicscan/pkg/scanner"
	"github.com/zoeyai/relicscan/pkg/vision"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		raw    bool
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse <screenshot>...",
		Short: "解析已保存的截图，不操作游戏窗口",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
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

			reader := kit.Reader(cfg.Geometry, table)

			var (
				relics   []relic.Relic
				readings []*scanner.Reading
			)
			for _, path := range args {
				img, err := screen.LoadImage(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				// 每张截图单独定位锚点
				reader.Reset()

				if raw {
					reading, err := reader.Recognize(img)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					readings = append(readings, reading)
					continue
				}

				r, err := reader.Read(img)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				relics = append(relics, r)
			}

			if raw {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(readings)
			}
			return writeOutput(cmd.OutOrStdout(), cfg.Output, relics)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "只输出识别出的原始文字，不解析")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "输出格式 (json, yaml, xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件，为空时输出到标准输出")
	return cmd
}

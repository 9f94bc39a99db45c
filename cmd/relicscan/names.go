package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/relic"
)

// setNames 一个套装的名称表
type setNames struct {
	Set   relic.Set         `yaml:"set"`
	Names map[string]string `yaml:"names"`
}

func newNamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "输出由数据表构建的 套装/部位 -> 遗器名称 表",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := names.Load(a.cfg.Data.SetsPath(), a.cfg.Data.RelicsPath())
			if err != nil {
				return err
			}

			var out []setNames
			for _, set := range table.Sets() {
				entry := setNames{Set: set, Names: make(map[string]string)}
				for _, slot := range relic.AllSlots() {
					if name, err := table.Name(set, slot); err == nil {
						entry.Names[slot.String()] = name
					}
				}
				out = append(out, entry)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

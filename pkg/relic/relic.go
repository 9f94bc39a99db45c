// Package relic 定义遗器数据模型以及部位、属性、套装三种文字解析规则
package relic

import "slices"

// MaxSubStats 副属性最多条数
const MaxSubStats = 4

// Relic 一件遗器
type Relic struct {
	Name     string `json:"name" yaml:"name"`
	Set      Set    `json:"set" yaml:"set"`
	Slot     Slot   `json:"slot" yaml:"slot"`
	MainStat Stat   `json:"mainstat" yaml:"mainstat"`
	SubStats []Stat `json:"substats" yaml:"substats"`
}

// New 创建遗器
func New(name string, set Set, slot Slot, mainStat Stat, subStats []Stat) Relic {
	return Relic{
		Name:     name,
		Set:      set,
		Slot:     slot,
		MainStat: mainStat,
		SubStats: subStats,
	}
}

// DuplicateKey 参与判重的字段：名称、主属性、副属性（按顺序）。
// 套装与部位不参与比较。
type DuplicateKey struct {
	Name     string
	MainStat Stat
	SubStats []Stat
}

// DuplicateKey 返回判重字段
func (r Relic) DuplicateKey() DuplicateKey {
	return DuplicateKey{Name: r.Name, MainStat: r.MainStat, SubStats: r.SubStats}
}

// Equal 按 DuplicateKey 比较两件遗器
func (r Relic) Equal(other Relic) bool {
	a, b := r.DuplicateKey(), other.DuplicateKey()
	return a.Name == b.Name &&
		a.MainStat == b.MainStat &&
		slices.Equal(a.SubStats, b.SubStats)
}

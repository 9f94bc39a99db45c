package scanner

import (
	"errors"
	"fmt"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/relic"
)

var (
	// ErrNoSlot 信息区域中没有可识别的部位
	ErrNoSlot = errors.New("信息区域中未找到部位")
	// ErrNoMainStat 属性区域中没有可解析的主属性
	ErrNoMainStat = errors.New("未解析到主属性")
	// ErrNoSetText 套装区域没有文字
	ErrNoSetText = errors.New("套装区域未识别到文字")
	// ErrUnknownSet 套装文字无法识别
	ErrUnknownSet = errors.New("无法识别套装")
)

// Reading 一次截图识别出的原始文字
type Reading struct {
	// Info 信息区域所有文本行，从上到下
	Info []string `json:"info"`
	// Stats 每个属性行区域识别出的第一行，区域为空时为 ""
	Stats []string `json:"stats"`
	// Set 套装区域识别出的第一行
	Set string `json:"set"`
}

// Assemble 把识别文字组装成遗器，返回值 dropped 为无法解析而被丢弃的属性行数
//
// 部位取信息区域中第一个可解析的行；属性行中第一个可解析的为主属性，
// 其余可解析的依次作为副属性；遗器名称由套装和部位从名称表查出。
func Assemble(reading Reading, table names.Table) (r relic.Relic, dropped int, err error) {
	slot, ok := firstSlot(reading.Info)
	if !ok {
		return relic.Relic{}, 0, fmt.Errorf("%w: %q", ErrNoSlot, reading.Info)
	}

	var stats []relic.Stat
	for _, line := range reading.Stats {
		if line == "" {
			continue
		}
		stat, ok := relic.ParseStat(line)
		if !ok {
			dropped++
			continue
		}
		stats = append(stats, stat)
	}
	if len(stats) == 0 {
		return relic.Relic{}, dropped, fmt.Errorf("%w: %q", ErrNoMainStat, reading.Stats)
	}

	subs := stats[1:]
	if len(subs) > relic.MaxSubStats {
		logger.Warn("副属性数量 %d 超过 %d，多余的被丢弃", len(subs), relic.MaxSubStats)
		dropped += len(subs) - relic.MaxSubStats
		subs = subs[:relic.MaxSubStats]
	}

	if reading.Set == "" {
		return relic.Relic{}, dropped, ErrNoSetText
	}
	set, ok := relic.ParseSet(reading.Set)
	if !ok {
		return relic.Relic{}, dropped, fmt.Errorf("%w: %q", ErrUnknownSet, reading.Set)
	}

	name, err := table.Name(set, slot)
	if err != nil {
		return relic.Relic{}, dropped, err
	}

	return relic.New(name, set, slot, stats[0], subs), dropped, nil
}

func firstSlot(lines []string) (relic.Slot, bool) {
	for _, line := range lines {
		if slot, ok := relic.ParseSlot(line); ok {
			return slot, true
		}
	}
	return 0, false
}

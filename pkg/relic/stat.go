package relic

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zoeyai/relicscan/internal/logger"
)

// StatKind 属性种类
type StatKind int

const (
	HP StatKind = iota
	ATK
	DEF
	SPD
	HPPercent
	ATKPercent
	DEFPercent
	BreakEffect
	EffectHitRate
	EffectRES
	EnergyRegen
	OutgoingHealing
	PhysicalDMG
	FireDMG
	IceDMG
	WindDMG
	LightningDMG
	QuantumDMG
	ImaginaryDMG
	CritRate
	CritDMG

	statKindCount
)

var statKeys = [statKindCount]string{
	HP:              "HP",
	ATK:             "ATK",
	DEF:             "DEF",
	SPD:             "SPD",
	HPPercent:       "HP%",
	ATKPercent:      "ATK%",
	DEFPercent:      "DEF%",
	BreakEffect:     "BE",
	EffectHitRate:   "EHR",
	EffectRES:       "RES",
	EnergyRegen:     "ERR",
	OutgoingHealing: "OHB",
	PhysicalDMG:     "PHYS",
	FireDMG:         "FIRE",
	IceDMG:          "ICE",
	WindDMG:         "WIND",
	LightningDMG:    "LIGHTNING",
	QuantumDMG:      "QUANTUM",
	ImaginaryDMG:    "IMAGINARY",
	CritRate:        "CR",
	CritDMG:         "CD",
}

// AllStatKinds 返回全部属性种类
func AllStatKinds() []StatKind {
	kinds := make([]StatKind, 0, statKindCount)
	for k := StatKind(0); k < statKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k StatKind) String() string {
	if k < 0 || k >= statKindCount {
		return fmt.Sprintf("StatKind(%d)", int(k))
	}
	return statKeys[k]
}

// Flat 是否为整数固定值属性
func (k StatKind) Flat() bool {
	switch k {
	case HP, ATK, DEF, SPD:
		return true
	}
	return false
}

// Stat 属性：种类 + 数值。固定值属性的数值总是整数
type Stat struct {
	Kind  StatKind
	Value float64
}

// NewStat 创建属性，固定值属性截断为整数
func NewStat(kind StatKind, value float64) Stat {
	if kind.Flat() {
		value = math.Trunc(value)
	}
	return Stat{Kind: kind, Value: value}
}

func (s Stat) String() string {
	if s.Kind.Flat() {
		return fmt.Sprintf("%s %d", s.Kind, int64(s.Value))
	}
	return fmt.Sprintf("%s %s", s.Kind, strconv.FormatFloat(s.Value, 'f', -1, 64))
}

type statJSON struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// MarshalJSON 输出 {"key": "ATK%", "value": 5}
func (s Stat) MarshalJSON() ([]byte, error) {
	return json.Marshal(statJSON{Key: s.Kind.String(), Value: s.Value})
}

// UnmarshalJSON 解析 MarshalJSON 的输出
func (s *Stat) UnmarshalJSON(data []byte) error {
	var raw statJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, key := range statKeys {
		if key == raw.Key {
			*s = NewStat(StatKind(i), raw.Value)
			return nil
		}
	}
	return fmt.Errorf("未知属性: %s", raw.Key)
}

// MarshalYAML 与 JSON 结构一致
func (s Stat) MarshalYAML() (interface{}, error) {
	return statJSON{Key: s.Kind.String(), Value: s.Value}, nil
}

// statRule 属性解析规则。percent 为带 % 时的种类，仅 HP/ATK/DEF 使用
type statRule struct {
	kind    StatKind
	percent StatKind
	dual    bool
}

// statLexicon 归一化后的属性名 -> 解析规则
var statLexicon = map[string]statRule{
	"hp":                       {kind: HP, percent: HPPercent, dual: true},
	"atk":                      {kind: ATK, percent: ATKPercent, dual: true},
	"def":                      {kind: DEF, percent: DEFPercent, dual: true},
	"spd":                      {kind: SPD},
	"break effect":             {kind: BreakEffect},
	"effect hit rate":          {kind: EffectHitRate},
	"effect res":               {kind: EffectRES},
	"energy regeneration rate": {kind: EnergyRegen},
	"outgoing healing":         {kind: OutgoingHealing},
	"physical dmg":             {kind: PhysicalDMG},
	"fire dmg":                 {kind: FireDMG},
	"ice dmg":                  {kind: IceDMG},
	"wind dmg":                 {kind: WindDMG},
	"lightning dmg":            {kind: LightningDMG},
	"quantum dmg":              {kind: QuantumDMG},
	"imaginary dmg":            {kind: ImaginaryDMG},
	"crit rate":                {kind: CritRate},
	"crit dmg":                 {kind: CritDMG},
}

// validMagnitude 属性数值必须是有限的非负数。ParseFloat 会接受 inf/nan
func validMagnitude(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ParseStat 解析一行属性文字，例如 "ATK Boost 5%" 或 "Crit DMG 64.8%"
//
// 固定值/百分比由原始文字中是否包含 % 决定，而不是数值部分。
func ParseStat(text string) (Stat, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(text), "Boost", ""))
	parts := strings.Fields(normalized)
	if len(parts) < 2 {
		return Stat{}, false
	}

	value, err := strconv.ParseFloat(strings.TrimRight(parts[len(parts)-1], "%"), 64)
	if err != nil || !validMagnitude(value) {
		logger.Warn("无法解析属性数值: %q", text)
		return Stat{}, false
	}

	key := strings.Join(parts[:len(parts)-1], " ")
	rule, ok := statLexicon[key]
	if !ok {
		logger.Warn("未知属性: %q", text)
		return Stat{}, false
	}

	kind := rule.kind
	if rule.dual && strings.Contains(text, "%") {
		kind = rule.percent
	}
	return NewStat(kind, value), true
}

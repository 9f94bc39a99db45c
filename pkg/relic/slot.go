package relic

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Slot 遗器部位
type Slot int

const (
	Head Slot = iota
	Hands
	Body
	Feet
	Rope
	Sphere
)

// SlotCount 部位数量，同时是名称表每个套装的长度
const SlotCount = 6

var slotNames = [SlotCount]string{"HEAD", "HANDS", "BODY", "FEET", "ROPE", "SPHERE"}

// slotVocabulary 两套词汇映射到同一组部位：游戏界面文字与数据表中的 type 字段
var slotVocabulary = map[string]Slot{
	// 游戏界面
	"head":          Head,
	"hands":         Hands,
	"body":          Body,
	"feet":          Feet,
	"link rope":     Rope,
	"planar sphere": Sphere,

	// 数据表
	"hand":   Hands,
	"foot":   Feet,
	"object": Rope,
	"neck":   Sphere,
}

// AllSlots 按序号返回全部部位
func AllSlots() []Slot {
	return []Slot{Head, Hands, Body, Feet, Rope, Sphere}
}

// Index 返回部位序号 (0-5)，用作名称表下标
func (s Slot) Index() int {
	return int(s)
}

// Valid 检查部位是否合法
func (s Slot) Valid() bool {
	return s >= Head && s <= Sphere
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// MarshalJSON 以名称输出
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON 接受名称
func (s *Slot) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range slotNames {
		if n == name {
			*s = Slot(i)
			return nil
		}
	}
	return fmt.Errorf("未知部位: %s", name)
}

// MarshalYAML 以名称输出
func (s Slot) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ParseSlot 解析部位文字（不区分大小写，完全匹配）
func ParseSlot(text string) (Slot, bool) {
	slot, ok := slotVocabulary[strings.ToLower(text)]
	return slot, ok
}

package relic

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/zoeyai/relicscan/internal/logger"
)

// Set 遗器套装 / 位面饰品套装
type Set int

const (
	// 隧洞遗器
	Band Set = iota
	Champion
	Eagle
	Firesmith
	Genius
	Guard
	Hero
	Hunter
	Iron
	Knight
	Disciple
	Messenger
	Musketeer
	Passerby
	Pioneer
	Poet
	Prisoner
	Ordeal
	Scholar
	Thief
	Goddess
	Wastelander
	Watchmaker
	Wavestrider
	Duke
	Soar
	Park

	// 位面饰品
	Belobog
	Bone
	Keel
	Celestial
	Duran
	Glamoth
	Ageless
	Forge
	Tree
	Inert
	Realm
	Sunken
	Enterprise
	Penacony
	Arena
	Desolation
	Station
	Sprightly
	Banditry

	setCount
)

var setKeys = [setCount]string{
	Band:        "BAND",
	Champion:    "CHAMPION",
	Eagle:       "EAGLE",
	Firesmith:   "FIRESMITH",
	Genius:      "GENIUS",
	Guard:       "GUARD",
	Hero:        "HERO",
	Hunter:      "HUNTER",
	Iron:        "IRON",
	Knight:      "KNIGHT",
	Disciple:    "DISCIPLE",
	Messenger:   "MESSENGER",
	Musketeer:   "MUSKETEER",
	Passerby:    "PASSERBY",
	Pioneer:     "PIONEER",
	Poet:        "POET",
	Prisoner:    "PRISONER",
	Ordeal:      "ORDEAL",
	Scholar:     "SCHOLAR",
	Thief:       "THIEF",
	Goddess:     "GODDESS",
	Wastelander: "WASTELANDER",
	Watchmaker:  "WATCHMAKER",
	Wavestrider: "WAVESTRIDER",
	Duke:        "DUKE",
	Soar:        "SOAR",
	Park:        "PARK",
	Belobog:     "BELOBOG",
	Bone:        "BONE",
	Keel:        "KEEL",
	Celestial:   "CELESTIAL",
	Duran:       "DURAN",
	Glamoth:     "GLAMOTH",
	Ageless:     "AGELESS",
	Forge:       "FORGE",
	Tree:        "TREE",
	Inert:       "INERT",
	Realm:       "REALM",
	Sunken:      "SUNKEN",
	Enterprise:  "ENTERPRISE",
	Penacony:    "PENACONY",
	Arena:       "ARENA",
	Desolation:  "DESOLATION",
	Station:     "STATION",
	Sprightly:   "SPRIGHTLY",
	Banditry:    "BANDITRY",
}

// setPrefixes 套装描述首个单词 -> 套装
var setPrefixes = map[string]Set{
	"band":        Band,
	"champion":    Champion,
	"eagle":       Eagle,
	"firesmith":   Firesmith,
	"genius":      Genius,
	"guard":       Guard,
	"hero":        Hero,
	"hunter":      Hunter,
	"iron":        Iron,
	"knight":      Knight,
	"longevous":   Disciple,
	"messenger":   Messenger,
	"musketeer":   Musketeer,
	"passerby":    Passerby,
	"pioneer":     Pioneer,
	"poet":        Poet,
	"prisoner":    Prisoner,
	"sacerdos":    Ordeal,
	"scholar":     Scholar,
	"thief":       Thief,
	"warrior":     Goddess,
	"wastelander": Wastelander,
	"watchmaker":  Watchmaker,
	"wavestrider": Wavestrider,

	"belobog":   Belobog,
	"bone":      Bone,
	"broken":    Keel,
	"celestial": Celestial,
	"duran":     Duran,
	"firmament": Glamoth,
	"fleet":     Ageless,
	"forge":     Forge,
	"giant":     Tree,
	"inert":     Inert,
	"izumo":     Realm,
	"lushaka":   Sunken,
	"pan":       Enterprise,
	"penacony":  Penacony,
	"rutilant":  Arena,
	"sigonia":   Desolation,
	"space":     Station,
	"sprightly": Sprightly,
	"talia":     Banditry,
}

// theSets "The ..." 开头的套装按第二个单词区分
var theSets = map[string]Set{
	"ashblazing": Duke,
	"wind":       Soar,
	"wondrous":   Park,
}

// AllSets 返回全部套装
func AllSets() []Set {
	sets := make([]Set, 0, setCount)
	for s := Set(0); s < setCount; s++ {
		sets = append(sets, s)
	}
	return sets
}

// Valid 检查套装是否合法
func (s Set) Valid() bool {
	return s >= 0 && s < setCount
}

func (s Set) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Set(%d)", int(s))
	}
	return setKeys[s]
}

// Planar 是否为位面饰品套装
func (s Set) Planar() bool {
	return s >= Belobog && s < setCount
}

// MarshalJSON 以名称输出
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON 接受名称
func (s *Set) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, key := range setKeys {
		if key == name {
			*s = Set(i)
			return nil
		}
	}
	return fmt.Errorf("未知套装: %s", name)
}

// MarshalYAML 以名称输出
func (s Set) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ParseSet 根据套装名称的首个单词解析套装
func ParseSet(text string) (Set, bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		logger.Warn("未知套装: %q", text)
		return 0, false
	}

	first := strings.ToLower(tokens[0])
	if first == "the" {
		if len(tokens) > 1 {
			if set, ok := theSets[strings.ToLower(tokens[1])]; ok {
				return set, true
			}
		}
		logger.Warn("未知套装: %q", text)
		return 0, false
	}

	set, ok := setPrefixes[first]
	if !ok {
		logger.Warn("未知套装: %q", text)
	}
	return set, ok
}

// Package names 根据套装表和遗器表构建 (套装, 部位) -> 遗器名称 查找表
//
// OCR 识别的遗器标题不可靠，因此遗器名称总是通过套装与部位从该表中查出。
package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/zoeyai/relicscan/internal/logger"
	"github.com/zoeyai/relicscan/pkg/relic"
)

var (
	// ErrUnknownSetID 遗器引用了套装表中不存在的套装 ID
	ErrUnknownSetID = errors.New("套装 ID 不存在")
	// ErrUnparsableSet 套装名称无法解析
	ErrUnparsableSet = errors.New("无法解析套装名称")
	// ErrUnparsableSlot 部位名称无法解析
	ErrUnparsableSlot = errors.New("无法解析部位名称")
	// ErrNameNotFound 表中没有该套装/部位的名称
	ErrNameNotFound = errors.New("未找到遗器名称")
)

// SetStub 套装表条目
type SetStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemStub 遗器表条目
type ItemStub struct {
	SetID string `json:"set_id"`
	Slot  string `json:"type"`
	Name  string `json:"name"`
}

// Table 套装 -> 按部位序号排列的 6 个名称。构建后只读
type Table map[relic.Set][relic.SlotCount]string

// LoadSetStubs 读取套装表 JSON
func LoadSetStubs(path string) (map[string]SetStub, error) {
	var stubs map[string]SetStub
	if err := loadJSON(path, &stubs); err != nil {
		return nil, fmt.Errorf("读取套装表失败: %w", err)
	}
	return stubs, nil
}

// LoadItemStubs 读取遗器表 JSON
func LoadItemStubs(path string) (map[string]ItemStub, error) {
	var stubs map[string]ItemStub
	if err := loadJSON(path, &stubs); err != nil {
		return nil, fmt.Errorf("读取遗器表失败: %w", err)
	}
	return stubs, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return nil
}

// Load 读取两张表并构建名称表
func Load(setsPath, itemsPath string) (Table, error) {
	sets, err := LoadSetStubs(setsPath)
	if err != nil {
		return nil, err
	}
	items, err := LoadItemStubs(itemsPath)
	if err != nil {
		return nil, err
	}
	return BuildTable(sets, items)
}

// BuildTable 构建名称表。任何条目不一致都会使整个构建失败
func BuildTable(sets map[string]SetStub, items map[string]ItemStub) (Table, error) {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := make(Table)
	for _, id := range ids {
		item := items[id]

		setStub, ok := sets[item.SetID]
		if !ok {
			return nil, fmt.Errorf("遗器 %s: %w: %s", id, ErrUnknownSetID, item.SetID)
		}

		set, ok := relic.ParseSet(setStub.Name)
		if !ok {
			return nil, fmt.Errorf("遗器 %s: %w: %q", id, ErrUnparsableSet, setStub.Name)
		}

		slot, ok := relic.ParseSlot(item.Slot)
		if !ok {
			return nil, fmt.Errorf("遗器 %s: %w: %q", id, ErrUnparsableSlot, item.Slot)
		}

		row := table[set]
		if prev := row[slot.Index()]; prev != "" && prev != item.Name {
			logger.Warn("套装 %v 部位 %v 名称重复: %q / %q，保留前者", set, slot, prev, item.Name)
			continue
		}
		row[slot.Index()] = item.Name
		table[set] = row
	}

	logger.Debug("名称表构建完成: %d 个套装, %d 件遗器", len(table), len(items))
	return table, nil
}

// Name 查找套装与部位对应的遗器名称
func (t Table) Name(set relic.Set, slot relic.Slot) (string, error) {
	row, ok := t[set]
	if !ok || !slot.Valid() || row[slot.Index()] == "" {
		return "", fmt.Errorf("%w: %v/%v", ErrNameNotFound, set, slot)
	}
	return row[slot.Index()], nil
}

// Sets 按套装序号返回表中所有套装
func (t Table) Sets() []relic.Set {
	sets := make([]relic.Set, 0, len(t))
	for s := range t {
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i] < sets[j] })
	return sets
}

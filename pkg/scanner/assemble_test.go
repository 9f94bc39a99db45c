package scanner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/zoeyai/relicscan/pkg/names"
	"github.com/zoeyai/relicscan/pkg/relic"
)

func testTable(t *testing.T) names.Table {
	t.Helper()
	table, err := names.BuildTable(
		map[string]names.SetStub{
			"105": {ID: "105", Name: "Poet of Mourning Collected Works"},
			"301": {ID: "301", Name: "Space Sealing Station"},
		},
		map[string]names.ItemStub{
			"61051": {SetID: "105", Slot: "HEAD", Name: "Poet's Dill Wreath"},
			"61054": {SetID: "105", Slot: "FOOT", Name: "Poet's Silver-Studded Shoes"},
			"63015": {SetID: "301", Slot: "NECK", Name: "Herta's Space Station"},
		},
	)
	if err != nil {
		t.Fatalf("构建名称表失败: %v", err)
	}
	return table
}

func TestAssemble(t *testing.T) {
	reading := Reading{
		Info:  []string{"Poet's Dill Wreath", "+15", "Head"},
		Stats: []string{"HP 705", "CRIT Rate 3.2%", "SPD 2", "", ""},
		Set:   "Poet of Mourning Collected Works",
	}

	got, dropped, err := Assemble(reading, testTable(t))
	if err != nil {
		t.Fatalf("组装失败: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, 期望 0", dropped)
	}

	want := relic.New("Poet's Dill Wreath", relic.Poet, relic.Head,
		relic.NewStat(relic.HP, 705),
		[]relic.Stat{relic.NewStat(relic.CritRate, 3.2), relic.NewStat(relic.SPD, 2)})
	if !got.Equal(want) || got.Set != relic.Poet || got.Slot != relic.Head {
		t.Errorf("组装结果 = %+v, 期望 %+v", got, want)
	}
}

func TestAssembleNameComesFromTable(t *testing.T) {
	// 标题识别错误不影响名称
	reading := Reading{
		Info:  []string{"Pcet's Sllver-Studed Shoos", "Feet"},
		Stats: []string{"SPD 25"},
		Set:   "Poet of Mourning Collected Works",
	}

	got, _, err := Assemble(reading, testTable(t))
	if err != nil {
		t.Fatalf("组装失败: %v", err)
	}
	if got.Name != "Poet's Silver-Studded Shoes" {
		t.Errorf("名称 = %q", got.Name)
	}
	if len(got.SubStats) != 0 {
		t.Errorf("不应有副属性, 实际 %v", got.SubStats)
	}
}

func TestAssembleDropsUnparsableStats(t *testing.T) {
	reading := Reading{
		Info:  []string{"Herta's Space Station", "Planar Sphere"},
		Stats: []string{"garbage", "HP 43.2%", "Speed ???", "DEF 21", "Effect RES 4.3%"},
		Set:   "Space Sealing Station",
	}

	got, dropped, err := Assemble(reading, testTable(t))
	if err != nil {
		t.Fatalf("组装失败: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, 期望 2", dropped)
	}
	if got.MainStat != relic.NewStat(relic.HPPercent, 43.2) {
		t.Errorf("主属性 = %v", got.MainStat)
	}
	wantSubs := []relic.Stat{relic.NewStat(relic.DEF, 21), relic.NewStat(relic.EffectRES, 4.3)}
	if len(got.SubStats) != len(wantSubs) || got.SubStats[0] != wantSubs[0] || got.SubStats[1] != wantSubs[1] {
		t.Errorf("副属性 = %v, 期望 %v", got.SubStats, wantSubs)
	}
}

func TestAssembleDropsNonFiniteStats(t *testing.T) {
	reading := Reading{
		Info:  []string{"Head"},
		Stats: []string{"HP 705", "SPD Inf", "CRIT DMG NaN%", "ATK -19", "DEF 21"},
		Set:   "Poet of Mourning Collected Works",
	}

	got, dropped, err := Assemble(reading, testTable(t))
	if err != nil {
		t.Fatalf("组装失败: %v", err)
	}
	if dropped != 3 {
		t.Errorf("dropped = %d, 期望 3", dropped)
	}
	if !got.Equal(got) {
		t.Error("遗器应与自身相等")
	}
	if _, err := json.Marshal(got); err != nil {
		t.Errorf("序列化失败: %v", err)
	}
}

func TestAssembleCapsSubStats(t *testing.T) {
	reading := Reading{
		Info:  []string{"Head"},
		Stats: []string{"HP 705", "ATK 19", "DEF 21", "SPD 2", "CRIT Rate 3.2%", "CRIT DMG 6.4%"},
		Set:   "Poet of Mourning Collected Works",
	}

	got, dropped, err := Assemble(reading, testTable(t))
	if err != nil {
		t.Fatalf("组装失败: %v", err)
	}
	if len(got.SubStats) != relic.MaxSubStats {
		t.Errorf("副属性数量 = %d, 期望 %d", len(got.SubStats), relic.MaxSubStats)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, 期望 1", dropped)
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		want    error
	}{
		{
			name:    "没有部位",
			reading: Reading{Info: []string{"Poet's Dill Wreath", "+15"}, Stats: []string{"HP 705"}, Set: "Poet of Mourning Collected Works"},
			want:    ErrNoSlot,
		},
		{
			name:    "没有主属性",
			reading: Reading{Info: []string{"Head"}, Stats: []string{"", "garbage"}, Set: "Poet of Mourning Collected Works"},
			want:    ErrNoMainStat,
		},
		{
			name:    "套装区域为空",
			reading: Reading{Info: []string{"Head"}, Stats: []string{"HP 705"}},
			want:    ErrNoSetText,
		},
		{
			name:    "未知套装",
			reading: Reading{Info: []string{"Head"}, Stats: []string{"HP 705"}, Set: "Mystery Box"},
			want:    ErrUnknownSet,
		},
		{
			name:    "名称表中没有",
			reading: Reading{Info: []string{"Hands"}, Stats: []string{"ATK 352"}, Set: "Poet of Mourning Collected Works"},
			want:    names.ErrNameNotFound,
		},
	}

	table := testTable(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Assemble(tt.reading, table)
			if !errors.Is(err, tt.want) {
				t.Errorf("错误 = %v, 期望 %v", err, tt.want)
			}
		})
	}
}

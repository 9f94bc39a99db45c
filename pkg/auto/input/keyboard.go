// Package input 提供键盘输入功能
package input

import (
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"
)

// KeyTap 按键
func KeyTap(key string, modifiers ...string) error {
	if len(modifiers) > 0 {
		return robotgo.KeyTap(key, modifiers)
	}
	return robotgo.KeyTap(key)
}

// ParseHotKey 解析形如 "ctrl+shift+d" 的组合键，最后一个为主键
func ParseHotKey(spec string) (key string, modifiers []string, err error) {
	var parts []string
	for _, p := range strings.Split(strings.ToLower(spec), "+") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("按键为空: %q", spec)
	}
	return parts[len(parts)-1], parts[:len(parts)-1], nil
}

// HotKey 按下组合键，例如 "right" 或 "ctrl+d"
func HotKey(spec string) error {
	key, modifiers, err := ParseHotKey(spec)
	if err != nil {
		return err
	}
	if err := KeyTap(key, modifiers...); err != nil {
		return fmt.Errorf("按键 %q 失败: %w", spec, err)
	}
	return nil
}

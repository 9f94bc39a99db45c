// Package ocr 提供文字识别功能
//
// 识别引擎通过 Recognizer 接口抽象，内置 PaddleOCR (go-ocr) 与 Tesseract (gosseract) 两种实现。
//
// 基本用法:
//
//	rec, err := ocr.New(ocr.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rec.Close()
//
//	lines, err := ocr.ExtractLines(rec, img)
//	for _, line := range lines {
//	    fmt.Println(line)
//	}
package ocr

import (
	"cmp"
	"image"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ExtractLines 识别图像并返回按从上到下排列的文本行
//
// 去掉首尾空白后长度不超过 1 个字符的行视为噪声丢弃。不做拼写纠正和置信度过滤。
func ExtractLines(rec Recognizer, img image.Image) ([]string, error) {
	lines, err := rec.Recognize(img)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(lines, func(a, b Line) int {
		if c := cmp.Compare(a.Box.Min.Y, b.Box.Min.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Box.Min.X, b.Box.Min.X)
	})

	return lo.FilterMap(lines, func(line Line, _ int) (string, bool) {
		text := strings.TrimSpace(line.Text)
		return text, utf8.RuneCountInString(text) > 1
	}), nil
}

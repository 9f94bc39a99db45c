// Package debugdump 把每次截图切出的区域保存为 PNG，并在图片下方绘制识别出的文字，便于排查几何与识别问题
package debugdump

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontSize    = 14
	lineSpacing = 20
	padding     = 6
)

// Band 一个待保存的区域
type Band struct {
	// Name 文件名后缀，例如 info / stat0 / set
	Name  string
	Image image.Image
	// Lines 该区域识别出的文字
	Lines []string
}

// Writer 调试图片输出目录，每个扫描会话一个子目录
type Writer struct {
	dir  string
	font *truetype.Font
	mu   sync.Mutex
}

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return parsedFont, fontErr
}

// New 在 baseDir/sessionID 下创建输出目录
func New(baseDir, sessionID string) (*Writer, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	dir := filepath.Join(baseDir, sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建调试目录失败: %w", err)
	}
	return &Writer{dir: dir, font: f}, nil
}

// Dir 输出目录
func (w *Writer) Dir() string {
	return w.dir
}

// Dump 保存第 index 次截图的所有区域
func (w *Writer) Dump(index int, bands []Band) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, b := range bands {
		if b.Image == nil {
			continue
		}
		path := filepath.Join(w.dir, fmt.Sprintf("%03d_%s.png", index, b.Name))
		if err := imaging.Save(w.annotate(b), path); err != nil {
			return fmt.Errorf("保存调试图片 %s 失败: %w", path, err)
		}
	}
	return nil
}

// annotate 在区域图片下方追加白底文字区
func (w *Writer) annotate(b Band) *image.RGBA {
	src := b.Image.Bounds()
	textHeight := padding*2 + lineSpacing*max(len(b.Lines), 1)

	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()+textHeight))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, src.Dx(), src.Dy()), b.Image, src.Min, draw.Src)

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(w.font)
	c.SetFontSize(fontSize)
	c.SetClip(out.Bounds())
	c.SetDst(out)
	c.SetHinting(font.HintingFull)

	lines := b.Lines
	if len(lines) == 0 {
		c.SetSrc(image.NewUniform(color.RGBA{R: 200, A: 255}))
		lines = []string{"<empty>"}
	} else {
		c.SetSrc(image.NewUniform(color.Black))
	}

	for i, line := range lines {
		pt := freetype.Pt(padding, src.Dy()+padding+lineSpacing*(i+1)-4)
		// 字体缺字时跳过该行
		_, _ = c.DrawString(line, pt)
	}
	return out
}

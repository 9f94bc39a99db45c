package cv

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Locator 锚点定位器，缓存已解码的灰度模板，在多次截图之间复用
//
// 匹配使用平方差 (TM_SQDIFF)，结果为全局最小值的位置。不设置置信度阈值，
// 锚点不在画面中时仍会返回一个位置。
type Locator struct {
	mu       sync.Mutex
	template gocv.Mat
}

// NewLocator 从 image.Image 创建定位器
func NewLocator(template image.Image) (*Locator, error) {
	gray, err := ImageToGray(template)
	if err != nil {
		return nil, err
	}
	return &Locator{template: gray}, nil
}

// LoadLocator 从模板图片文件创建定位器
func LoadLocator(path string) (*Locator, error) {
	gray, err := ReadImageGray(path)
	if err != nil {
		return nil, err
	}
	return &Locator{template: gray}, nil
}

// Size 模板尺寸
func (l *Locator) Size() image.Point {
	return image.Pt(l.template.Cols(), l.template.Rows())
}

// Locate 返回模板在截图中最匹配位置的左上角坐标
func (l *Locator) Locate(full image.Image) (image.Point, error) {
	match, err := l.Match(full)
	if err != nil {
		return image.Point{}, err
	}
	return match.Location, nil
}

// Match 在截图中查找模板，返回带平方差分数的结果
func (l *Locator) Match(full image.Image) (*AnchorMatch, error) {
	startTime := time.Now()

	source, err := ImageToGray(full)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := checkSourceLargerThanSearch(source, l.template); err != nil {
		return nil, err
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(source, l.template, &result, gocv.TmSqdiff, mask)

	minVal, _, minLoc, _ := gocv.MinMaxLoc(result)

	return &AnchorMatch{
		Location: minLoc,
		Score:    float64(minVal),
		Time:     float64(time.Since(startTime).Milliseconds()),
	}, nil
}

// Close 释放模板
func (l *Locator) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.template.Close()
}

// LocateAnchor 一次性定位：在 full 中查找 template 的左上角坐标
func LocateAnchor(full, template image.Image) (image.Point, error) {
	locator, err := NewLocator(template)
	if err != nil {
		return image.Point{}, err
	}
	defer locator.Close()
	return locator.Locate(full)
}

// checkSourceLargerThanSearch 检查源图像是否大于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}

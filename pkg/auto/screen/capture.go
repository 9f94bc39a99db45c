// Package screen 提供屏幕截图和图片读写功能
package screen

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-vgo/robotgo"
)

// CaptureScreen 截取主显示器全屏
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// GetScreenSize 获取主显示器尺寸
func GetScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// LoadImage 读取图片文件（png / jpeg 等）
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	return img, nil
}

// SaveImage 保存图片，格式由扩展名决定
func SaveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("保存图片失败: %w", err)
	}
	return nil
}

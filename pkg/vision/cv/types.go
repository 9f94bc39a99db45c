package cv

import (
	"fmt"
	"image"
)

// AnchorMatch 锚点匹配结果
type AnchorMatch struct {
	// Location 模板左上角在源图中的坐标
	Location image.Point `json:"location"`
	// Score 平方差，越小越相似，0 表示完全一致
	Score float64 `json:"score"`
	// Time 匹配耗时（毫秒）
	Time float64 `json:"time,omitempty"`
}

// ImageSizeError 图像尺寸错误
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("搜索图像尺寸大于源图像: 源 %dx%d, 模板 %dx%d",
		e.SourceSize[0], e.SourceSize[1], e.SearchSize[0], e.SearchSize[1])
}

package cv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FrameDifference 计算两帧灰度图的平均绝对差，归一化到 [0, 1]
//
// 0 表示两帧完全相同。两帧尺寸不同时返回错误。
func FrameDifference(a, b image.Image) (float64, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return 0, fmt.Errorf("画面尺寸不一致: %v / %v", a.Bounds().Size(), b.Bounds().Size())
	}

	grayA, err := ImageToGray(a)
	if err != nil {
		return 0, err
	}
	defer grayA.Close()

	grayB, err := ImageToGray(b)
	if err != nil {
		return 0, err
	}
	defer grayB.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(grayA, grayB, &diff)

	return diff.Mean().Val1 / 255.0, nil
}

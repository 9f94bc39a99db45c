// Package cv 提供基于 OpenCV 的图像定位功能
//
// 支持以下功能:
//   - 锚点定位：平方差 (SSD) 模板匹配，取全局最小值位置
//   - 画面差异：计算两帧灰度图的平均绝对差，用于判断界面是否稳定
//
// 基本用法:
//
//	locator, err := cv.LoadLocator("data/anchor.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer locator.Close()
//
//	pos, err := locator.Locate(screenshot)
//	fmt.Printf("锚点位置: (%d, %d)\n", pos.X, pos.Y)
package cv

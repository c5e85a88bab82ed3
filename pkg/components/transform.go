package components

import "github.com/decker502/giftbox/pkg/vmath"

// TransformComponent 三维空间中的位置、旋转和统一缩放
//
// 旋转为欧拉角（弧度），应用顺序为先 X 后 Y。
type TransformComponent struct {
	Position vmath.Vec3
	Rotation vmath.Vec3
	Scale    float64 // 1.0 为原始大小
}

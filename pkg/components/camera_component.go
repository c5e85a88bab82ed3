package components

// CameraComponent 轨道相机状态
// 相机绕目标点旋转，球坐标由 Azimuth / Elevation / Distance 描述。
type CameraComponent struct {
	// Distance 相机到目标点的水平距离（沿视线在 XZ 平面上的投影）
	Distance float64

	// Height 相机高度
	Height float64

	// Azimuth 方位角（弧度），0 表示位于 +Z 方向
	Azimuth float64

	// MinDistance / MaxDistance 缩放范围
	MinDistance float64
	MaxDistance float64

	// AutoRotate 是否自动环绕，用户拖动后关闭
	AutoRotate bool

	// AutoRotateSpeed 每参考帧的方位角增量（弧度）
	AutoRotateSpeed float64

	// ZoomOverride 打开动画接管相机距离时为 true，拖动缩放暂停
	ZoomOverride bool

	// Dragging 当前是否在拖动
	Dragging bool

	// LastX / LastY 上一帧拖动位置
	LastX float64
	LastY float64

	// Velocity 拖动结束后的阻尼角速度（每参考帧）
	Velocity float64

	// Damping 每参考帧保留的角速度比例
	Damping float64
}

package config

// 布局配置常量
// 三维场景使用世界单位，屏幕布局使用逻辑像素（由 Ebitengine 负责缩放）

const (
	// GameWindowWidth 桌面端初始窗口宽度
	GameWindowWidth = 960

	// GameWindowHeight 桌面端初始窗口高度
	GameWindowHeight = 540

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Happy Birthday"
)

// 礼盒几何（世界单位）
const (
	// BoxSize 盒身边长
	BoxSize = 2.5

	// LidWidth 盒盖宽度（略大于盒身）
	LidWidth = 2.65

	// LidHeight 盒盖厚度
	LidHeight = 0.4

	// LidRestY 盒盖静止时的中心高度
	LidRestY = 1.45

	// LidRiseHeight 打开时盒盖上升高度
	LidRiseHeight = 4.0

	// LidSlideBack 打开时盒盖向后滑动距离
	LidSlideBack = 2.0

	// CameraStartDistance 镜头初始距离（水平半径）
	CameraStartDistance = 10.0

	// CameraStartHeight 镜头初始高度
	CameraStartHeight = 3.0

	// CameraZoomAmount 打开时镜头拉近距离
	CameraZoomAmount = 3.0

	// CameraMinDistance / CameraMaxDistance 拖拽与缩放限制
	CameraMinDistance = 5.0
	CameraMaxDistance = 15.0

	// CameraFOV 垂直视角（度）
	CameraFOV = 50.0

	// FogNear / FogFar 雾效起止距离
	FogNear = 10.0
	FogFar  = 50.0
)

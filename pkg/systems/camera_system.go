package systems

import (
	"math"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/stage"
	"github.com/decker502/giftbox/pkg/utils"
	"github.com/decker502/giftbox/pkg/vmath"
)

const (
	// AutoRotateSpeed 自动环绕速度（2π/60/60·0.5 弧度/帧，约 120 秒一圈）
	AutoRotateSpeed = 2 * math.Pi / 60 / 60 * 0.5

	// CameraDragSpeed 水平拖动每像素旋转的弧度
	CameraDragSpeed = 0.005
	// CameraLiftSpeed 垂直拖动每像素改变的高度
	CameraLiftSpeed = 0.02
	// CameraMinHeight / CameraMaxHeight 高度范围
	CameraMinHeight = -2.0
	CameraMaxHeight = 10.0
	// CameraWheelStep 滚轮每格改变的距离
	CameraWheelStep = 0.5
	// CameraPinchStep 双指间距每像素改变的距离
	CameraPinchStep = 0.02
	// CameraDamping 松手后每帧保留的角速度比例
	CameraDamping = 0.95
)

// DragSource 拖拽增量来源
type DragSource interface {
	DragDelta() (dx, dy int, dragging bool)
}

// CameraSystem 轨道相机：自动环绕、拖动旋转、滚轮和双指缩放
// 打开动画期间距离由 SetZoomDistance 接管，ReleaseZoom 后恢复手动缩放。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	camera        *stage.Camera
	cameraEntity  ecs.EntityID
	drag          DragSource
	input         utils.PointerInput
}

// NewCameraSystem 创建相机系统
// drag 和 input 可为 nil（仅自动环绕）
func NewCameraSystem(em *ecs.EntityManager, camera *stage.Camera, drag DragSource, input utils.PointerInput) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		camera:        camera,
		drag:          drag,
		input:         input,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Distance:        config.CameraStartDistance,
		Height:          config.CameraStartHeight,
		MinDistance:     config.CameraMinDistance,
		MaxDistance:     config.CameraMaxDistance,
		AutoRotate:      true,
		AutoRotateSpeed: AutoRotateSpeed,
		Damping:         CameraDamping,
	})
	cs.apply()

	return cs
}

func (cs *CameraSystem) component() *components.CameraComponent {
	comp, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return comp
}

// Update 更新相机位置
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.component()
	if cam == nil {
		return
	}
	k := frames(dt)

	dragging := false
	if cs.drag != nil {
		dx, dy, active := cs.drag.DragDelta()
		if active {
			dragging = true
			if cam.AutoRotate {
				// 用户开始交互后停止自动环绕
				cam.AutoRotate = false
			}
			cam.Velocity = -float64(dx) * CameraDragSpeed
			cam.Azimuth += cam.Velocity
			cam.Height = clamp(cam.Height+float64(dy)*CameraLiftSpeed, CameraMinHeight, CameraMaxHeight)
		}
	}
	cam.Dragging = dragging

	if !dragging && cam.Velocity != 0 {
		cam.Azimuth += cam.Velocity * k
		cam.Velocity *= math.Pow(cam.Damping, k)
		if math.Abs(cam.Velocity) < 1e-5 {
			cam.Velocity = 0
		}
	}

	if cam.AutoRotate {
		cam.Azimuth += cam.AutoRotateSpeed * k
	}

	if cs.input != nil && !cam.ZoomOverride {
		zoom := cs.input.Wheel() * CameraWheelStep
		if pinch, ok := cs.input.(utils.PinchInput); ok {
			zoom += pinch.Pinch() * CameraPinchStep
		}
		if zoom != 0 {
			cam.Distance = clamp(cam.Distance-zoom, cam.MinDistance, cam.MaxDistance)
		}
	}

	cs.apply()
}

// SetDragSource 设置拖拽来源（交互系统创建晚于相机时使用）
func (cs *CameraSystem) SetDragSource(drag DragSource) {
	cs.drag = drag
}

// SetZoomDistance 打开动画设置相机距离
func (cs *CameraSystem) SetZoomDistance(d float64) {
	cam := cs.component()
	if cam == nil {
		return
	}
	cam.ZoomOverride = true
	cam.Distance = d
	cs.apply()
}

// ReleaseZoom 打开动画结束，距离交还给滚轮和双指缩放
func (cs *CameraSystem) ReleaseZoom() {
	if cam := cs.component(); cam != nil {
		cam.ZoomOverride = false
	}
}

// Distance 当前相机距离
func (cs *CameraSystem) Distance() float64 {
	if cam := cs.component(); cam != nil {
		return cam.Distance
	}
	return 0
}

// Azimuth 当前方位角
func (cs *CameraSystem) Azimuth() float64 {
	if cam := cs.component(); cam != nil {
		return cam.Azimuth
	}
	return 0
}

// IsAutoRotating 是否在自动环绕
func (cs *CameraSystem) IsAutoRotating() bool {
	cam := cs.component()
	return cam != nil && cam.AutoRotate
}

// apply 把轨道参数写入舞台相机
func (cs *CameraSystem) apply() {
	cam := cs.component()
	if cam == nil || cs.camera == nil {
		return
	}
	sin, cos := math.Sincos(cam.Azimuth)
	cs.camera.Position = vmath.Vec3{
		X: sin * cam.Distance,
		Y: cam.Height,
		Z: cos * cam.Distance,
	}
	cs.camera.Target = vmath.Vec3{}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

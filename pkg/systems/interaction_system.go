package systems

import (
	"log"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/media"
	"github.com/decker502/giftbox/pkg/stage"
	"github.com/decker502/giftbox/pkg/utils"
	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
)

// CursorSetter 鼠标指针形状
// 用于依赖注入，支持测试时 mock
type CursorSetter interface {
	SetCursorShape(shape ebiten.CursorShapeType)
}

// EbitenCursor Ebitengine 默认实现
type EbitenCursor struct{}

func (EbitenCursor) SetCursorShape(shape ebiten.CursorShapeType) {
	ebiten.SetCursorShape(shape)
}

// Opener 打开动画的触发入口
type Opener interface {
	Trigger() bool
}

// InteractionSystem 礼盒的悬停与点击
//
// 职责：
//   - 每帧读取指针位置，移动时对盒身和盒盖做射线拾取，更新 Hovered 和指针形状
//   - 轻点（按下到释放移动不超过 TapSlop）时重新拾取，命中则触发打开动画
//   - 对外提供拖拽增量，供相机环绕使用
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	stage         *stage.Stage
	boxEntity     ecs.EntityID
	lidEntity     ecs.EntityID

	input   utils.PointerInput
	cursor  CursorSetter
	opener  Opener
	haptics media.Haptics
	tracker *utils.DragTracker

	lastX, lastY int
	hasLast      bool
	cursorShape  ebiten.CursorShapeType
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, st *stage.Stage, box, lid ecs.EntityID, opener Opener, haptics media.Haptics) *InteractionSystem {
	return NewInteractionSystemWithInput(em, st, box, lid, opener, haptics, utils.NewEbitenPointer(), EbitenCursor{})
}

// NewInteractionSystemWithInput 创建带自定义输入的交互系统（用于测试）
func NewInteractionSystemWithInput(em *ecs.EntityManager, st *stage.Stage, box, lid ecs.EntityID, opener Opener, haptics media.Haptics, input utils.PointerInput, cursor CursorSetter) *InteractionSystem {
	if haptics == nil {
		haptics = media.NoHaptics{}
	}
	return &InteractionSystem{
		entityManager: em,
		stage:         st,
		boxEntity:     box,
		lidEntity:     lid,
		input:         input,
		cursor:        cursor,
		opener:        opener,
		haptics:       haptics,
		tracker:       utils.NewDragTracker(),
		cursorShape:   ebiten.CursorShapeDefault,
	}
}

// Update 轮询指针输入
func (s *InteractionSystem) Update(dt float64) {
	if s.input == nil {
		return
	}
	x, y := s.input.Position()
	s.tracker.Update(s.input.IsPressed(), x, y)

	if !s.hasLast || x != s.lastX || y != s.lastY {
		s.hasLast = true
		s.lastX, s.lastY = x, y
		s.OnPointerMove(x, y)
	}

	if s.tracker.IsTap() {
		s.OnClick(x, y)
	}
}

func (s *InteractionSystem) state() *components.InteractionComponent {
	ic, _ := ecs.GetComponent[*components.InteractionComponent](s.entityManager, s.boxEntity)
	return ic
}

// OnPointerMove 未打开时更新悬停状态和指针形状
func (s *InteractionSystem) OnPointerMove(x, y int) {
	ic := s.state()
	if ic == nil || ic.IsOpened {
		return
	}

	hit := s.HitTest(x, y)
	if hit != ic.Hovered {
		log.Printf("[InteractionSystem] Hovered: %v", hit)
	}
	ic.Hovered = hit

	if hit && !ic.IsOpening {
		s.setCursor(ebiten.CursorShapePointer)
	} else {
		s.setCursor(ebiten.CursorShapeDefault)
	}
}

// OnClick 命中且尚未打开时触发打开动画，返回是否触发
func (s *InteractionSystem) OnClick(x, y int) bool {
	ic := s.state()
	if ic == nil || ic.IsOpening || ic.IsOpened {
		return false
	}
	if !s.HitTest(x, y) {
		return false
	}

	log.Printf("[InteractionSystem] Gift clicked at (%d, %d)", x, y)
	s.haptics.Tap()
	s.setCursor(ebiten.CursorShapeDefault)
	if s.opener == nil {
		return false
	}
	return s.opener.Trigger()
}

// HitTest 对盒身和盒盖做射线拾取
func (s *InteractionSystem) HitTest(x, y int) bool {
	if s.stage == nil {
		return false
	}
	targets := make([]vmath.AABB, 0, 2)
	for _, id := range []ecs.EntityID{s.boxEntity, s.lidEntity} {
		if p, ok := ecs.GetComponent[*components.PickableComponent](s.entityManager, id); ok && !p.IsEnabled {
			continue
		}
		if box, ok := MeshBox(s.entityManager, id); ok {
			targets = append(targets, box.Bounds())
		}
	}
	if len(targets) == 0 {
		return false
	}
	_, hit := s.stage.PickScreen(float64(x), float64(y), targets...)
	return hit
}

// DragDelta 返回本帧拖拽增量
func (s *InteractionSystem) DragDelta() (dx, dy int, dragging bool) {
	if !s.tracker.IsDragging() {
		return 0, 0, false
	}
	info := s.tracker.GetInfo()
	return info.DeltaX, info.DeltaY, true
}

func (s *InteractionSystem) setCursor(shape ebiten.CursorShapeType) {
	if s.cursor == nil || shape == s.cursorShape {
		return
	}
	s.cursorShape = shape
	s.cursor.SetCursorShape(shape)
}

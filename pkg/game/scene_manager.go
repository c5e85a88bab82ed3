package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which section of the page is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string

	// 已注册的场景：名称 -> 场景
	scenes map[string]Scene
	// 注册顺序，用于稳定地广播尺寸变化
	order []string

	width, height int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Register + Show or SwitchTo to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[string]Scene),
	}
}

// Register 以名称注册场景，同名场景会被替换
func (sm *SceneManager) Register(name string, scene Scene) {
	if _, exists := sm.scenes[name]; !exists {
		sm.order = append(sm.order, name)
	}
	sm.scenes[name] = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.OnResize(sm.width, sm.height)
	}
}

// Show 切换到已注册的场景，名称未注册时返回 false
func (sm *SceneManager) Show(name string) bool {
	scene, ok := sm.scenes[name]
	if !ok {
		log.Printf("[SceneManager] Warning: unknown scene %q", name)
		return false
	}
	if sm.currentName != name {
		log.Printf("[SceneManager] Show: %s → %s", sm.currentName, name)
	}
	sm.currentScene = scene
	sm.currentName = name
	return true
}

// SwitchTo changes the active scene to the provided (possibly unregistered) scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.currentName = ""
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景的注册名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Resize 把新的逻辑尺寸广播给所有实现 Resizable 的场景
// 尺寸未变化时不做任何事
func (sm *SceneManager) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == sm.width && height == sm.height) {
		return
	}
	sm.width, sm.height = width, height
	for _, name := range sm.order {
		if r, ok := sm.scenes[name].(Resizable); ok {
			r.OnResize(width, height)
		}
	}
	if _, registered := sm.scenes[sm.currentName]; !registered {
		if r, ok := sm.currentScene.(Resizable); ok {
			r.OnResize(width, height)
		}
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

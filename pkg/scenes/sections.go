package scenes

import (
	"github.com/decker502/giftbox/pkg/game"
)

// Sections 把页面区块切换映射到 SceneManager
type Sections struct {
	manager *game.SceneManager
	gift    *GiftScene
}

// NewSections 创建区块切换器，gift 可为 nil
func NewSections(manager *game.SceneManager, gift *GiftScene) *Sections {
	return &Sections{manager: manager, gift: gift}
}

// ShowVideo 显示视频区块
func (s *Sections) ShowVideo() {
	s.manager.Show(SectionVideo)
}

// ShowGift 显示礼盒区块
func (s *Sections) ShowGift() {
	s.manager.Show(SectionGift)
}

// ScrollToGift 礼盒区块进入视口
func (s *Sections) ScrollToGift() {
	if s.gift != nil {
		s.gift.ScrollIntoView()
	}
}

package components

// InteractionComponent 礼盒的交互状态
//
// 只能沿 未打开 → 打开中 → 已打开 单向推进。
type InteractionComponent struct {
	Hovered   bool
	IsOpening bool
	IsOpened  bool
}

package components

// PickableComponent 标记实体可以被射线拾取
// 拾取盒为 MeshComponent 的包围盒乘以缩放
type PickableComponent struct {
	IsEnabled bool // 打开后禁用
}

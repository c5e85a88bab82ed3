package components

// FadeComponent 随可见标志渐变的透明度（说明文字、信件面板）
type FadeComponent struct {
	Visible  bool
	Alpha    float64 // 当前透明度 [0,1]
	Duration float64 // 从 0 到 1 的秒数
}

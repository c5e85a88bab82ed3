//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建不需要 mobile/data，入口代码只在 -tags mobile 时编译。
package mobile

// Dummy 空导出函数，使包在桌面构建中也能被引用
func Dummy() {}

//go:build js

package config

import "syscall/js"

// platformIsMobile 读取 navigator.userAgent
func platformIsMobile() bool {
	if mobileBuild {
		return true
	}
	navigator := js.Global().Get("navigator")
	if navigator.IsUndefined() || navigator.IsNull() {
		return false
	}
	ua := navigator.Get("userAgent")
	if ua.Type() != js.TypeString {
		return false
	}
	return IsMobileUserAgent(ua.String())
}

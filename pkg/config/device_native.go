//go:build !js

package config

import (
	"os"
	"runtime"
)

// MobileEmulateEnv 设置为 "1" 时桌面端也按移动设备档位运行（用于本地调试）
const MobileEmulateEnv = "GIFTBOX_MOBILE_EMULATE"

func platformIsMobile() bool {
	if mobileBuild || runtime.GOOS == "android" || runtime.GOOS == "ios" {
		return true
	}
	return os.Getenv(MobileEmulateEnv) == "1"
}

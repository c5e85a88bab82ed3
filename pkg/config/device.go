package config

import (
	"log"
	"regexp"
)

// DeviceClass 粗粒度设备类型
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
)

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileUserAgent 判断浏览器 User-Agent 是否属于移动设备
func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}

// DetectDeviceClass 启动时检测一次设备类型
//
// -tags mobile 构建、Android/iOS 以及移动浏览器（wasm）返回 DeviceMobile。
func DetectDeviceClass() DeviceClass {
	if platformIsMobile() {
		log.Printf("[Config] Device class: mobile")
		return DeviceMobile
	}
	log.Printf("[Config] Device class: desktop")
	return DeviceDesktop
}

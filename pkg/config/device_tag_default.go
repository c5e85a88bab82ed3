//go:build !mobile

package config

const mobileBuild = false

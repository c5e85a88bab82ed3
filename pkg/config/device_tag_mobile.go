//go:build mobile

package config

const mobileBuild = true

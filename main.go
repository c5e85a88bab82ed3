package main

import (
	"flag"
	"log"

	"github.com/decker502/giftbox/pkg/app"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag     = flag.String("config", "", "Path to a giftbox.yaml overriding the embedded config")
	musicFlag      = flag.String("music", "", "Background music file (mp3, ogg or wav)")
	mobileFlag     = flag.Bool("mobile", false, "Force the mobile device profile")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		MusicPath:  *musicFlag,
	}
	if *mobileFlag {
		cfg.Device = config.DeviceMobile
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreenFlag)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

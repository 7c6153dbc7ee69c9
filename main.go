package main

import (
	"github.com/benbjohnson/clock"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jerripat/CoinMarketCap/internal/cmc"
	"github.com/jerripat/CoinMarketCap/internal/config"
	"github.com/jerripat/CoinMarketCap/internal/ui"
)

const glyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:%$-^v()_ "

const baseFontSize = 12

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("Using API key %s, convert=%s", cfg.MaskedKey(), cfg.Convert)

	client := cmc.New(cfg)

	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Crypto Listings (CoinMarketCap)")

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	fontFace, err := esset.GetFont(goregular.TTF, int(baseFontSize*deviceScale))
	if err != nil {
		logrus.Fatalf("Font could not be loaded with scaled size %f: %v", baseFontSize*deviceScale, err)
	}

	// Warm the glyph cache so the first frame doesn't stutter.
	tempImage := ebiten.NewImage(1, 1)
	text.Draw(tempImage, glyphsToPreload, fontFace, &text.DrawOptions{})

	g := ui.New(cfg, client, clock.New(), fontFace, deviceScale)
	defer g.Scheduler().Stop()

	if err := ebiten.RunGame(g); err != nil {
		logrus.Fatal(err)
	}
}

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/leocode09/camera/pkg/camera"
	"github.com/leocode09/camera/pkg/config"
	"github.com/leocode09/camera/pkg/session"
	"github.com/leocode09/camera/pkg/ui"
)

func main() {
	configPath := flag.String("config", "camview.yaml", "path to the YAML configuration file")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}
	if level, perr := logrus.ParseLevel(cfg.LogLevel); perr == nil {
		log.SetLevel(level)
	}

	myApp := app.New()
	window := myApp.NewWindow("Camview")

	sess := session.New(camera.NewVideoService(), camera.Preset(cfg.Preset), log)
	defer sess.Close()

	// Bridge toolkit foreground/background callbacks into the session's
	// lifecycle channel.
	events := session.NewBroadcaster()
	sess.Listen(events)
	lc := myApp.Lifecycle()
	lc.SetOnExitedForeground(func() { events.Publish(session.EventInactive) })
	lc.SetOnEnteredForeground(func() { events.Publish(session.EventResumed) })

	saveDir, err := os.Getwd()
	if err != nil {
		saveDir = "."
	}
	screen := ui.NewScreen(sess, cfg.ThumbnailWidth, saveDir, log)
	sess.SetOnChange(screen.Apply)

	go startSession(sess, cfg, log)

	stop := screen.RunPreviewLoop(cfg.FrameInterval())
	defer stop()

	window.SetContent(screen.Content())
	window.Resize(fyne.NewSize(960, 600))
	window.ShowAndRun()
}

// startSession enumerates devices and brings up the first camera, honoring a
// configured start device when it is present in the enumeration.
func startSession(sess *session.Session, cfg *config.Config, log *logrus.Logger) {
	if err := sess.Start(camera.NewSystemRegistry()); err != nil {
		// Already surfaced in the session snapshot; nothing more to do here.
		return
	}
	if cfg.StartDevice == "" {
		return
	}
	snap := sess.Snapshot()
	for i, dev := range snap.Devices {
		if dev.ID == cfg.StartDevice {
			if i != snap.Selected {
				sess.Initialize(i)
			}
			return
		}
	}
	log.WithField("device", cfg.StartDevice).Warn("configured start device not found")
}

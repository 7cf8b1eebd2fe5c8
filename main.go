// Package main provides the entry point for the One Sentence OCR application.
package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"sentence-ocr/internal/app"
	"sentence-ocr/internal/config"
	"sentence-ocr/internal/hotkey"
	"sentence-ocr/internal/ocr"
	"sentence-ocr/internal/recognize"
	"sentence-ocr/internal/version"
	"sentence-ocr/ui/mainwindow"
)

const appTitle = "One Sentence OCR"

// autosaveInterval bounds how much settings churn an unclean exit can lose.
const autosaveInterval = 30 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	state := app.NewState(config.DefaultPath())
	cfg := state.Snapshot()

	// A missing Tesseract installation must not keep the tray from
	// starting; fall back to an engine that retries construction on
	// every capture and reports the failure in the status bar.
	engine, engineErr := ocr.New(cfg.Options.Engine, cfg.Options.TesseractPath)
	if engineErr != nil {
		log.Printf("OCR engine unavailable: %v", engineErr)
		engine = ocr.NewLazy(func() (ocr.Engine, error) {
			return ocr.New(cfg.Options.Engine, cfg.Options.TesseractPath)
		})
	}
	defer engine.Close()

	worker := recognize.NewWorker(recognize.New(engine), func(res recognize.Result) {
		if res.Err != nil {
			log.Printf("recognition failed: %v", res.Err)
			state.Emit(app.EventRecognitionFailed, res)
			return
		}
		state.Emit(app.EventRecognitionDone, res)
	})

	fyneApp := fyneapp.NewWithID("dev.sentence-ocr")
	win := mainwindow.New(fyneApp, state, worker)
	setupTray(fyneApp, win)

	hotkeys := hotkey.NewManager(win.StartCapture)
	if err := hotkeys.Bind(cfg.Options.Hotkey); err != nil {
		log.Printf("Global hotkey %q unavailable: %v", cfg.Options.Hotkey, err)
	} else {
		log.Printf("Global hotkey: %s", cfg.Options.Hotkey)
	}
	defer hotkeys.Stop()
	win.SetHotkeyApplier(hotkeys.Bind)

	autosaver := app.NewAutosaver(state, autosaveInterval)
	autosaver.Start()
	defer autosaver.Stop()

	if engineErr != nil {
		state.Emit(app.EventStatus,
			"OCR engine unavailable. Install Tesseract or set engine/tesseract_path in "+config.DefaultPath())
	}

	win.Show()
	fyneApp.Run()
}

// setupTray installs the tray menu on desktops that support one. Fyne
// appends its own Quit entry.
func setupTray(fyneApp fyne.App, win *mainwindow.MainWindow) {
	desk, ok := fyneApp.(desktop.App)
	if !ok {
		log.Println("System tray not supported on this desktop")
		return
	}
	desk.SetSystemTrayMenu(fyne.NewMenu(appTitle,
		fyne.NewMenuItem("Show Window", func() {
			win.Show()
			win.RequestFocus()
		}),
		fyne.NewMenuItem("New Capture", win.StartCapture),
	))
	desk.SetSystemTrayIcon(theme.DocumentIcon())
}

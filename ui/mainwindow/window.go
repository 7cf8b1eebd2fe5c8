// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sentence-ocr/internal/app"
	"sentence-ocr/internal/config"
	"sentence-ocr/internal/hotkey"
	"sentence-ocr/internal/ocr"
	"sentence-ocr/internal/recognize"
	"sentence-ocr/internal/version"
	"sentence-ocr/pkg/geometry"
	"sentence-ocr/ui/overlay"
)

// languagePresets are the language codes offered in the menu. The
// composable "+" form combines dictionaries, e.g. Chinese plus English.
var languagePresets = []string{
	"eng",
	"chi_sim",
	"chi_sim+eng",
	"chi_tra",
	"chi_tra+eng",
	"jpn",
	"jpn+eng",
	"kor",
	"deu",
	"fra",
}

// MainWindow is the primary application window: the recognized text,
// capture controls, and a status line.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	worker *recognize.Worker

	output    *widget.Entry
	copyBtn   *widget.Button
	statusBar *widget.Label

	removeNewlinesItem *fyne.MenuItem
	forceBracketsItem  *fyne.MenuItem
	languageItems      map[string]*fyne.MenuItem

	applyHotkey func(combo string) error
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, worker *recognize.Worker) *MainWindow {
	win := fyneApp.NewWindow("One Sentence OCR")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		worker: worker,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreGeometry()

	// Closing the window minimizes to the tray; quitting is explicit.
	win.SetCloseIntercept(func() {
		mw.persistGeometry()
		mw.Hide()
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.output = widget.NewMultiLineEntry()
	mw.output.Wrapping = fyne.TextWrapWord
	mw.output.SetPlaceHolder("Recognized text will appear here...")

	mw.copyBtn = widget.NewButton("Copy to Clipboard", mw.onCopy)
	mw.copyBtn.Disable()

	captureBtn := widget.NewButton("New Capture", mw.StartCapture)
	hideBtn := widget.NewButton("Minimize to Tray", func() {
		mw.persistGeometry()
		mw.Hide()
	})

	mw.statusBar = widget.NewLabel("Ready")

	buttons := container.NewVBox(mw.copyBtn, captureBtn, hideBtn)
	content := container.NewBorder(
		nil,                                      // top
		container.NewVBox(buttons, mw.statusBar), // bottom
		nil,                                      // left
		nil,                                      // right
		mw.output,                                // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	opts := mw.state.Options()

	mw.removeNewlinesItem = fyne.NewMenuItem("Remove Newlines", mw.onToggleRemoveNewlines)
	mw.removeNewlinesItem.Checked = opts.RemoveNewlines
	mw.forceBracketsItem = fyne.NewMenuItem("ASCII Punctuation", mw.onToggleForceBrackets)
	mw.forceBracketsItem.Checked = opts.ForceBrackets

	mw.languageItems = make(map[string]*fyne.MenuItem, len(languagePresets))
	langItems := make([]*fyne.MenuItem, 0, len(languagePresets))
	for _, lang := range languagePresets {
		lang := lang
		item := fyne.NewMenuItem(lang, func() { mw.onSelectLanguage(lang) })
		item.Checked = lang == opts.Language
		mw.languageItems[lang] = item
		langItems = append(langItems, item)
	}
	languageMenu := fyne.NewMenuItem("Language", nil)
	languageMenu.ChildMenu = fyne.NewMenu("", langItems...)

	captureMenu := fyne.NewMenu("Capture",
		fyne.NewMenuItem("New Capture", mw.StartCapture),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.persistGeometry()
			mw.app.Quit()
		}),
	)

	settingsMenu := fyne.NewMenu("Settings",
		mw.removeNewlinesItem,
		mw.forceBracketsItem,
		fyne.NewMenuItemSeparator(),
		languageMenu,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Change Hotkey...", mw.onChangeHotkey),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(captureMenu, settingsMenu, helpMenu))
}

// setupEventHandlers registers for application events. Recognition
// events arrive on the worker goroutine; Fyne accepts widget updates
// from secondary goroutines, so handlers update widgets directly.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.updateStatus(text)
		}
	})

	mw.state.On(app.EventRecognitionDone, func(data interface{}) {
		res, ok := data.(recognize.Result)
		if !ok {
			return
		}
		mw.showResult(res.Text)
	})

	mw.state.On(app.EventRecognitionFailed, func(data interface{}) {
		res, ok := data.(recognize.Result)
		if !ok {
			return
		}
		mw.updateStatus(describeFailure(res.Err))
		mw.Show()
	})
}

// StartCapture hides the window and opens the selection overlay. It is
// the single entry point shared by the hotkey, the tray menu, and the
// button.
func (mw *MainWindow) StartCapture() {
	if mw.worker.Busy() {
		mw.updateStatus("Recognition already in progress")
		return
	}
	mw.Hide()

	var suggested *geometry.RectInt
	if last, ok := mw.state.LastSelection(); ok {
		suggested = &last
	}

	err := overlay.Show(mw.app, suggested,
		func(region geometry.RectInt) {
			mw.state.SetSelection(region)
			mw.updateStatus("Recognizing...")
			if err := mw.worker.Submit(region, mw.state.Options()); err != nil {
				mw.updateStatus(describeFailure(err))
				mw.Show()
			}
		},
		func() {
			mw.updateStatus("Capture cancelled")
			mw.Show()
		})
	if err != nil {
		log.Printf("opening selection overlay: %v", err)
		mw.updateStatus(describeFailure(fmt.Errorf("%w: %v", recognize.ErrCaptureFailed, err)))
		mw.Show()
	}
}

// showResult displays recognized text and copies it to the clipboard.
func (mw *MainWindow) showResult(text string) {
	if text == "" {
		mw.updateStatus("No text detected")
		mw.Show()
		return
	}
	mw.output.SetText(text)
	mw.copyBtn.Enable()
	mw.Clipboard().SetContent(text)
	mw.updateStatus("Text copied to clipboard")
	mw.Show()
	mw.RequestFocus()
}

// Menu action handlers

func (mw *MainWindow) onCopy() {
	if text := mw.output.Text; text != "" {
		mw.Clipboard().SetContent(text)
		mw.updateStatus("Text copied to clipboard")
	}
}

func (mw *MainWindow) onToggleRemoveNewlines() {
	mw.state.UpdateOptions(func(o *config.Options) {
		o.RemoveNewlines = !o.RemoveNewlines
		mw.removeNewlinesItem.Checked = o.RemoveNewlines
	})
	mw.refreshMenus()
}

func (mw *MainWindow) onToggleForceBrackets() {
	mw.state.UpdateOptions(func(o *config.Options) {
		o.ForceBrackets = !o.ForceBrackets
		mw.forceBracketsItem.Checked = o.ForceBrackets
	})
	mw.refreshMenus()
}

func (mw *MainWindow) onSelectLanguage(lang string) {
	mw.state.UpdateOptions(func(o *config.Options) {
		o.Language = lang
	})
	for code, item := range mw.languageItems {
		item.Checked = code == lang
	}
	mw.refreshMenus()
	mw.updateStatus("Language: " + lang)
}

// SetHotkeyApplier installs the callback that re-registers the global
// capture hotkey. Without one, a change takes effect on the next start.
func (mw *MainWindow) SetHotkeyApplier(fn func(combo string) error) {
	mw.applyHotkey = fn
}

func (mw *MainWindow) onChangeHotkey() {
	entry := widget.NewEntry()
	entry.SetText(mw.state.Options().Hotkey)
	entry.SetPlaceHolder("e.g. ctrl+f12 or ctrl+shift+s")

	items := []*widget.FormItem{widget.NewFormItem("Hotkey", entry)}
	dialog.ShowForm("Change Hotkey", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		combo := strings.TrimSpace(entry.Text)
		if _, err := hotkey.Parse(combo); err != nil {
			mw.updateStatus("Invalid hotkey: " + err.Error())
			return
		}
		if mw.applyHotkey != nil {
			if err := mw.applyHotkey(combo); err != nil {
				mw.updateStatus("Could not register hotkey: " + err.Error())
				return
			}
			mw.updateStatus("Hotkey: " + combo)
		} else {
			mw.updateStatus("Hotkey saved; takes effect on next start")
		}
		mw.state.UpdateOptions(func(o *config.Options) {
			o.Hotkey = combo
		})
	}, mw.Window)
}

func (mw *MainWindow) onAbout() {
	mw.updateStatus(fmt.Sprintf("One Sentence OCR v%s (%s)", version.Version, version.GitCommit))
}

func (mw *MainWindow) refreshMenus() {
	if menu := mw.MainMenu(); menu != nil {
		mw.SetMainMenu(menu)
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// restoreGeometry applies the persisted window size. Fyne cannot
// reposition a window, so x/y are kept in the store untouched.
func (mw *MainWindow) restoreGeometry() {
	g := mw.state.Snapshot().Window
	if g.Width.Valid && g.Height.Valid {
		mw.Resize(fyne.NewSize(float32(g.Width.Value), float32(g.Height.Value)))
	} else {
		mw.Resize(fyne.NewSize(420, 300))
	}
}

// persistGeometry records the current window size for the next run.
func (mw *MainWindow) persistGeometry() {
	size := mw.Canvas().Size()
	g := mw.state.Snapshot().Window
	g.Width = config.Int(int(size.Width))
	g.Height = config.Int(int(size.Height))
	mw.state.SetWindowGeometry(g)
}

// describeFailure turns a recognition error into a status message with
// actionable guidance where possible.
func describeFailure(err error) string {
	switch {
	case errors.Is(err, ocr.ErrUnavailable):
		return "OCR engine unavailable. Install Tesseract or set engine/tesseract_path in the settings file."
	case errors.Is(err, ocr.ErrUnsupportedLanguage):
		return "Language data not installed. Install the Tesseract traineddata for the selected language."
	case errors.Is(err, recognize.ErrCaptureFailed):
		return "Screen capture failed: " + err.Error()
	case errors.Is(err, recognize.ErrBusy):
		return "Recognition already in progress"
	case err != nil:
		return "OCR failed: " + err.Error()
	default:
		return ""
	}
}

package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/boxdrop/common"
	"github.com/Carmen-Shannon/boxdrop/engine"
	"github.com/Carmen-Shannon/boxdrop/engine/config"
	"github.com/Carmen-Shannon/boxdrop/engine/renderer"
	"github.com/Carmen-Shannon/boxdrop/engine/store"
	"github.com/Carmen-Shannon/boxdrop/engine/watch"
	"github.com/Carmen-Shannon/boxdrop/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	textFile := flag.String("text-file", "", "file whose contents replace the text every time it is saved")
	profile := flag.Bool("profile", false, "log frame rate, memory and sequence stage")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[Main] %v", err)
		}
		cfg = loaded
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithMSAA(renderer.MSAA4x),
		renderer.WithClearColor(cfg.Background),
	)
	if err != nil {
		_ = win.Close()
		log.Fatalf("[Main] %v", err)
	}

	var textStore store.TextStore
	if cfg.Text.Persist {
		textStore = store.OpenTextStore("boxdrop")
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithConfig(cfg),
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithTextStore(textStore),
		engine.WithProfiling(*profile),
	)

	// ── Input ───────────────────────────────────────────────────────────
	var input editBuffer
	win.SetCharCallback(func(ch rune) {
		input.Insert(ch)
		win.SetTitle(input.Title(cfg.Window.Title))
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyF5:
			if !eng.Start() {
				log.Printf("[Main] sequence already running (%s)", eng.Stage())
			}
		case common.KeyF6:
			eng.Stop()
		case common.KeyBackspace:
			input.Backspace()
		case common.KeyEnter:
			if s, ok := input.Commit(); ok {
				eng.SetText(s)
			}
		}
		win.SetTitle(input.Title(cfg.Window.Title))
	})

	if *textFile != "" {
		w, err := watch.NewTextWatcher(*textFile, eng.SetText)
		if err != nil {
			log.Printf("[Main] not watching text file: %v", err)
		} else {
			defer w.Close()
		}
	}

	log.Println("Starting boxdrop: F5 start, F6 stop, type and press Enter to change the text")
	eng.Run()
}

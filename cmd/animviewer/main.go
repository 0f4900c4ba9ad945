package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/prefabs"
)

// readFirst tries the path as given and then the bundled prefabs.
func readFirst(bundled func(string) ([]byte, error)) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if data, err := os.ReadFile(name); err == nil {
			return data, nil
		}
		return bundled(name)
	}
}

func main() {
	store := OpenSettingsStore("spriteanim_viewer")
	settings, err := store.Load()
	if err != nil {
		log.Printf("%v", err)
	}

	document := flag.String("anim", settings.Document, "animation document (yaml)")
	clip := flag.String("clip", settings.Clip, "clip to start with")
	zoom := flag.Float64("zoom", settings.Zoom, "pixel zoom")
	count := flag.Int("count", settings.Count, "number of animated entities")
	script := flag.String("script", "", "tengo script run when a clip finishes")
	watch := flag.Bool("watch", true, "reload the document when it changes on disk")
	flag.Parse()

	settings.Document = *document
	settings.Clip = *clip
	settings.Zoom = *zoom
	settings.Count = *count

	lib := asset.NewLibrary()
	reloader := asset.NewReloader(lib, asset.NewLoader(readFirst(prefabs.Load)))
	h, err := reloader.Open(settings.Document)
	if err != nil {
		// The handle stays registered; a fixed document loads on save.
		log.Printf("viewer: %v", err)
	}

	scriptPath := ""
	if *script != "" {
		scriptPath = filepath.Clean(*script)
	}
	viewer := NewViewer(settings, lib, reloader, h, scriptPath)
	if *watch {
		dirs := []string{filepath.Dir(settings.Document)}
		if scriptPath != "" && filepath.Dir(scriptPath) != dirs[0] {
			dirs = append(dirs, filepath.Dir(scriptPath))
		}
		if err := viewer.Watch(dirs...); err != nil {
			log.Printf("viewer: watch: %v", err)
		}
	}
	defer viewer.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("spriteanim viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}

	if err := store.Save(viewer.settings); err != nil {
		log.Printf("%v", err)
	}
}

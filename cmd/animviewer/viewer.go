package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/prefabs"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

// Viewer plays one animation document on a row of entities. Edits to the
// document on disk are picked up while it runs.
type Viewer struct {
	world    *ecs.World
	lib      *asset.Library
	handle   asset.Handle
	reloader *asset.Reloader
	watcher  *asset.Watcher
	scripts  *system.ClipScriptSystem

	entities []ecs.Entity
	clips    []string
	selected int

	atlasSrc string
	sheet    *ebiten.Image
	face     *text.GoTextFace
	settings Settings
	finished []string
}

func NewViewer(settings Settings, lib *asset.Library, reloader *asset.Reloader, h asset.Handle, scriptPath string) *Viewer {
	v := &Viewer{
		lib:      lib,
		handle:   h,
		reloader: reloader,
		settings: settings,
	}

	v.scripts = system.NewClipScriptSystem(lib, readFirst(prefabs.LoadScript))
	reloader.OnScript = v.scripts.Invalidate
	v.world = ecs.NewWorld(
		system.NewAnimationSystem(lib, 1),
		v.scripts,
	)

	for i := 0; i < max(settings.Count, 1); i++ {
		e := ecs.CreateEntity(v.world)
		mustAdd(ecs.Add(v.world, e, component.AnimatedComponent.Kind(), component.NewAnimated(h)))
		mustAdd(ecs.Add(v.world, e, component.AnimationStateComponent.Kind(), component.NewAnimationState(anim.Name(settings.Clip))))
		mustAdd(ecs.Add(v.world, e, component.SpriteComponent.Kind(), &component.Sprite{FacingLeft: i%2 == 1}))
		if scriptPath != "" {
			mustAdd(ecs.Add(v.world, e, component.ClipScriptComponent.Kind(), &component.ClipScript{Path: scriptPath}))
		}
		v.entities = append(v.entities, e)
	}

	if src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		v.face = &text.GoTextFace{Source: src, Size: 14}
	} else {
		log.Printf("viewer: font: %v", err)
	}

	v.refresh()
	return v
}

func mustAdd(err error) {
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}
}

// Watch enables hot reload for files under dirs.
func (v *Viewer) Watch(dirs ...string) error {
	w, err := asset.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	v.watcher = w
	return nil
}

func (v *Viewer) Close() error {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}

// refresh picks up the clip list and atlas image of the current definition.
func (v *Viewer) refresh() {
	def, ok := v.lib.Resolve(v.handle)
	if !ok {
		return
	}
	v.clips = def.Names()
	if v.selected >= len(v.clips) {
		v.selected = 0
	}
	if atlas := def.Atlas(); v.sheet == nil || atlas.Image != v.atlasSrc {
		v.sheet = loadAtlasImage(atlas)
		v.atlasSrc = atlas.Image
	}
}

func (v *Viewer) Update() error {
	if v.reloader.Poll(v.watcher) > 0 {
		v.refresh()
	}

	v.handleInput()
	v.world.Update(time.Second / time.Duration(ebiten.TPS()))

	def, _ := v.lib.Resolve(v.handle)
	for _, fin := range v.world.Events().Finished() {
		v.finished = append(v.finished, fmt.Sprintf("%v finished %s", fin.Entity, def.Label(fin.Clip)))
	}
	if n := len(v.finished); n > 6 {
		v.finished = v.finished[n-6:]
	}
	return nil
}

func (v *Viewer) handleInput() {
	if len(v.clips) == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.selected = (v.selected + 1) % len(v.clips)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.selected = (v.selected + len(v.clips) - 1) % len(v.clips)
	}

	clip := anim.Name(v.clips[v.selected])
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		v.each(func(s *component.AnimationState) { s.ChangeNow(clip) })
		v.settings.Clip = string(clip)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.each(func(s *component.AnimationState) { s.ChangeIfNew(clip) })
		v.settings.Clip = string(clip)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		v.each(func(s *component.AnimationState) { s.Queue(clip) })
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		v.settings.Zoom = min(v.settings.Zoom+1, 12)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		v.settings.Zoom = max(v.settings.Zoom-1, 1)
	}
}

func (v *Viewer) each(fn func(*component.AnimationState)) {
	for _, e := range v.entities {
		if s, ok := ecs.Get(v.world, e, component.AnimationStateComponent.Kind()); ok {
			fn(s)
		}
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})

	def, ok := v.lib.Resolve(v.handle)
	if ok && v.sheet != nil {
		atlas := def.Atlas()
		zoom := max(v.settings.Zoom, 1)
		step := float64(max(atlas.TileWidth, 16))*zoom + 16
		for i, e := range v.entities {
			sprite, ok := ecs.Get(v.world, e, component.SpriteComponent.Kind())
			if !ok {
				continue
			}
			v.drawFrame(screen, atlas, sprite, 40+float64(i)*step, 160, zoom)
		}
	}

	v.drawHUD(screen, def)
}

func (v *Viewer) drawFrame(screen *ebiten.Image, atlas anim.Atlas, sprite *component.Sprite, x, y, zoom float64) {
	rect, ok := atlas.Region(sprite.Index)
	if !ok {
		rect = image.Rect(0, 0, atlas.TileWidth, atlas.TileHeight)
	}
	frame := v.sheet.SubImage(rect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if sprite.FacingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(rect.Dx()), 0)
	}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)
}

func (v *Viewer) drawHUD(screen *ebiten.Image, def *anim.Definition) {
	lines := []string{
		fmt.Sprintf("TPS %.0f  %s", ebiten.ActualTPS(), v.settings.Document),
		"left/right select  enter change  space change-if-new  q queue  +/- zoom",
	}
	if len(v.clips) > 0 {
		lines = append(lines, "clip: "+v.clips[v.selected])
	}
	if len(v.entities) > 0 {
		if a, ok := ecs.Get(v.world, v.entities[0], component.AnimatedComponent.Kind()); ok {
			lines = append(lines, fmt.Sprintf("playing %s frame %d/%d paused=%v",
				def.Label(a.Clip), a.Frame, a.Meta.Len, a.Paused))
		}
	}
	lines = append(lines, v.finished...)

	for i, line := range lines {
		v.drawText(screen, line, 10, 10+float64(i)*18)
	}
}

func (v *Viewer) drawText(screen *ebiten.Image, str string, x, y float64) {
	if v.face == nil {
		return
	}
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(color.RGBA{0xe0, 0xe0, 0xe0, 0xff})
	text.Draw(screen, str, v.face, opts)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

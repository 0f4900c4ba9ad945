// animstress drives many animated entities through the playback pipeline,
// reloading the definition periodically, and optionally profiles the run.
//
//	go run ./cmd/animstress -entities 100000 -workers 8 -profile cpu
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/prefabs"
	"github.com/pkg/profile"
)

func main() {
	entities := flag.Int("entities", 10000, "animated entities to spawn")
	ticks := flag.Int("ticks", 600, "ticks to simulate")
	workers := flag.Int("workers", 4, "goroutines per animation stage")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	reloadEvery := flag.Int("reload-every", 120, "replace the definition every N ticks (0 disables)")
	document := flag.String("anim", "soldier.yaml", "bundled animation document")
	mode := flag.String("profile", "", "cpu, mem or empty")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	system.SetLogger(nil)

	loader := asset.NewLoader(prefabs.Load)
	def, err := loader.Load(*document)
	if err != nil {
		log.Fatalf("animstress: %v", err)
	}
	lib := asset.NewLibrary()
	h := lib.Add(*document, def)
	names := def.Names()

	rng := rand.New(rand.NewSource(*seed))
	w := ecs.NewWorld(system.NewAnimationSystem(lib, *workers))
	states := make([]*component.AnimationState, 0, *entities)
	for i := 0; i < *entities; i++ {
		e := ecs.CreateEntity(w)
		state := component.NewAnimationState(anim.Name(names[rng.Intn(len(names))]))
		states = append(states, state)
		if err := ecs.Add(w, e, component.AnimatedComponent.Kind(), component.NewAnimated(h)); err != nil {
			log.Fatalf("animstress: %v", err)
		}
		if err := ecs.Add(w, e, component.AnimationStateComponent.Kind(), state); err != nil {
			log.Fatalf("animstress: %v", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}); err != nil {
			log.Fatalf("animstress: %v", err)
		}
	}

	dt := time.Second / time.Duration(max(*tps, 1))
	finished, reloads := 0, 0
	start := time.Now()
	for tick := 1; tick <= *ticks; tick++ {
		// Gameplay pokes a few entities per tick.
		for j := 0; j < len(states)/100+1; j++ {
			s := states[rng.Intn(len(states))]
			clip := anim.Name(names[rng.Intn(len(names))])
			if rng.Intn(2) == 0 {
				s.Queue(clip)
			} else {
				s.ChangeIfNew(clip)
			}
		}
		if *reloadEvery > 0 && tick%*reloadEvery == 0 {
			next, err := loader.Load(*document)
			if err != nil {
				log.Fatalf("animstress: reload: %v", err)
			}
			lib.Set(h, next)
			reloads++
		}

		w.Update(dt)
		finished += len(w.Events().Finished())
	}
	elapsed := time.Since(start)

	log.Printf("animstress: %d entities x %d ticks in %v (%.2f µs/tick/1k entities), workers=%d",
		*entities, *ticks, elapsed, float64(elapsed.Microseconds())/float64(*ticks)/(float64(*entities)/1000), *workers)
	log.Printf("animstress: %d finished events, %d reloads", finished, reloads)
}

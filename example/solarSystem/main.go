package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/akmonengine/scenegraph"
	"github.com/akmonengine/scenegraph/scenefile"
	"github.com/akmonengine/scenegraph/transform"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a sun with an orbiting planet and its moon, plus a
// camera that keeps looking at the planet.
func SetupScene(scene *scenegraph.Scene) (sun, planet, moon, camera scenegraph.NodeID) {
	sun = scene.Add("sun", transform.Identity())

	orbit := transform.Identity()
	orbit.Translation = mgl64.Vec3{10, 0, 0}
	planet = scene.Add("planet", orbit)

	moonOrbit := transform.Identity()
	moonOrbit.Translation = mgl64.Vec3{2, 0, 0}
	moonOrbit.Scale = mgl64.Vec3{0.25, 0.25, 0.25}
	moon = scene.Add("moon", moonOrbit)

	eye := transform.Identity()
	eye.Translation = mgl64.Vec3{0, 15, 15}
	camera = scene.Add("camera", eye)

	must(scene.Attach(planet, sun))
	must(scene.Attach(moon, planet))
	return sun, planet, moon, camera
}

func main() {
	steps := flag.Int("steps", 8, "number of simulation steps")
	workers := flag.Int("workers", scenegraph.DEFAULT_WORKERS, "goroutines used to warm world matrices")
	in := flag.String("scene", "", "load an extra YAML scene before running")
	out := flag.String("out", "", "write the final scene to this YAML file")
	verbose := flag.Bool("v", false, "log hierarchy edits")
	flag.Parse()

	if *verbose {
		scenegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := scenegraph.NewScene()
	scene.Workers = *workers
	sun, planet, moon, camera := SetupScene(scene)

	if *in != "" {
		ids, err := scenefile.Load(*in, scene)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("loaded %d nodes from %s\n", len(ids), *in)
	}

	dt := 2 * math.Pi / float64(*steps)
	for i := 0; i < *steps; i++ {
		scene.Transform(sun).SetAxisAngle(mgl64.Vec3{0, 1, 0}, dt*float64(i))
		scene.Transform(planet).SetAxisAngle(mgl64.Vec3{0, 1, 0}, 4*dt*float64(i))

		cam := scene.Transform(camera)
		cam.LookAt(scene.Transform(planet).WorldTranslation(), mgl64.Vec3{0, 1, 0})

		scene.Update()

		fmt.Printf("step %d\n", i)
		for _, id := range []scenegraph.NodeID{planet, moon} {
			p := scene.Transform(id).WorldMatrix().Col(3).Vec3()
			fmt.Printf("   %-7s world position: (%6.2f, %6.2f, %6.2f)\n", scene.Name(id), p.X(), p.Y(), p.Z())
		}
		forward := cam.WorldRotation().Rotate(mgl64.Vec3{0, 0, -1})
		fmt.Printf("   camera forward: (%5.2f, %5.2f, %5.2f)\n", forward.X(), forward.Y(), forward.Z())
	}

	fmt.Println("final snapshot:")
	spew.Dump(scene.Snapshot())

	if *out != "" {
		if err := scenefile.Save(*out, scene); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("scene written to %s\n", *out)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

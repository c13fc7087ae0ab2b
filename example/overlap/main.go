package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/akmonengine/convex"
	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plan-systems/klog"
)

// buildScene drops a few shapes on a static floor.
func buildScene() *convex.Scene {
	scene := convex.NewScene(2, 256)

	floor := actor.NewBody2D(
		actor.NewTransform2D(mgl64.Vec2{0, -1}, 0),
		&actor.Rectangle{HalfExtents: mgl64.Vec2{10, 1}},
	)
	floor.BodyType = actor.BodyTypeStatic
	scene.AddBody(floor)

	scene.AddBody(actor.NewBody2D(
		actor.NewTransform2D(mgl64.Vec2{-3, 0.8}, 0),
		actor.NewCircle(1, actor.DefaultCircleSegments),
	))
	scene.AddBody(actor.NewBody2D(
		actor.NewTransform2D(mgl64.Vec2{0, 0.4}, math.Pi/4),
		&actor.Rectangle{HalfExtents: mgl64.Vec2{0.5, 0.5}},
	))
	scene.AddBody(actor.NewBody2D(
		actor.NewTransform2D(mgl64.Vec2{3, 2}, 0),
		&actor.Triangle{Points: [3]mgl64.Vec2{{-1, 0}, {1, 0}, {0, 1.5}}},
	))

	return scene
}

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	verbose := flag.Bool("v", false, "log solver iterations")
	flag.Parse()
	if *verbose {
		fset.Set("v", "2")
	}

	scene := buildScene()
	for _, contact := range scene.Contacts() {
		fmt.Printf("%v <-> %v: depth %.4f normal %v\n",
			contact.BodyA.Transform.Position, contact.BodyB.Transform.Position, contact.Depth, contact.Normal)
	}

	floor, triangle := scene.Bodies[0], scene.Bodies[3]
	pa, pb, d := convex.ClosestPoints(floor, triangle)
	fmt.Printf("floor to triangle: distance %.4f between %v and %v\n", d, pa, pb)

	klog.Flush()
}

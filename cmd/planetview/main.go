//go:build raylib

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/export"
	"planet-texgen/internal/planet"
	"planet-texgen/internal/protocol"
	"planet-texgen/internal/server"
	"planet-texgen/internal/texture"
)

// loaded is one planet ready for upload to the GPU.
type loaded struct {
	title string
	color *buffer.Color
	err   error
}

// source produces the color map for a seed.
type source func(ctx context.Context, seed int64) loaded

func main() {
	serverURL := flag.String("server", "", "Fetch planets from a planetserve websocket URL (ws://host:8080/ws)")
	dir := flag.String("dir", "", "Show an already exported planet directory")
	seed := flag.Int64("seed", planet.DefaultSeed, "First seed; R advances to the next one")
	profile := flag.String("profile", planet.DefaultProfile, "Planet profile")
	noiseName := flag.String("noise", "", "Noise primitive")
	width := flag.Int("width", 1024, "Texture width")
	randomize := flag.Bool("randomize", false, "Perturb generation constants")
	flag.Parse()

	opts := planet.Options{
		Width:     *width,
		Height:    *width / 2,
		Randomize: *randomize,
		Profile:   *profile,
		Noise:     *noiseName,
	}

	var src source
	switch {
	case *dir != "":
		src = dirSource(*dir)
	case *serverURL != "":
		client, err := server.Dial(context.Background(), *serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer client.Close()
		src = remoteSource(client, opts)
	default:
		src = localSource(opts)
	}

	rl.InitWindow(960, 720, "planetview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 3.2),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	model := rl.LoadModelFromMesh(rl.GenMeshSphere(1, 64, 128))
	defer rl.UnloadModel(model)

	var (
		tex     rl.Texture2D
		hasTex  bool
		title   = "generating..."
		angle   float32
		paused  bool
		pending = make(chan loaded, 1)
		busy    bool
	)

	request := func(s int64) {
		busy = true
		title = fmt.Sprintf("generating seed %d...", s)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			pending <- src(ctx, s)
		}()
	}
	request(*seed)

	for !rl.WindowShouldClose() {
		// Textures are uploaded on the main thread only.
		select {
		case l := <-pending:
			busy = false
			if l.err != nil {
				title = "error: " + l.err.Error()
				break
			}
			img := rl.NewImageFromImage(buffer.ToNRGBA(l.color))
			if hasTex {
				rl.UnloadTexture(tex)
			}
			tex = rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)
			hasTex = true
			title = l.title
		default:
		}

		if rl.IsKeyPressed(rl.KeyR) && !busy && *dir == "" {
			*seed++
			request(*seed)
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if !paused {
			angle += 12 * rl.GetFrameTime()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode3D(camera)
		if hasTex {
			rl.DrawModelEx(model, rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), angle, rl.NewVector3(1, 1, 1), rl.White)
		}
		rl.EndMode3D()
		rl.DrawText(title, 10, 10, 20, rl.RayWhite)
		rl.DrawText("R: next seed  SPACE: pause", 10, 690, 16, rl.Gray)
		rl.EndDrawing()
	}

	if hasTex {
		rl.UnloadTexture(tex)
	}
}

func localSource(opts planet.Options) source {
	return func(ctx context.Context, seed int64) loaded {
		o := opts
		o.Seed = seed
		p, err := planet.Generate(ctx, o)
		if err != nil {
			return loaded{err: err}
		}
		return loaded{title: p.Name, color: p.Color}
	}
}

func remoteSource(client *server.Client, opts planet.Options) source {
	return func(ctx context.Context, seed int64) loaded {
		payload, err := client.Generate(ctx, protocol.Request{
			Seed:      seed,
			Randomize: opts.Randomize,
			Profile:   opts.Profile,
			Noise:     opts.Noise,
			Width:     opts.Width,
			Height:    opts.Height,
		})
		if err != nil {
			return loaded{err: err}
		}
		maps, err := payload.Decode()
		if err != nil {
			return loaded{err: err}
		}
		return loaded{title: payload.Name, color: maps.Color}
	}
}

func dirSource(dir string) source {
	cache := texture.NewCache(texture.BuildIndex(dir))
	return func(ctx context.Context, seed int64) loaded {
		g, err := cache.Load(export.MapColor)
		if err == nil && g == nil {
			err = fmt.Errorf("%s: no color map", dir)
		}
		return loaded{title: dir, color: g, err: err}
	}
}

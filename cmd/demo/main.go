package main

import (
	"fmt"
	"image/color"
	"log/slog"
	stdmath "math"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"glkit/config"
	"glkit/core"
	"glkit/gfx"
	"glkit/textures"
)

var app = &cli.App{
	Name:  "demo",
	Usage: "render a textured quad through a multisampled offscreen target",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "cmd/demo/assets/demo.yaml",
			Usage: "demo configuration file",
		},
		&cli.StringFlag{
			Name:  "texture",
			Usage: "image URL or path; overrides the configuration",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error; overrides the configuration",
		},
	},
	Action: run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// quad covers [-1,1]² counter-clockwise, so it survives back-face culling.
var quad = map[string][]float64{
	gfx.IndexName: {0, 1, 2, 2, 3, 0},
	"position":    {-1, -1, 1, -1, 1, 1, -1, 1},
	"uv":          {0, 0, 1, 0, 1, 1, 0, 1},
	"corner":      {0, 1, 2, 3},
}

func run(c *cli.Context) error {
	cfg, err := config.LoadDemo(c.String("config"))
	if err != nil {
		return err
	}
	if s := c.String("texture"); s != "" {
		cfg.Texture = s
	}
	if s := c.String("log-level"); s != "" {
		cfg.LogLevel = s
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctxConfig := core.DefaultContextConfig()
	ctxConfig.Width = cfg.Window.Width
	ctxConfig.Height = cfg.Window.Height
	ctxConfig.Title = cfg.Window.Title
	ctxConfig.Samples = cfg.Window.Samples
	if cfg.Window.VSync != nil {
		ctxConfig.VSync = *cfg.Window.VSync
	}

	ctx, err := core.NewContext(ctxConfig)
	if err != nil {
		return err
	}
	defer ctx.Destroy()
	gl := ctx.GL

	scene, err := buildProgram(gl, cfg.Scene)
	if err != nil {
		return fmt.Errorf("scene program: %w", err)
	}
	defer gfx.DeleteProgram(gl, scene)
	present, err := buildProgram(gl, cfg.Present)
	if err != nil {
		return fmt.Errorf("present program: %w", err)
	}
	defer gfx.DeleteProgram(gl, present)

	model, err := gfx.ModelFromMap(quad)
	if err != nil {
		return err
	}
	sceneQuad, err := gfx.CreateVAO(gl, scene.Attributes, model)
	if err != nil {
		return err
	}
	defer gfx.DeleteVAO(gl, sceneQuad)
	presentQuad, err := gfx.CreateVAO(gl, present.Attributes, model)
	if err != nil {
		return err
	}
	defer gfx.DeleteVAO(gl, presentQuad)

	w, h := ctx.FramebufferSize()
	target, err := gfx.NewOffscreenTarget(gl, w, h)
	if err != nil {
		return err
	}
	defer target.Delete(gl)

	tm := textures.NewManager(gl, gfx.WithWorkers(cfg.Workers))
	defer tm.Close()
	var checker gfx.Texture
	if cfg.Texture == "" {
		img := textures.Checker(256, color.NRGBA{230, 230, 230, 255}, color.NRGBA{60, 60, 70, 255})
		if checker, err = gfx.CreateTexture(gl, img, 0); err != nil {
			return err
		}
		defer gfx.DeleteTexture(gl, checker)
	} else if _, err := tm.Load(cfg.Texture, 0, func() {
		gfx.Logger().Info("texture ready", "source", cfg.Texture)
	}); err != nil {
		return err
	}

	var hud DebugOverlay
	var lastTitle time.Duration
	frames := 0

	return ctx.Run(func(now, elapsed time.Duration) error {
		if ctx.IsKeyPressed(core.KeyEscape) {
			ctx.Close()
		}
		tm.Poll()

		w, h := ctx.FramebufferSize()
		if w == 0 || h == 0 {
			return nil // minimized
		}
		target.Resize(gl, w, h)
		t := float32(now.Seconds())

		// Scene pass into the multisampled target.
		target.Bind(gl)
		core.Clear(gl, skyAt(t/30))
		tex := checker
		if cfg.Texture != "" {
			var err error
			if tex, err = tm.Texture(cfg.Texture); err != nil {
				return err
			}
		}
		gfx.BindTexture(gl, tex, 0)
		gfx.UseProgram(gl, scene)
		err := gfx.SetUniforms(gl, scene.Uniforms, gfx.UniformData{
			"u_rotation":  rotation(t * 0.5),
			"u_tint":      core.ColorWhite.Vec4(),
			"u_tex":       0,
			"u_highlight": int(t)%2 == 0,
		})
		if err != nil {
			return err
		}
		gfx.Draw(gl, sceneQuad)

		if err := target.Resolve(gl); err != nil {
			return err
		}

		// Present the resolved color texture on the window.
		gfx.BindDefaultFramebuffer(gl)
		gl.Viewport(0, 0, w, h)
		core.Clear(gl, core.ColorBlack)
		gfx.BindTexture(gl, target.ColorTex, 1)
		gfx.UseProgram(gl, present)
		err = gfx.SetUniforms(gl, present.Uniforms, gfx.UniformData{
			"u_scene":    1,
			"u_exposure": 1.0,
		})
		if err != nil {
			return err
		}
		gfx.Draw(gl, presentQuad)

		frames++
		if now-lastTitle >= time.Second {
			hud.Clear()
			hud.AddLine("%s", cfg.Window.Title)
			hud.AddLine("%d fps", frames)
			hud.AddLine("%.1f ms", float64(elapsed.Microseconds())/1000)
			if n := tm.Pending(); n > 0 {
				hud.AddLine("%d loading", n)
			}
			ctx.SetTitle(hud.Title())
			frames = 0
			lastTitle = now
		}
		return nil
	})
}

func buildProgram(gl gfx.GL, p config.Program) (*gfx.ProgramBundle, error) {
	src, err := p.ReadShader()
	if err != nil {
		return nil, err
	}
	return gfx.CreateProgram(gl, p.Layout.ProgramLayout, src, p.Prelude)
}

// rotation returns a column-major 2x2 rotation by angle radians.
func rotation(angle float32) []float32 {
	s, c := stdmath.Sincos(float64(angle))
	return []float32{float32(c), float32(s), float32(-s), float32(c)}
}

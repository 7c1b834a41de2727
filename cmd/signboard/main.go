// Command signboard shows a 3D signboard in a window. Lines read from stdin replace what it shows:
//
//	text <string>   display the text
//	load <url>      load a glTF / GLB model from a URL or path
//	quit            close the window
//
// Any other line is displayed as text.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/colors"
	"github.com/solarlune/signboard/interact"
	"github.com/solarlune/signboard/internal/config"
	"github.com/solarlune/signboard/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "signboard:", err)
		os.Exit(1)
	}
}

func run() error {

	configPath := flag.String("config", config.DefaultFilename, "path to the YAML config file")
	text := flag.String("text", "", "text to display (overrides the config)")
	model := flag.String("model", "", "URL or path of a glTF / GLB model to display (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *text != "" {
		cfg.Text = *text
	}
	if *model != "" {
		cfg.Model = *model
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scene, camera := newScene(cfg)

	options := interact.DefaultControllerOptions()
	options.Logger = logger
	options.Context = ctx
	options.Fetcher = interact.NewDefaultFetcher(cfg.Progress)
	options.TextColor = config.Color(cfg.TextColor, colors.Green())
	options.PanelColor = config.Color(cfg.PanelColor, colors.White())

	controller, err := interact.NewController(scene, camera, options)
	if err != nil {
		return err
	}

	highlight := controller.Highlight()
	highlight.EdgeStrength = cfg.Outline.Strength
	highlight.EdgeGlow = cfg.Outline.Glow
	highlight.EdgeThickness = cfg.Outline.Thickness
	highlight.VisibleEdgeColor = config.Color(cfg.Outline.VisibleColor, colors.White())
	highlight.HiddenEdgeColor = config.Color(cfg.Outline.HiddenColor, colors.Black())

	controller.OnActivate(func(e interact.ContentActivated) {
		logger.Info("signboard clicked", "node", e.Node.Name(), "source", e.Handle.Source, "generation", e.Handle.Generation)
	})

	controller.OnLoaded(func(h interact.ContentHandle, err error) {
		if err != nil && !errors.Is(err, interact.ErrSuperseded) {
			logger.Error("model load failed", "source", h.Source, "error", err)
			return
		}
		if err == nil {
			logger.Info("model loaded", "source", h.Source, "generation", h.Generation)
		}
	})

	controller.SetDisplayedText(cfg.Text)
	if cfg.Model != "" {
		controller.LoadModel(cfg.Model, cfg.Interactive)
	}

	orbit := interact.NewOrbitControl(camera, signboard.Vector3{})
	orbit.Damping = cfg.Orbit.Damping
	orbit.MinDistance = cfg.Orbit.MinDistance
	orbit.MaxDistance = cfg.Orbit.MaxDistance

	renderer, err := render.NewRenderer(controller)
	if err != nil {
		return err
	}
	defer renderer.Dispose()

	render.FollowCursor(controller)

	quit := &atomic.Bool{}
	go readCommands(os.Stdin, controller, quit, logger)

	game := render.NewGame(&interact.Loop{Orbit: orbit, Controller: controller}, renderer)
	game.Quit = quit.Load

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	return nil

}

// newScene creates the scene the signboard lives in, with the camera looking at the origin from +Z.
func newScene(cfg config.Config) (*signboard.Scene, *signboard.Camera) {

	scene := signboard.NewScene("Signboard")
	scene.World.ClearColor = config.Color(cfg.ClearColor, colors.Charcoal())
	scene.World.AmbientLight = signboard.NewAmbientLight("ambient", 1, 1, 1, 1)

	camera := signboard.NewCamera(cfg.Window.Width, cfg.Window.Height)
	camera.SetFieldOfView(cfg.Camera.FieldOfView)
	camera.SetNear(cfg.Camera.Near)
	camera.SetFar(cfg.Camera.Far)
	camera.SetLocalPosition(0, 0, cfg.Camera.Z)
	scene.Root.AddChildren(camera)

	return scene, camera

}

// readCommands posts each line read from r to the controller until r is exhausted or "quit" is read.
func readCommands(r io.Reader, controller *interact.Controller, quit *atomic.Bool, logger *slog.Logger) {

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {

		line := scanner.Text()
		cmd, arg, _ := strings.Cut(line, " ")

		switch strings.ToLower(cmd) {
		case "quit", "exit":
			quit.Store(true)
			return
		case "load":
			location := strings.TrimSpace(arg)
			controller.Post(func(c *interact.Controller) { c.LoadModel(location, "") })
		case "text":
			controller.Post(func(c *interact.Controller) { c.SetDisplayedText(arg) })
		default:
			controller.Post(func(c *interact.Controller) { c.SetDisplayedText(line) })
		}

	}

	if err := scanner.Err(); err != nil {
		logger.Warn("stopped reading commands", "error", err)
	}

}

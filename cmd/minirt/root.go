package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/minirt"
	"github.com/gogpu/minirt/internal/config"
	"github.com/gogpu/minirt/internal/metrics"
	"github.com/gogpu/minirt/scene"
)

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "minirt [width [height [samples [workers [scene-file]]]]]",
		Short: "Render a sphere scene in parallel",
		Long: `minirt ray traces a scene of spheres and point lights, splitting the
image across a fixed number of worker goroutines. The dynamic strategy feeds
square tiles through a shared queue; the static strategy gives every worker
one band of rows.`,
		Args:         cobra.MaximumNArgs(5),
		SilenceUsage: true,
	}

	v, err := config.BindFlags(cmd.Flags())
	if err != nil {
		panic(err)
	}
	cmd.Flags().StringVar(&configFile, "config-file", "", "YAML config file. Flags and positional arguments take precedence.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		if err := cfg.ApplyArgs(args); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

// run renders the configured scene and writes the output image. Nothing is
// written if any step before the join fails.
func run(cfg config.Config, stdout, stderr io.Writer) error {
	log, closeLog := newLogger(cfg.Logging, stderr)
	defer closeLog()

	log = log.With("run", uuid.NewString())
	minirt.SetLogger(log)
	defer minirt.SetLogger(nil)

	world := scene.Default()
	if cfg.SceneFile != "" {
		var err error
		world, err = scene.Load(cfg.SceneFile)
		if err != nil {
			return fmt.Errorf("loading scene %s: %w", cfg.SceneFile, err)
		}
		log.Info("scene loaded", "path", cfg.SceneFile, "spheres", len(world.Spheres), "lights", len(world.Lights))
	}

	opts := cfg.Options()
	sc := scene.Config{Scene: world, View: scene.NewViewPlane(opts.Width, opts.Height)}

	res, err := minirt.Render(opts, sc, scene.Shade)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "Time = %.3f s (%d pixels, %d workers, %s)\n",
		res.Stats.Elapsed.Seconds(), res.Stats.Pixels, res.Stats.Workers, res.Stats.Strategy)

	if err := res.Image.Save(cfg.Output); err != nil {
		return fmt.Errorf("saving %s: %w", cfg.Output, err)
	}
	log.Info("image saved", "path", cfg.Output)

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(res.Stats)
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

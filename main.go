// Command geoq evaluates geometry scripts and classifies shape scenes.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chazu/geoq/pkg/config"
	"github.com/chazu/geoq/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the geoq release.
const Version = "0.1.0"

var (
	configPath string
	logLevel   string
	touching   bool
	merged     bool
)

// Root is the base command.
var Root = &cobra.Command{
	Use:   "geoq",
	Short: "Closest points, intersections and distances of 2D and 3D primitives.",
	Long: `geoq evaluates geometry scripts and classifies scenes of lines, rays,
segments, circles and spheres. Settings come from a TOML file given with
--config; --log-level overrides the file's [log] level.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("geoq v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

var evalCmd = &cobra.Command{
	Use:   "eval <script>",
	Short: "Evaluate a script and print its report as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res := app.Evaluate(string(source))
		if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("%s: %d evaluation errors", args[0], len(res.Errors))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep <scene.yaml>",
	Short: "Intersect every pair of shapes in a scene and print the results as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		sc, err := app.LoadScene(args[0])
		if err != nil {
			return err
		}
		sum, err := app.Sweep(cmd.Context(), sc, touching)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), sum)
	},
	DisableAutoGenTag: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate <scene.yaml>",
	Short: "Check a scene file for structural and geometric problems.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		sc, err := app.LoadScene(args[0])
		if err != nil {
			return err
		}
		vr := app.Validate(sc)
		for _, e := range vr.Errors {
			cmd.Println(e.Error())
		}
		for _, w := range vr.Warnings {
			cmd.Printf("[warning] %s\n", w)
		}
		if !vr.OK() {
			return fmt.Errorf("%s: %d validation errors", args[0], len(vr.Errors))
		}
		cmd.Printf("%s: %d shapes ok\n", args[0], sc.Len())
		return nil
	},
	DisableAutoGenTag: true,
}

var meshCmd = &cobra.Command{
	Use:   "mesh <scene.yaml>",
	Short: "Tessellate the circles and spheres of a scene and print the meshes as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		sc, err := app.LoadScene(args[0])
		if err != nil {
			return err
		}
		meshes, err := app.Mesh(sc, merged)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), meshes)
	},
	DisableAutoGenTag: true,
}

func init() {
	Root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	Root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	sweepCmd.Flags().BoolVar(&touching, "touching", false, "only report pairs that share a point")
	meshCmd.Flags().BoolVar(&merged, "merged", false, "union all shapes into a single mesh")

	Root.AddCommand(versionCmd, evalCmd, sweepCmd, validateCmd, meshCmd)
}

// loadConfig reads --config when set and applies --log-level.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*App, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return NewApp(cfg, log), log, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := Root.Execute(); err != nil {
		os.Exit(1)
	}
}

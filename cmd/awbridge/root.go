package main

import (
	"fmt"

	awbridge "github.com/matafokka/aerialware-bridge"
	"github.com/matafokka/aerialware-bridge/log"
	"github.com/matafokka/aerialware-bridge/planner"
	"github.com/matafokka/aerialware-bridge/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	projectDir string
	plannerDir string
	standalone bool
	verbose    bool
}

func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "awbridge",
		Short: "Bridge a GIS project to the AerialWare flight planner",
		Long: `awbridge hands a raster layer of a GIS project to the external AerialWare
flight-planning tool and converts the planned paths back into two
line-geometry vector layers of the project.

The planner is a separate binary discovered in the --planner directory, the
directory remembered from the previous run, or a directory entered at a
prompt.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.projectDir, "project", "p", ".", "project directory holding the raster layers")
	cmd.Flags().StringVar(&flags.plannerDir, "planner", ".", "default directory to look for the planner binary in")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", true, "start the planner in standalone mode")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log to stderr")

	return cmd
}

func run(flags *rootFlags) error {
	if flags.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		log.SetLogger(logger)
	}

	tb := awbridge.NewGdalToolbox()
	project, err := awbridge.OpenDirProject(flags.projectDir, tb)
	if err != nil {
		return err
	}
	loader := planner.NewLoader(flags.plannerDir, flags.standalone)
	loader.Debug = flags.verbose

	app := awbridge.NewApp(project, ui.TermDialogs{}, loader)
	return app.Run()
}

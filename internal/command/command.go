package command

import (
	commandHandler "assetline/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSeedHandler)

type Command struct {
	seedCommandHandler *commandHandler.SeedHandler
}

// NewCommand .
func NewCommand(
	seedCommandHandler *commandHandler.SeedHandler,
) *Command {
	return &Command{
		seedCommandHandler: seedCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "seed-manager",
			Short: "create the initial manager role record",
			Run: func(cmd *cobra.Command, args []string) {
				command, cleanup, err := newCmd()
				if err != nil {
					panic(err)
				}
				defer cleanup()

				command.seedCommandHandler.SeedManager(cmd, args)
			},
		},
	)
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	mappingsPath string
}

func NewProfilesCmd(mappingsPath string) *cobra.Command {
	pc := &ProfilesCmd{mappingsPath: mappingsPath}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available column mapping profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.mappingsPath, "mappings", pc.mappingsPath, "Path to a column mapping profiles INI file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, args []string) error {
	registry, err := newRegistry(pc.mappingsPath)
	if err != nil {
		return err
	}

	profiles, err := registry.Profiles(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available mapping profiles:\n%s\n", strings.Join(profiles, "\n"))
	return nil
}

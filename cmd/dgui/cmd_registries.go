package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/format"
)

func newRegistriesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registries",
		Aliases: []string{"registry", "reg"},
		Short:   "Manage the registries known to the backend",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegistriesList(c, cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List registries",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runRegistriesList(c, cmd)
			},
		},
		newRegistriesUseCmd(c),
		newRegistriesTestCmd(c),
		newRegistriesAddCmd(c),
		newRegistriesEditCmd(c),
		newRegistriesRmCmd(c),
	)
	return cmd
}

func runRegistriesList(c *cli, cmd *cobra.Command) error {
	a, err := c.openSession(cmd)
	if err != nil {
		return err
	}
	registries, err := a.API.Registries(cmd.Context())
	if err != nil {
		return fmt.Errorf("list registries: %w", err)
	}
	rows := make([][]string, 0, len(registries))
	for _, reg := range registries {
		active := ""
		if reg.IsActive {
			active = "*"
		}
		isDefault := ""
		if reg.IsDefault {
			isDefault = "yes"
		}
		rows = append(rows, []string{
			active,
			strconv.FormatInt(reg.ID, 10),
			reg.Name,
			reg.URL,
			format.FirstNonEmpty(reg.Username, format.Placeholder),
			isDefault,
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Active", "ID", "Name", "URL", "User", "Default"}, rows)
}

func parseRegistryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid registry id %q", raw)
	}
	return id, nil
}

func newRegistriesUseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Switch the active registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRegistryID(args[0])
			if err != nil {
				return err
			}
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			reg, err := a.Activate(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("activate registry %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active registry: %s (%s)\n", reg.Name, reg.URL)
			return nil
		},
	}
}

func newRegistriesTestCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Check that the backend can reach a registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRegistryID(args[0])
			if err != nil {
				return err
			}
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			result, err := a.API.TestRegistry(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("test registry %d: %w", id, err)
			}
			if !result.Connected {
				return fmt.Errorf("registry %d not connected: %s", id, format.FirstNonEmpty(result.Error, "unknown error"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry %d: %s\n", id, format.FirstNonEmpty(result.Message, "connected"))
			return nil
		},
	}
}

func newRegistriesAddCmd(c *cli) *cobra.Command {
	var in api.RegistryCreate
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			reg, err := a.API.CreateRegistry(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("add registry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added registry %d (%s)\n", reg.ID, reg.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Registry name")
	cmd.Flags().StringVar(&in.URL, "url", "", "Registry URL")
	cmd.Flags().StringVar(&in.Username, "username", "", "Registry user name")
	cmd.Flags().StringVar(&in.Password, "password", "", "Registry password")
	return cmd
}

func newRegistriesEditCmd(c *cli) *cobra.Command {
	var in api.RegistryUpdate
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a registry; omitted fields are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRegistryID(args[0])
			if err != nil {
				return err
			}
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			reg, err := a.API.UpdateRegistry(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("update registry %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated registry %d (%s)\n", reg.ID, reg.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "New registry name")
	cmd.Flags().StringVar(&in.URL, "url", "", "New registry URL")
	cmd.Flags().StringVar(&in.Username, "username", "", "New registry user name")
	cmd.Flags().StringVar(&in.Password, "password", "", "New registry password")
	return cmd
}

func newRegistriesRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a registry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRegistryID(args[0])
			if err != nil {
				return err
			}
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			if err := a.API.DeleteRegistry(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove registry %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed registry %d\n", id)
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tget/config"
	"tget/registry"
)

// NewTemplatesCmd creates the templates command
func NewTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List registered template names",
		Long: `List the entries of the template registry, a YAML file mapping short
names to template location strings:

  templates:
    nuxt: gh:nuxt/starter#v3
    api: gitlab:acme/templates/api`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, args []string) error {
	registryPath := registry.DefaultPath()
	if cfg, err := config.LoadConfig(); err == nil && cfg.RegistryPath != "" {
		registryPath = cfg.RegistryPath
	}

	reg, err := registry.Load(registryPath)
	if err != nil {
		return err
	}

	names := reg.Names()
	if len(names) == 0 {
		fmt.Printf("No templates registered in %s\n", registryPath)
		return nil
	}
	sort.Strings(names)

	for _, name := range names {
		location, _ := reg.Resolve(name)
		fmt.Printf("%s  %s\n", color.CyanString("%-20s", name), location)
	}

	return nil
}

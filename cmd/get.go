package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tget/config"
	"tget/fetch"
	"tget/helpers"
	"tget/parse"
	"tget/registry"
	"tget/util"
)

var (
	getRef     string
	getToken   string
	getForce   bool
	getSelect  bool
	getRefresh bool
)

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <template> [dir]",
		Short: "Download a template into a directory",
		Long: `Download the archive behind a template location string and extract it.

The template argument is either a location string (gh:user/repo#ref,
user/repo, https://github.com/user/repo) or the name of an entry in the
template registry. The destination defaults to a directory named after the
repository.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runGet,
	}

	getCmd.Flags().StringVar(&getRef, "ref", "", "Branch, tag or commit overriding the one in the location string")
	getCmd.Flags().StringVar(&getToken, "token", "", "Bearer token for private repositories")
	getCmd.Flags().BoolVarP(&getForce, "force", "f", false, "Extract into a non-empty directory")
	getCmd.Flags().BoolVar(&getSelect, "select", false, "Interactively choose which top-level entries to extract")
	getCmd.Flags().BoolVar(&getRefresh, "refresh", false, "Skip the archive cache and download again")

	return getCmd
}

func runGet(cmd *cobra.Command, args []string) error {
	log := util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.V(1).Info("falling back to default config", "reason", err.Error())
		cfg = config.DefaultConfig()
	}

	source := args[0]
	if !parse.IsRemoteRef(source) {
		registryPath := cfg.RegistryPath
		if registryPath == "" {
			registryPath = registry.DefaultPath()
		}
		reg, err := registry.Load(registryPath)
		if err != nil {
			return err
		}
		resolved, ok := reg.Resolve(source)
		if !ok {
			return fmt.Errorf("%q is neither a remote template reference nor a registered template name", source)
		}
		log.V(1).Info("resolved registry template", "name", source, "location", resolved)
		source = resolved
	}

	ref, ok := parse.Parse(source)
	if !ok {
		return fmt.Errorf("invalid template location %q", source)
	}
	if getRef != "" {
		ref.Ref = getRef
	}

	dest := ref.Repo
	if len(args) == 2 {
		dest = args[1]
	}
	if !getForce {
		empty, err := helpers.DirIsEmpty(dest)
		if err != nil {
			return err
		}
		if !empty {
			return fmt.Errorf("destination %s is not empty, pass --force to extract anyway", dest)
		}
	}

	token := getToken
	if token == "" {
		token = cfg.Tokens[string(ref.Provider)]
	}

	fmt.Printf("[-] Template: %s\n", ref.String())
	archive, err := fetch.DownloadArchive(cmd.Context(), ref, fetch.Options{
		Token:    token,
		Force:    getRefresh,
		Progress: cfg.ProgressBar,
	})
	if err != nil {
		return err
	}

	only, err := selectEntries(archive, ref.Subpath)
	if err != nil {
		return err
	}

	count, err := fetch.Extract(archive, dest, ref.Subpath, only)
	if err != nil {
		return err
	}

	var archiveSize int64
	if info, err := os.Stat(archive); err == nil {
		archiveSize = info.Size()
	}
	color.Green("[-] Extracted %d files to %s (%s archive)", count, dest, helpers.FormatBytes(archiveSize))

	return nil
}

// selectEntries prompts for the top-level entries to keep when --select is
// set. A nil map means everything.
func selectEntries(archive, subpath string) (map[string]bool, error) {
	if !getSelect {
		return nil, nil
	}

	names, err := fetch.List(archive, subpath)
	if err != nil {
		return nil, err
	}
	if len(names) < 2 {
		return nil, nil
	}

	var picked []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Select entries to extract").
			Options(huh.NewOptions(names...)...).
			Value(&picked).
			Validate(func(selected []string) error {
				if len(selected) == 0 {
					return fmt.Errorf("select at least one entry")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}

	only := make(map[string]bool, len(picked))
	for _, name := range picked {
		only[name] = true
	}
	return only, nil
}

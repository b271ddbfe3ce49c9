package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/app"
	"github.com/scottbass3/dgui/internal/browse"
	"github.com/scottbass3/dgui/internal/format"
	"github.com/scottbass3/dgui/internal/registry"
	"github.com/scottbass3/dgui/internal/registry/history"
)

type pageFlags struct {
	page     int
	pageSize int
	search   string
}

func (p *pageFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&p.page, "page", 1, "Page number")
	flags.IntVar(&p.pageSize, "page-size", browse.DefaultPageSize, "Rows per page (10, 20, 50 or 100)")
	flags.StringVarP(&p.search, "search", "s", "", "Server-side search")
}

func (p pageFlags) query() api.PageQuery {
	return api.PageQuery{Page: p.page, PageSize: p.pageSize, Search: p.search}.Normalize()
}

func pagerLine(page, totalPages, pageSize, total int) string {
	return fmt.Sprintf("Page %d/%d · %d per page · %d total", page, max(totalPages, 1), pageSize, total)
}

// fetchPage loads q and, when q asks for a page past the last one, loads the
// last page instead. The returned query is the one that was rendered.
func fetchPage[T any](q api.PageQuery, fetch func(api.PageQuery) (api.Page[T], error)) (api.PageQuery, api.Page[T], error) {
	page, err := fetch(q)
	if err != nil {
		return q, page, err
	}
	state := browse.PageState{Page: q.Page, PageSize: q.PageSize, Search: q.Search}
	state.Clamp(page.TotalPages)
	if state.Page == q.Page {
		return q, page, nil
	}
	q.Page = state.Page
	page, err = fetch(q)
	return q, page, err
}

// openBrowse is openSession with the active registry loaded, which pull
// references depend on.
func (c *cli) openBrowse(cmd *cobra.Command) (*app.App, string, error) {
	a, err := c.openSession(cmd)
	if err != nil {
		return nil, "", err
	}
	if err := a.Start(cmd.Context()); err != nil && !api.IsNotFound(err) {
		return nil, "", fmt.Errorf("load active registry: %w", err)
	}
	var registryURL string
	if active, ok := a.Selection.Active(); ok {
		registryURL = active.URL
	}
	return a, registryURL, nil
}

func newCatalogCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every repository name of the active registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			catalog, err := a.API.Catalog(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			for _, name := range catalog.Repositories {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newReposCmd(c *cli) *cobra.Command {
	var paging pageFlags
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"repositories"},
		Short:   "List repositories of the active registry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			q, page, err := fetchPage(paging.query(), func(q api.PageQuery) (api.Page[[]api.RepositoryInfo], error) {
				return a.API.Repositories(cmd.Context(), q)
			})
			if err != nil {
				return fmt.Errorf("list repositories: %w", err)
			}
			rows := make([][]string, 0, len(page.Data))
			for _, repo := range page.Data {
				rows = append(rows, []string{
					repo.Name,
					format.Count(repo.TagCount),
					format.FirstNonEmpty(strings.Join(repo.Tags, ", "), format.Placeholder),
				})
			}
			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"Repository", "Tags", "Tag names"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, pagerLine(q.Page, page.TotalPages, q.PageSize, page.Total))
			return nil
		},
	}
	paging.register(cmd.Flags())
	return cmd
}

func newTagsCmd(c *cli) *cobra.Command {
	var paging pageFlags
	cmd := &cobra.Command{
		Use:   "tags <repository>",
		Short: "List tags of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository := args[0]
			a, registryURL, err := c.openBrowse(cmd)
			if err != nil {
				return err
			}
			q, page, err := fetchPage(paging.query(), func(q api.PageQuery) (api.Page[api.TagList], error) {
				return a.API.Tags(cmd.Context(), repository, q)
			})
			if err != nil {
				return fmt.Errorf("list tags of %s: %w", repository, err)
			}
			rows := make([][]string, 0, len(page.Data.Tags))
			for _, tag := range page.Data.Tags {
				rows = append(rows, []string{tag, registry.PullReference(registryURL, repository, tag)})
			}
			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"Tag", "Reference"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, pagerLine(q.Page, page.TotalPages, q.PageSize, page.Total))
			return nil
		},
	}
	paging.register(cmd.Flags())
	return cmd
}

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <repository> <tag>",
		Short: "Show the metadata and build history of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, tag := args[0], args[1]
			a, registryURL, err := c.openBrowse(cmd)
			if err != nil {
				return err
			}
			info, err := a.API.ImageInfo(cmd.Context(), repository, tag)
			if err != nil {
				return fmt.Errorf("inspect %s:%s: %w", repository, tag, err)
			}

			platform := strings.Trim(info.Config.OS+"/"+info.Config.Architecture, "/")
			size := info.TotalSize
			if size <= 0 {
				size = history.TotalSize(info)
			}
			out := cmd.OutOrStdout()
			err = renderFields(out, [][2]string{
				{"Image", repository + ":" + tag},
				{"Digest", format.FirstNonEmpty(info.Digest, format.Placeholder)},
				{"Created", format.Date(info.Config.Created)},
				{"Platform", format.FirstNonEmpty(platform, format.Placeholder)},
				{"Size", format.Bytes(size)},
				{"Layers", format.Count(len(history.Layers(info)))},
				{"Author", format.FirstNonEmpty(info.Config.Author, format.Placeholder)},
				{"Pull", registry.PullCommand(registryURL, repository, tag)},
			})
			if err != nil {
				return err
			}

			layers := history.Layers(info)
			layerRows := make([][]string, 0, len(layers))
			for _, layer := range layers {
				layerRows = append(layerRows, []string{
					strconv.Itoa(layer.Index),
					format.ShortenDigest(layer.Digest),
					format.FirstNonEmpty(layer.MediaType, format.Placeholder),
					format.Bytes(layer.SizeBytes),
				})
			}
			fmt.Fprintln(out)
			if err := renderTable(out, []string{"#", "Digest", "Media type", "Size"}, layerRows); err != nil {
				return err
			}

			settings := history.RuntimeConfig(info)
			settingRows := make([][]string, 0, len(settings))
			for _, field := range settings {
				settingRows = append(settingRows, []string{field.Name, field.Value})
			}
			fmt.Fprintln(out)
			if err := renderTable(out, []string{"Setting", "Value"}, settingRows); err != nil {
				return err
			}

			entries := history.Build(info)
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					format.Time(entry.CreatedAt),
					format.Bytes(entry.SizeBytes),
					format.FirstNonEmpty(entry.Command, format.Placeholder),
				})
			}
			fmt.Fprintln(out)
			return renderTable(out, []string{"Created", "Size", "Command"}, rows)
		},
	}
}

func newRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <repository> <tag>",
		Aliases: []string{"delete"},
		Short:   "Delete a tag from the active registry",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, tag := args[0], args[1]
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			if err := a.DeleteImage(cmd.Context(), repository, tag); err != nil {
				return fmt.Errorf("delete %s:%s: %w", repository, tag, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s:%s\n", repository, tag)
			return nil
		},
	}
}

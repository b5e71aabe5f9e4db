package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"villamarisol.com/marisol-web/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the catalogs compiled into the binary",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogFacetsCmd())
	return cmd
}

type filterFlags struct {
	name     string
	tag      string
	category string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "catalog", "gallery", "catalog name: "+strings.Join(catalog.Names, ", "))
	cmd.Flags().StringVar(&f.tag, "tag", "", "tag filter (all or empty for no constraint)")
	cmd.Flags().StringVar(&f.category, "category", "", "category filter")
}

func (f filterFlags) state() catalog.FilterState {
	return catalog.FilterState{Tag: f.tag, Category: f.category}
}

func newCatalogListCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := catalog.LoadSite()
			if err != nil {
				return err
			}
			rows, err := listRows(site, flags.name, flags.state())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tTAGS")
			for _, it := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Category, strings.Join(it.Tags, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", len(rows))
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newCatalogFacetsCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Show tag and category counts for a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := catalog.LoadSite()
			if err != nil {
				return err
			}
			set, err := facetSet(site, flags.name, flags.state())
			if err != nil {
				return err
			}
			return writeFacets(cmd.OutOrStdout(), set)
		},
	}
	flags.bind(cmd)
	return cmd
}

func listRows(site *catalog.Site, name string, s catalog.FilterState) ([]catalog.Item, error) {
	switch name {
	case "rooms":
		return facetsOf(site.Rooms.Filter(s)), nil
	case "gallery":
		return facetsOf(site.Gallery.Filter(s)), nil
	case "menu":
		return facetsOf(site.Menu.Filter(s)), nil
	case "treatments":
		return facetsOf(site.Treatments.Filter(s)), nil
	case "services":
		return facetsOf(site.Services.Filter(s)), nil
	}
	return nil, fmt.Errorf("unknown catalog %q", name)
}

func facetSet(site *catalog.Site, name string, s catalog.FilterState) (catalog.FacetSet, error) {
	switch name {
	case "rooms":
		return site.Rooms.Facets(s), nil
	case "gallery":
		return site.Gallery.Facets(s), nil
	case "menu":
		return site.Menu.Facets(s), nil
	case "treatments":
		return site.Treatments.Facets(s), nil
	case "services":
		return site.Services.Facets(s), nil
	}
	return catalog.FacetSet{}, fmt.Errorf("unknown catalog %q", name)
}

func facetsOf[T catalog.Record](records []T) []catalog.Item {
	out := make([]catalog.Item, len(records))
	for i, r := range records {
		out[i] = r.Facets()
	}
	return out
}

func writeFacets(w io.Writer, set catalog.FacetSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "matched\t%d/%d\n", set.Matched, set.Total)
	for _, f := range set.Categories {
		fmt.Fprintf(tw, "category\t%s\t%d%s\n", f.Value, f.Count, activeMark(f.Active))
	}
	for _, f := range set.Tags {
		fmt.Fprintf(tw, "tag\t%s\t%d%s\n", f.Value, f.Count, activeMark(f.Active))
	}
	return tw.Flush()
}

func activeMark(active bool) string {
	if active {
		return "\t*"
	}
	return ""
}

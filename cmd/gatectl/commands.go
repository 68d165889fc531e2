package main

import (
	"fmt"
	"net/http"
	"strconv"
	"text/tabwriter"

	"gatemap/internal/boundary"
	"gatemap/internal/filter"
	"gatemap/internal/gate"
	"gatemap/internal/logger"
	"gatemap/internal/migrate"
	"gatemap/internal/palette"
	"gatemap/internal/render"
	"gatemap/internal/store"
	"gatemap/internal/tui"
	"gatemap/internal/utils"

	"github.com/spf13/cobra"
)

func gatesCmd(o *options) *cobra.Command {
	var office, project string
	c := &cobra.Command{
		Use:   "gates",
		Short: "List positioned gates matching office and project",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			ms := render.Markers(filter.SelectGates(d.Gates, office, project), d.Palette)
			if o.asJSON {
				return printJSON(cmd.OutOrStdout(), ms)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPROJECT\tRIVER\tLAT\tLON\tCOLOR")
			for _, m := range ms {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.Label, m.Project, m.River,
					strconv.FormatFloat(m.Lat, 'f', -1, 64), strconv.FormatFloat(m.Lon, 'f', -1, 64), m.Color)
			}
			return tw.Flush()
		},
	}
	c.Flags().StringVar(&office, "office", filter.All, "office name or \"all\"")
	c.Flags().StringVar(&project, "project", filter.All, "project name or \"all\"")
	return c
}

func printList(cmd *cobra.Command, asJSON bool, vs []string) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), vs)
	}
	for _, v := range vs {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

func officesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "offices",
		Short: "List distinct offices",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd, o.asJSON, filter.DistinctOffices(d.Gates))
		},
	}
}

func projectsCmd(o *options) *cobra.Command {
	var office string
	c := &cobra.Command{
		Use:   "projects",
		Short: "List distinct projects of an office",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd, o.asJSON, filter.DistinctProvincesForOffice(d.Gates, office))
		},
	}
	c.Flags().StringVar(&office, "office", filter.All, "office name or \"all\"")
	return c
}

func colorCmd(o *options) *cobra.Command {
	var byProject bool
	c := &cobra.Command{
		Use:   "color NAME",
		Short: "Print the fill color of a province (or project with --project)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			col := d.Palette.ColorForProvince(args[0])
			if byProject {
				col = d.Palette.ColorForProject(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), col)
			return nil
		},
	}
	c.Flags().BoolVar(&byProject, "project", false, "match project names instead of provinces")
	return c
}

func locateCmd(o *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "locate LAT LON",
		Short: "Find the province containing a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("lat: %w", err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("lon: %w", err)
			}
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			cfg := o.config()
			src := boundary.Source{URL: cfg.BoundaryURL, Client: &http.Client{}, Timeout: cfg.BoundaryTimeout}
			l, err := src.Load(cmd.Context(), d.Palette)
			if err != nil {
				return fmt.Errorf("load boundaries: %w", err)
			}
			name, ok := l.Locate(lat, lon)
			if !ok {
				return fmt.Errorf("no province contains %v,%v", lat, lon)
			}
			office, _ := d.Palette.OfficeForProvince(name)
			if o.asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"province": name, "office": office, "color": d.Palette.ColorForProvince(name),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, office, d.Palette.ColorForProvince(name))
			return nil
		},
	}
	return c
}

// importCmd：把文件或内置数据写入 Postgres，整体替换
func importCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Replace gates and office table in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gs, err := gate.Bundled()
			if o.gates != "" {
				gs, err = gate.LoadFile(o.gates)
			}
			if err != nil {
				return err
			}
			t, err := palette.Bundled()
			if o.offices != "" {
				t, err = palette.LoadFile(o.offices)
			}
			if err != nil {
				return err
			}
			db, err := utils.OpenPostgresFromEnv()
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()
			if err := migrate.EnsureSchema(db); err != nil {
				return fmt.Errorf("schema: %w", err)
			}
			st := store.AttachDB(db)
			if err := st.ReplaceGates(ctx, gs); err != nil {
				return err
			}
			if err := st.ReplacePalette(ctx, t); err != nil {
				return err
			}
			s := gate.Summarize(gs)
			logger.L().Info("import_done", "gates", s.Total, "positioned", s.Positioned, "offices", len(t.Offices))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d gates, %d offices\n", s.Total, len(t.Offices))
			return nil
		},
	}
}

func browseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse gates in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(d.Gates, d.Palette)
		},
	}
}

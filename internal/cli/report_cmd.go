package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/cli/formatter"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

// reportFlags mirror the filter bar: search, status, responsible and a date
// range given either explicitly or as a period preset.
type reportFlags struct {
	dashboard   string
	search      string
	status      string
	responsible string
	start, end  string
	period      string
	today       string
	theme       string
}

func (f *reportFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.dashboard, "dashboard", "d", "", "Dashboard ID, ID prefix or name (optional when only one exists)")
	fs.StringVarP(&f.search, "search", "s", "", "Case-insensitive text search across all fields")
	fs.StringVar(&f.status, "status", domain.FilterAll, "Actual status filter")
	fs.StringVar(&f.responsible, "responsible", domain.FilterAll, "Responsible filter")
	fs.StringVar(&f.start, "start", "", "Range start (YYYY-MM-DD), needs --end")
	fs.StringVar(&f.end, "end", "", "Range end (YYYY-MM-DD), needs --start")
	fs.StringVarP(&f.period, "period", "p", "", "Preset range: all, week, month, quarter, semester, year")
	fs.StringVar(&f.today, "today", "", "Reference date (YYYY-MM-DD) instead of the current date")
	fs.StringVar(&f.theme, "theme", "", "Color theme: "+strings.Join(theme.Keys(), ", "))
}

func (f *reportFlags) request(dashboardID string) (app.ReportRequest, error) {
	req := app.NewReportRequest(dashboardID)
	req.Criteria.SearchTerm = f.search
	req.Criteria.StatusFilter = f.status
	req.Criteria.ResponsibleFilter = f.responsible
	req.Period = strings.ToLower(strings.TrimSpace(f.period))

	for _, d := range []struct {
		flag string
		val  string
		dst  **domain.Date
	}{
		{"start", f.start, &req.Criteria.StartDate},
		{"end", f.end, &req.Criteria.EndDate},
		{"today", f.today, &req.Today},
	} {
		if d.val == "" {
			continue
		}
		parsed, err := domain.ParseDate(d.val)
		if err != nil {
			return req, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", d.flag, d.val)
		}
		*d.dst = &parsed
	}
	return req, nil
}

func (f *reportFlags) resolveTheme(fallback theme.Theme) (theme.Theme, error) {
	if f.theme == "" {
		if fallback.Key == "" {
			return theme.Lookup(theme.DefaultKey)
		}
		return fallback, nil
	}
	return theme.Lookup(f.theme)
}

func (f *reportFlags) build(cmd *cobra.Command, a *App) (*app.ReportResponse, error) {
	d, err := resolveDashboard(cmd.Context(), a, f.dashboard)
	if err != nil {
		return nil, err
	}
	req, err := f.request(d.ID)
	if err != nil {
		return nil, err
	}
	return a.Reports.Build(cmd.Context(), req)
}

func newReportCmd(a *App) *cobra.Command {
	var flags reportFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show status, cost and schedule views for the filtered activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.resolveTheme(a.Theme)
			if err != nil {
				return err
			}
			resp, err := flags.build(cmd, a)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReport(resp, t))
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func newAnalyzeCmd(a *App) *cobra.Command {
	var flags reportFlags
	var width int
	var raw bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write a performance analysis of the filtered activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.resolveTheme(a.Theme)
			if err != nil {
				return err
			}
			resp, err := flags.build(cmd, a)
			if err != nil {
				return err
			}
			analysis, err := a.Analysis.AnalyzeReport(cmd.Context(), resp)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(out, analysis.Text)
				return nil
			}
			style := formatter.MarkdownStyleFor(t.Key, writerIsTerminal(out))
			fmt.Fprintln(out, formatter.NewMarkdownRenderer(style).Render(analysis.Text, width))
			source := "source: " + analysis.Source
			if analysis.Model != "" {
				source += " (" + analysis.Model + ")"
			}
			fmt.Fprintln(out, formatter.Dim(source))
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the Markdown source")

	return cmd
}

func writerIsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

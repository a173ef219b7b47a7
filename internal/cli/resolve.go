package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// addDashboardFlag registers the --dashboard/-d flag shared by most commands.
func addDashboardFlag(cmd *cobra.Command, ref *string) {
	cmd.Flags().StringVarP(ref, "dashboard", "d", "", "Dashboard ID, ID prefix or name (optional when only one exists)")
}

// resolveDashboard finds the dashboard a command targets. With no reference
// the only existing dashboard is used.
func resolveDashboard(ctx context.Context, app *App, ref string) (*domain.Dashboard, error) {
	if strings.TrimSpace(ref) != "" {
		return app.Dashboards.Resolve(ctx, ref)
	}
	list, err := app.Dashboards.List(ctx)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, fmt.Errorf("no dashboards yet: create one with `tracksheet dashboard create NAME`")
	case 1:
		return list[0], nil
	default:
		return nil, fmt.Errorf("%d dashboards exist: choose one with --dashboard", len(list))
	}
}

// findActivity resolves an activity by ID or unique ID prefix.
func findActivity(activities []domain.Activity, ref string) (domain.Activity, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	var matches []domain.Activity
	for _, a := range activities {
		if a.ID == ref {
			return a, nil
		}
		if ref != "" && strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Activity{}, fmt.Errorf("activity not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Activity{}, fmt.Errorf("activity ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"focusdrive/internal/bootstrap"
	routedto "focusdrive/internal/modules/route/dto"
	"focusdrive/internal/platform/config"
	"focusdrive/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var home string

	root := &cobra.Command{
		Use:           "focusdrive",
		Short:         "Focus sessions as simulated road trips",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&home, "home", config.DefaultHome(), "data directory")

	root.AddCommand(newTUICmd(&home))
	root.AddCommand(newVehicleCmd(&home))
	root.AddCommand(newDestinationCmd(&home))
	root.AddCommand(newRouteCmd(&home))
	root.AddCommand(newDriveCmd(&home))
	root.AddCommand(newAchievementCmd(&home))
	root.AddCommand(newBlockCmd(&home))
	root.AddCommand(newProviderCmd(&home))
	return root
}

// loadApp wires the application. Logs go to stderr unless logFile is set,
// in which case they are appended to the log file in the home directory.
func loadApp(home string, logFile bool) (*bootstrap.App, error) {
	cfg, err := config.New(home)
	if err != nil {
		return nil, err
	}
	var w io.Writer = os.Stderr
	var closeLog func()
	if logFile {
		f, err := logging.OpenFile(cfg.LogPath)
		if err != nil {
			return nil, err
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}
	logger, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		if closeLog != nil {
			closeLog()
		}
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		if closeLog != nil {
			closeLog()
		}
		return nil, err
	}
	if closeLog != nil {
		app.OnClose(closeLog)
	}
	return app, nil
}

func withApp(home *string, run func(ctx context.Context, app *bootstrap.App, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(*home, false)
		if err != nil {
			return err
		}
		defer app.Close()
		return run(cmd.Context(), app, cmd.OutOrStdout())
	}
}

func newTUICmd(home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusdrive terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*home, true)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newVehicleCmd(home *string) *cobra.Command {
	vehicle := &cobra.Command{Use: "vehicle", Short: "Garage commands"}
	vehicle.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List vehicles and their unlock state",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			vehicles, err := app.GarageCLI.List(ctx)
			if err != nil {
				return err
			}
			for _, v := range vehicles {
				state := "unlocked"
				if !v.Unlocked {
					state = fmt.Sprintf("locked until %.0f fleet miles", v.UnlockMiles)
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\tused=%d miles=%.1f\t%s\n", v.ID, v.Name, v.TypeLabel, v.TimesUsed, v.TotalMiles, state)
			}
			return nil
		}),
	})
	return vehicle
}

func newDestinationCmd(home *string) *cobra.Command {
	destination := &cobra.Command{Use: "destination", Short: "Browse destinations"}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List destinations, optionally by category",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			destinations, err := app.RouteCLI.ListDestinations(ctx, category)
			if err != nil {
				return err
			}
			printDestinations(out, destinations)
			return nil
		}),
	}
	list.Flags().StringVar(&category, "category", "", "destination category")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search destinations by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				destinations, err := app.RouteCLI.SearchDestinations(ctx, args[0])
				if err != nil {
					return err
				}
				printDestinations(out, destinations)
				return nil
			})(cmd, args)
		},
	}

	var origin originFlags
	var radius float64
	nearby := &cobra.Command{
		Use:   "nearby",
		Short: "List destinations within a radius of the origin",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			destinations, err := app.RouteCLI.NearbyDestinations(ctx, origin.place(), radius)
			if err != nil {
				return err
			}
			printDestinations(out, destinations)
			return nil
		}),
	}
	origin.register(nearby)
	nearby.Flags().Float64Var(&radius, "radius", 100, "radius in miles")

	destination.AddCommand(list, search, nearby)
	return destination
}

func printDestinations(out io.Writer, destinations []routedto.DestinationOutput) {
	if len(destinations) == 0 {
		_, _ = fmt.Fprintln(out, "no destinations")
		return
	}
	for _, d := range destinations {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%.4f,%.4f\t%.1f mi\n", d.Name, d.CategoryLabel, d.Lat, d.Lon, d.DistanceMiles)
	}
}

type originFlags struct {
	name     string
	lat, lon float64
	set      bool
}

func (o *originFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.name, "origin-name", "", "origin name (defaults to the configured origin)")
	cmd.Flags().Float64Var(&o.lat, "origin-lat", 0, "origin latitude")
	cmd.Flags().Float64Var(&o.lon, "origin-lon", 0, "origin longitude")
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		o.set = cmd.Flags().Changed("origin-lat") || cmd.Flags().Changed("origin-lon")
	}
}

func (o *originFlags) place() *routedto.Place {
	if !o.set {
		return nil
	}
	name := o.name
	if strings.TrimSpace(name) == "" {
		name = "Custom Origin"
	}
	return &routedto.Place{Name: name, Lat: o.lat, Lon: o.lon}
}

func newRouteCmd(home *string) *cobra.Command {
	route := &cobra.Command{Use: "route", Short: "Plan and list routes"}

	var destination, routeType, customName string
	var customLat, customLon float64
	var origin originFlags
	plan := &cobra.Command{
		Use:   "plan --destination <name>",
		Short: "Plan a route to a destination",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			var (
				r   routedto.RouteOutput
				err error
			)
			if strings.TrimSpace(customName) != "" {
				r, err = app.RouteCLI.PlanCustom(ctx, customName, customLat, customLon, routeType)
			} else {
				if strings.TrimSpace(destination) == "" {
					return fmt.Errorf("--destination or --custom-name is required")
				}
				r, err = app.RouteCLI.Plan(ctx, destination, routeType, origin.place())
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "route %s: %s -> %s %.1f mi ~%d min (%s)\n", r.ID, r.OriginName, r.DestinationName, r.DistanceMiles, r.EstimatedMinutes, r.RouteType)
			return nil
		}),
	}
	plan.Flags().StringVar(&destination, "destination", "", "destination name")
	plan.Flags().StringVar(&routeType, "type", "scenic", "route type: highway|scenic|backroads")
	plan.Flags().StringVar(&customName, "custom-name", "", "plan to a custom destination with this name")
	plan.Flags().Float64Var(&customLat, "custom-lat", 0, "custom destination latitude")
	plan.Flags().Float64Var(&customLon, "custom-lon", 0, "custom destination longitude")
	origin.register(plan)

	var completedOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List planned routes",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			routes, err := app.RouteCLI.ListRoutes(ctx, completedOnly)
			if err != nil {
				return err
			}
			if len(routes) == 0 {
				_, _ = fmt.Fprintln(out, "no routes")
				return nil
			}
			for _, r := range routes {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%.1f mi\t%s\tcompleted=%t times=%d\n", r.ID, r.DestinationName, r.DistanceMiles, r.RouteType, r.Completed, r.TimesCompleted)
			}
			return nil
		}),
	}
	list.Flags().BoolVar(&completedOnly, "completed", false, "only completed routes")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show route totals",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.RouteCLI.Stats(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "completed routes: %d\ntotal distance: %.1f mi\nunique destinations: %d\n", s.CompletedRoutes, s.TotalDistanceMiles, s.UniqueDestinations)
			return nil
		}),
	}

	route.AddCommand(plan, list, stats)
	return route
}

func newAchievementCmd(home *string) *cobra.Command {
	achievement := &cobra.Command{Use: "achievement", Short: "Achievement progress"}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List achievements",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			list, err := app.AchievementCLI.List(ctx, filter)
			if err != nil {
				return err
			}
			for _, a := range list {
				mark := " "
				if a.Unlocked {
					mark = "x"
				}
				_, _ = fmt.Fprintf(out, "[%s] %s\t%s\t%3.0f%%\t%s\n", mark, a.Name, a.Category, a.Progress*100, a.Description)
			}
			return nil
		}),
	}
	list.Flags().StringVar(&filter, "filter", "all", "all|unlocked|in_progress|locked or a category")

	next := &cobra.Command{
		Use:   "next",
		Short: "Show the closest locked achievement",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			a, err := app.AchievementCLI.Next(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s: %s (%.0f%%)\n", a.Name, a.Description, a.Progress*100)
			return nil
		}),
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show unlock counts per category",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.AchievementCLI.Summary(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "unlocked %d/%d (%d%%)\n", s.Unlocked, s.Total, s.Percent)
			for _, c := range s.Categories {
				_, _ = fmt.Fprintf(out, "  %s: %d/%d\n", c.Category, c.Unlocked, c.Total)
			}
			return nil
		}),
	}

	achievement.AddCommand(list, next, summary)
	return achievement
}

func newBlockCmd(home *string) *cobra.Command {
	block := &cobra.Command{Use: "block", Short: "App shielding"}
	block.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show shield state",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.FocusCLI.Status(ctx)
			if err != nil {
				return err
			}
			printShield(out, s.Authorization, s.Blocking, s.SessionBlocking, s.Categories, s.Message, s.Error)
			return nil
		}),
	})
	block.AddCommand(&cobra.Command{
		Use:   "authorize",
		Short: "Request shielding authorization",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.FocusCLI.Authorize(ctx)
			if err != nil {
				return err
			}
			printShield(out, s.Authorization, s.Blocking, s.SessionBlocking, s.Categories, s.Message, s.Error)
			return nil
		}),
	})

	var preset string
	var categories []string
	start := &cobra.Command{
		Use:   "start",
		Short: "Start blocking a preset or category list",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.FocusCLI.Start(ctx, preset, categories)
			if err != nil {
				return err
			}
			printShield(out, s.Authorization, s.Blocking, s.SessionBlocking, s.Categories, s.Message, s.Error)
			return nil
		}),
	}
	start.Flags().StringVar(&preset, "preset", "", "preset name")
	start.Flags().StringSliceVar(&categories, "categories", nil, "categories to block")

	block.AddCommand(start, &cobra.Command{
		Use:   "stop",
		Short: "Stop manual blocking",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			s, err := app.FocusCLI.Stop(ctx)
			if err != nil {
				return err
			}
			printShield(out, s.Authorization, s.Blocking, s.SessionBlocking, s.Categories, s.Message, s.Error)
			return nil
		}),
	}, &cobra.Command{
		Use:   "presets",
		Short: "List blocking presets",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			for _, p := range app.FocusCLI.Presets(ctx) {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", p.Name, p.Description, strings.Join(p.Categories, ","))
			}
			return nil
		}),
	})
	return block
}

func printShield(out io.Writer, authorization string, blocking, sessionBlocking bool, categories []string, message, errMsg string) {
	_, _ = fmt.Fprintf(out, "authorization=%s blocking=%t session=%t categories=%s\n", authorization, blocking, sessionBlocking, strings.Join(categories, ","))
	if message != "" {
		_, _ = fmt.Fprintln(out, message)
	}
	if errMsg != "" {
		_, _ = fmt.Fprintf(out, "error: %s\n", errMsg)
	}
}

func newProviderCmd(home *string) *cobra.Command {
	provider := &cobra.Command{Use: "provider", Short: "Provider plugins"}
	provider.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List provider manifests",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			providers, err := app.ProviderCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				_, _ = fmt.Fprintln(out, "no providers configured")
				return nil
			}
			for _, p := range providers {
				_, _ = fmt.Fprintf(out, "%s@%s enabled=%t priority=%d capabilities=%s binary=%s\n", p.Name, p.Version, p.Enabled, p.Priority, strings.Join(p.Capabilities, ","), p.Binary)
			}
			return nil
		}),
	})
	provider.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate provider binaries, checksums and lifecycle",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			results, err := app.ProviderCLI.Doctor(ctx)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(out, "no providers configured")
				return nil
			}
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
				}
				_, _ = fmt.Fprintf(out, "%s binary=%t checksum=%t lifecycle=%t %s\n", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, status)
			}
			return nil
		}),
	})
	return provider
}

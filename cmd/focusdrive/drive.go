package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusdrive/internal/bootstrap"
	drivedto "focusdrive/internal/modules/drive/dto"
)

func newDriveCmd(home *string) *cobra.Command {
	drive := &cobra.Command{Use: "drive", Short: "Focus drive lifecycle"}

	var vehicleID, routeID string
	var detach bool
	start := &cobra.Command{
		Use:   "start --vehicle <id> --route <id>",
		Short: "Start a drive and follow it until arrival",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			if strings.TrimSpace(vehicleID) == "" || strings.TrimSpace(routeID) == "" {
				return fmt.Errorf("--vehicle and --route are required")
			}
			snap, err := app.DriveCLI.Start(ctx, vehicleID, routeID)
			if err != nil {
				return err
			}
			s := snap.Session
			_, _ = fmt.Fprintf(out, "drive started: %s %s -> %s %.1f mi\n", s.ID, s.VehicleName, s.DestinationName, s.TargetDistance)
			if detach {
				return nil
			}
			return follow(ctx, app, out)
		}),
	}
	start.Flags().StringVar(&vehicleID, "vehicle", "classic-sedan", "vehicle id")
	start.Flags().StringVar(&routeID, "route", "", "route id from route plan")
	start.Flags().BoolVar(&detach, "detach", false, "start without following the drive")

	resume := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused drive and follow it",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			snap, err := app.DriveCLI.Resume(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "drive resumed: %s %d%%\n", snap.Session.ID, snap.ProgressPercent)
			if detach {
				return nil
			}
			return follow(ctx, app, out)
		}),
	}
	resume.Flags().BoolVar(&detach, "detach", false, "resume without following the drive")

	pause := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running drive",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			snap, err := app.DriveCLI.Pause(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "drive paused: %s %d%% breaks=%d\n", snap.Session.ID, snap.ProgressPercent, snap.Session.BreaksTaken)
			return nil
		}),
	}

	var completed bool
	end := &cobra.Command{
		Use:   "end",
		Short: "End the open drive",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			ended, err := app.DriveCLI.End(ctx, completed)
			if err != nil {
				return err
			}
			return report(ctx, app, out, ended)
		}),
	}
	end.Flags().BoolVar(&completed, "completed", false, "mark the drive completed instead of abandoned")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the open drive",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			snap, err := app.DriveCLI.Status(ctx)
			if err != nil {
				return err
			}
			if !snap.Open {
				_, _ = fmt.Fprintln(out, "no open drive")
				return nil
			}
			s := snap.Session
			_, _ = fmt.Fprintf(out, "id: %s\nstatus: %s\nvehicle: %s\ndestination: %s\nprogress: %d%% (%.2f mi left)\nfuel: %.0f%%\nspeed: %.0f mph\nremaining: %s\n",
				s.ID, s.Status, s.VehicleName, s.DestinationName, snap.ProgressPercent, snap.DistanceRemaining, s.Fuel*100, s.Speed, snap.TimeRemaining.Round(time.Second))
			return nil
		}),
	}

	var historyStatus string
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List past drives",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			sessions, err := app.DriveCLI.History(ctx, historyStatus, limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(out, "no drives")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%.1f mi\t%d min\t%s\n", s.StartedAt.Local().Format("2006-01-02 15:04"), s.ID, s.Status, s.DestinationName, s.TargetDistance, s.DurationMinutes, stars(s.FuelEfficiency))
			}
			return nil
		}),
	}
	history.Flags().StringVar(&historyStatus, "status", "", "active|paused|completed|abandoned")
	history.Flags().IntVar(&limit, "limit", 20, "maximum drives to list")

	var postcardLimit int
	postcards := &cobra.Command{
		Use:   "postcards",
		Short: "List postcards earned on completed drives",
		RunE: withApp(home, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			cards, err := app.DriveCLI.Postcards(ctx, postcardLimit)
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				_, _ = fmt.Fprintln(out, "no postcards yet")
				return nil
			}
			for _, c := range cards {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%.1f mi\t%s\t%s\n", c.EarnedAt.Local().Format("2006-01-02"), c.DestinationName, c.Miles, stars(c.Rating), c.Path)
			}
			return nil
		}),
	}
	postcards.Flags().IntVar(&postcardLimit, "limit", 10, "maximum postcards to list")

	drive.AddCommand(start, resume, pause, end, status, history, postcards)
	return drive
}

// follow runs the ticker until the drive ends or pauses. An interrupt pauses
// the drive so it can be resumed later.
func follow(ctx context.Context, app *bootstrap.App, out io.Writer) error {
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := app.Ticker(func(snap drivedto.Snapshot) {
		s := snap.Session
		_, _ = fmt.Fprintf(out, "\r%3d%% %5.1f mph fuel %3.0f%% %s left   ", snap.ProgressPercent, s.Speed, s.Fuel*100, snap.TimeRemaining.Round(time.Second))
	})
	last, err := ticker.Run(runCtx)
	_, _ = fmt.Fprintln(out)
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		snap, pauseErr := app.DriveCLI.Pause(ctx)
		if pauseErr != nil {
			return pauseErr
		}
		_, _ = fmt.Fprintf(out, "drive paused at %d%%; run `focusdrive drive resume` to continue\n", snap.ProgressPercent)
		return nil
	}
	if err != nil {
		return err
	}
	if last.Ended != nil {
		return report(ctx, app, out, *last.Ended)
	}
	if last.Open && !last.Running {
		_, _ = fmt.Fprintln(out, "drive paused")
	}
	return nil
}

func report(ctx context.Context, app *bootstrap.App, out io.Writer, ended drivedto.EndOutput) error {
	s := ended.Session
	_, _ = fmt.Fprintf(out, "drive %s: %s %.1f mi in %d min %s\n", s.Status, s.DestinationName, ended.VehicleMiles, s.DurationMinutes, stars(s.FuelEfficiency))
	if ended.PostcardPath != "" {
		_, _ = fmt.Fprintf(out, "postcard: %s\n", ended.PostcardPath)
	}
	for _, v := range ended.NewlyUnlocked {
		_, _ = fmt.Fprintf(out, "vehicle unlocked: %s\n", v)
	}
	check, err := app.Arrived(ctx, ended)
	if err != nil {
		return err
	}
	for _, a := range check.NewlyUnlocked {
		_, _ = fmt.Fprintf(out, "achievement unlocked: %s (%s)\n", a.Name, a.Description)
	}
	return nil
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

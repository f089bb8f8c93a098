package bootstrap

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	achievementinadapter "focusdrive/internal/modules/achievement/adapter/in"
	achievementoutadapter "focusdrive/internal/modules/achievement/adapter/out"
	achievementdto "focusdrive/internal/modules/achievement/dto"
	achievementin "focusdrive/internal/modules/achievement/port/in"
	achievementservice "focusdrive/internal/modules/achievement/service"
	achievementusecase "focusdrive/internal/modules/achievement/usecase"
	driveinadapter "focusdrive/internal/modules/drive/adapter/in"
	driveoutadapter "focusdrive/internal/modules/drive/adapter/out"
	drivedto "focusdrive/internal/modules/drive/dto"
	drivein "focusdrive/internal/modules/drive/port/in"
	driveservice "focusdrive/internal/modules/drive/service"
	driveusecase "focusdrive/internal/modules/drive/usecase"
	feedbackoutadapter "focusdrive/internal/modules/feedback/adapter/out"
	feedbackout "focusdrive/internal/modules/feedback/port/out"
	feedbackservice "focusdrive/internal/modules/feedback/service"
	feedbackusecase "focusdrive/internal/modules/feedback/usecase"
	focusinadapter "focusdrive/internal/modules/focus/adapter/in"
	focusoutadapter "focusdrive/internal/modules/focus/adapter/out"
	focusout "focusdrive/internal/modules/focus/port/out"
	focusservice "focusdrive/internal/modules/focus/service"
	focususecase "focusdrive/internal/modules/focus/usecase"
	garageinadapter "focusdrive/internal/modules/garage/adapter/in"
	garageoutadapter "focusdrive/internal/modules/garage/adapter/out"
	garageservice "focusdrive/internal/modules/garage/service"
	garageusecase "focusdrive/internal/modules/garage/usecase"
	providerinadapter "focusdrive/internal/modules/provider/adapter/in"
	provideroutadapter "focusdrive/internal/modules/provider/adapter/out"
	providerdomain "focusdrive/internal/modules/provider/domain"
	providerin "focusdrive/internal/modules/provider/port/in"
	providerservice "focusdrive/internal/modules/provider/service"
	providerusecase "focusdrive/internal/modules/provider/usecase"
	routeinadapter "focusdrive/internal/modules/route/adapter/in"
	routeoutadapter "focusdrive/internal/modules/route/adapter/out"
	routeout "focusdrive/internal/modules/route/port/out"
	routeservice "focusdrive/internal/modules/route/service"
	routeusecase "focusdrive/internal/modules/route/usecase"
	"focusdrive/internal/platform/clock"
	"focusdrive/internal/platform/config"
	"focusdrive/internal/platform/geo"
	"focusdrive/internal/platform/id"
	"focusdrive/internal/platform/sqlite"
	uiapp "focusdrive/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *log.Logger

	GarageCLI      garageinadapter.CLIHandler
	RouteCLI       routeinadapter.CLIHandler
	DriveCLI       driveinadapter.CLIHandler
	AchievementCLI achievementinadapter.CLIHandler
	FocusCLI       focusinadapter.CLIHandler
	ProviderCLI    providerinadapter.CLIHandler

	drive        drivein.Usecase
	achievements achievementin.Usecase
	closers      []func()
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	ctx := context.Background()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	app := &App{Config: cfg, Logger: logger}
	app.closers = append(app.closers, func() { _ = db.Close() })

	host := provideroutadapter.NewGRPCHost(logger.GetLevel() <= log.DebugLevel)
	app.closers = append(app.closers, host.Close)
	providerUC := providerusecase.NewInteractor(providerservice.NewProviderService(
		provideroutadapter.NewFileManifestStore(cfg.Home),
		host,
	))

	garageUC := garageusecase.NewInteractor(garageservice.NewGarageService(garageoutadapter.NewSQLiteVehicleStore(db)))

	var directions routeout.Directions = routeoutadapter.NewEstimatorDirections()
	if resolved(ctx, providerUC, providerdomain.CapabilityDirections, logger) {
		directions = routeoutadapter.NewProviderDirections(providerUC)
	}
	routeUC := routeusecase.NewInteractor(routeservice.NewRouteService(
		clk, ids,
		routeoutadapter.NewSQLiteRouteStore(db),
		directions,
		routeservice.Place{Name: cfg.OriginName, Coordinate: geo.Coordinate{Lat: cfg.OriginLat, Lon: cfg.OriginLon}},
	))

	shieldStore := focusoutadapter.NewSQLiteStateStore(db)
	var shield focusout.Shield = focusoutadapter.NewLocalShield(shieldStore, logger)
	if resolved(ctx, providerUC, providerdomain.CapabilityShield, logger) {
		shield = focusoutadapter.NewProviderShield(providerUC)
	}
	focusUC := focususecase.NewInteractor(focusservice.NewFocusService(shield, shieldStore, logger))

	feedbackUC := feedbackusecase.NewInteractor(feedbackservice.NewFeedbackService(
		player(ctx, cfg.Feedback, providerUC, logger),
		logger,
	))

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	driveUC := driveusecase.NewInteractor(
		driveservice.NewDriveService(clk, ids, driveoutadapter.NewSQLiteSessionStore(db), rng, cfg.TickInterval, logger),
		driveusecase.Deps{
			Garage:   driveoutadapter.NewGarageBridge(garageUC),
			Routes:   driveoutadapter.NewRouteBridge(routeUC),
			Shield:   driveoutadapter.NewShieldBridge(focusUC),
			Feedback: driveoutadapter.NewFeedbackBridge(feedbackUC),
			Journal:  driveoutadapter.NewMarkdownJournal(cfg.JournalDir),
			Logger:   logger,
		},
	)

	achievementUC := achievementusecase.NewInteractor(achievementservice.NewAchievementService(
		clk, cfg.Location,
		achievementoutadapter.NewSQLiteAchievementStore(db),
		achievementoutadapter.NewHistoryBridge(driveUC, routeUC),
		logger,
	))

	app.GarageCLI = garageinadapter.NewCLIHandler(garageUC)
	app.RouteCLI = routeinadapter.NewCLIHandler(routeUC)
	app.DriveCLI = driveinadapter.NewCLIHandler(driveUC)
	app.AchievementCLI = achievementinadapter.NewCLIHandler(achievementUC)
	app.FocusCLI = focusinadapter.NewCLIHandler(focusUC)
	app.ProviderCLI = providerinadapter.NewCLIHandler(providerUC)
	app.drive = driveUC
	app.achievements = achievementUC
	return app, nil
}

// OnClose registers fn to run when the app closes.
func (a *App) OnClose(fn func()) {
	a.closers = append([]func(){fn}, a.closers...)
}

// Close releases provider processes and the database, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Ticker drives the open session at the configured wall interval.
func (a *App) Ticker(onTick func(drivedto.Snapshot)) driveinadapter.Ticker {
	return driveinadapter.NewTicker(a.drive, a.Config.WallInterval(), onTick)
}

// Arrived evaluates achievements once a drive has ended.
func (a *App) Arrived(ctx context.Context, ended drivedto.EndOutput) (achievementdto.CheckOutput, error) {
	return a.achievements.CheckAfter(ctx, achievementdto.SessionInput{
		ID:             ended.Session.ID,
		Status:         ended.Session.Status,
		FuelEfficiency: ended.Session.FuelEfficiency,
	})
}

func RunTUI(app *App) error {
	updates, cancel := app.drive.Subscribe(16)
	defer cancel()
	model := uiapp.NewModel(uiapp.Deps{
		Drive:        app.drive,
		Updates:      updates,
		Achievements: app.achievements,
		Garage:       app.GarageCLI,
		Routes:       app.RouteCLI,
		Focus:        app.FocusCLI,
		Providers:    app.ProviderCLI,
		Interval:     app.Config.WallInterval(),
		Arrived:      app.Arrived,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func resolved(ctx context.Context, providers providerin.Usecase, capability providerdomain.Capability, logger *log.Logger) bool {
	info, err := providers.Resolve(ctx, string(capability))
	if err != nil {
		logger.Debug("using built-in backend", "capability", capability, "reason", err)
		return false
	}
	logger.Info("using provider", "capability", capability, "provider", info.Name)
	return true
}

func player(ctx context.Context, backend string, providers providerin.Usecase, logger *log.Logger) feedbackout.Player {
	switch backend {
	case config.FeedbackProvider:
		if resolved(ctx, providers, providerdomain.CapabilityFeedback, logger) {
			return feedbackoutadapter.NewProviderPlayer(providers)
		}
		logger.Warn("no feedback provider available, falling back to bell")
		return feedbackoutadapter.NewBellPlayer(os.Stderr)
	case config.FeedbackLog:
		return feedbackoutadapter.NewLogPlayer(logger)
	case config.FeedbackNone:
		return feedbackoutadapter.NopPlayer{}
	default:
		return feedbackoutadapter.NewBellPlayer(os.Stderr)
	}
}

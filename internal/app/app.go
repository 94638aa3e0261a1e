package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/argosbackup/argos/internal/adapter/compressor"
	"github.com/argosbackup/argos/internal/adapter/database"
	"github.com/argosbackup/argos/internal/adapter/notifier"
	"github.com/argosbackup/argos/internal/adapter/storage"
	"github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
	"github.com/argosbackup/argos/internal/identity"
	"github.com/argosbackup/argos/internal/infrastructure/journal"
	"github.com/argosbackup/argos/internal/infrastructure/logger"
	"github.com/argosbackup/argos/internal/infrastructure/scheduler"
	"github.com/argosbackup/argos/internal/usecase"
)

type App struct {
	cfg         *config.Config
	logger      *logger.Logger
	mainJournal *journal.Journal
	errJournal  *journal.Journal
	db          *database.MySQLDatabase
	store       domain.RemoteStore
	notifier    domain.Notifier
	scheduler   *scheduler.Scheduler

	hostname  string
	machineID string

	preflight *usecase.Preflight
	backup    *usecase.Backup
	transfer  *usecase.Transfer
	cleanup   *usecase.Cleanup
}

func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Agent.LogLevel, cfg.Agent.LogFile, cfg.Agent.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Local directory provisioning: dumps, logs and conf must exist before
	// anything journals or reads credentials.
	for _, dir := range []string{cfg.DumpsDir(), cfg.LogsDir(), cfg.ConfDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	mainJournal := journal.New(cfg.MainLogPath(), cfg.Agent.Debug, color.New(color.FgGreen))
	errJournal := journal.New(cfg.ErrorLogPath(), cfg.Agent.Debug, color.New(color.FgRed))

	hostname := cfg.Agent.Hostname
	if hostname == "" {
		hostname, err = os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve hostname: %w", err)
		}
	}

	machineID, created, err := identity.Resolve(cfg.IdentityPath())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve machine identity: %w", err)
	}
	if created {
		_ = mainJournal.Append(fmt.Sprintf("generated machine identity %s", machineID))
	}

	notif := buildNotifier(cfg, hostname, log)

	password, err := config.ExtractPassword(cfg.Database.DefaultsFile)
	if err != nil {
		msg := fmt.Sprintf("credential extraction failed: %v", err)
		_ = errJournal.Append(msg)
		if nerr := notif.Notify(context.Background(), msg); nerr != nil {
			log.Errorf("failure notification not delivered: %v", nerr)
		}
		return nil, fmt.Errorf("extract credentials: %w", err)
	}

	db, err := database.NewMySQL(&cfg.Database, password, compressor.NewGzip())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database adapter: %w", err)
	}

	store, err := buildRemoteStore(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("remote target: %s", store.Name())

	journalPaths := []string{cfg.MainLogPath(), cfg.ErrorLogPath()}
	window := time.Duration(cfg.Retention.WindowMinutes) * time.Minute

	return &App{
		cfg:         cfg,
		logger:      log,
		mainJournal: mainJournal,
		errJournal:  errJournal,
		db:          db,
		store:       store,
		notifier:    notif,
		scheduler:   scheduler.New(log),
		hostname:    hostname,
		machineID:   machineID,
		preflight:   usecase.NewPreflight(cfg, db, notif, errJournal, log),
		backup:      usecase.NewBackup(db, notif, mainJournal, errJournal, log),
		transfer:    usecase.NewTransfer(store, notif, mainJournal, errJournal, log),
		cleanup:     usecase.NewCleanup(cfg.DumpsDir(), window, cfg.Retention.MaxLogLines, journalPaths, mainJournal, log),
	}, nil
}

func buildNotifier(cfg *config.Config, hostname string, log *logger.Logger) domain.Notifier {
	channels := []domain.Notifier{notifier.NewEmail(&cfg.Mail, hostname)}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tg, err := notifier.NewTelegram(&cfg.Telegram, hostname)
		if err != nil {
			log.Errorf("failed to initialize telegram notifier: %v", err)
		} else {
			channels = append(channels, tg)
			log.Infof("telegram notifications enabled")
		}
	}

	return notifier.NewComposite(channels...)
}

func buildRemoteStore(cfg *config.Config) (domain.RemoteStore, error) {
	switch cfg.Remote.Type {
	case "scp":
		return storage.NewSCP(&cfg.Remote), nil
	case "s3":
		store, err := storage.NewS3(&cfg.Remote)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 remote: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported remote type %q", cfg.Remote.Type)
	}
}

// Run executes a single backup run, or stays resident running on the
// configured cron schedule when one is set.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Agent.Schedule == "" {
		return a.runOnce(ctx)
	}

	a.logger.Infof("scheduling backup runs: %s", a.cfg.Agent.Schedule)
	if err := a.scheduler.AddJob(a.cfg.Agent.Schedule, a.runOnce); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}
	a.scheduler.Start()
	<-ctx.Done()
	return nil
}

func (a *App) runOnce(ctx context.Context) error {
	rc := a.newRunContext()
	a.logger.Infof("starting backup run for %s (%s)", rc.HostDir(), rc.Weekday)

	if err := a.preflight.Execute(ctx, rc); err != nil {
		return err
	}

	if err := a.provision(ctx, rc); err != nil {
		return err
	}

	if err := a.backup.Execute(ctx, rc); err != nil {
		return err
	}

	if err := a.transfer.Execute(ctx, rc); err != nil {
		return err
	}

	// Cleanup only runs after a successful transfer.
	if err := a.cleanup.Execute(ctx); err != nil {
		a.logger.Warnf("cleanup: %v", err)
	}

	_ = a.mainJournal.Append(fmt.Sprintf("backup run completed for %s", rc.HostDir()))
	a.logger.Infof("backup run completed")
	return nil
}

func (a *App) provision(ctx context.Context, rc domain.RunContext) error {
	if err := os.MkdirAll(rc.LocalDayDir, 0755); err != nil {
		msg := fmt.Sprintf("could not create %s: %v", rc.LocalDayDir, err)
		_ = a.errJournal.Append(msg)
		return fmt.Errorf("provision: %w", err)
	}

	if err := a.store.EnsureDayDir(ctx, rc); err != nil {
		msg := fmt.Sprintf("remote provisioning failed: %v", err)
		_ = a.errJournal.Append(msg)
		if nerr := a.notifier.Notify(ctx, msg); nerr != nil {
			a.logger.Errorf("failure notification not delivered: %v", nerr)
		}
		return fmt.Errorf("provision: %w", err)
	}

	return nil
}

func (a *App) newRunContext() domain.RunContext {
	now := time.Now()
	weekday := now.Weekday().String()
	hostDir := a.hostname + "-" + a.machineID

	return domain.RunContext{
		Hostname:    a.hostname,
		MachineID:   a.machineID,
		Date:        now.Format("2006-01-02"),
		Weekday:     weekday,
		LocalDayDir: filepath.Join(a.cfg.DumpsDir(), hostDir, weekday),
		StartedAt:   now,
	}
}

func (a *App) Shutdown() {
	a.scheduler.Stop()
	if a.db != nil {
		_ = a.db.Close()
	}
	a.logger.Close()
}

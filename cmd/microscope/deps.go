package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/microscope-solo/internal/application/handlers"
	"github.com/ersonp/microscope-solo/internal/domain/ports"
	"github.com/ersonp/microscope-solo/internal/domain/services"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
	embedder "github.com/ersonp/microscope-solo/internal/infrastructure/embedder/openai"
	"github.com/ersonp/microscope-solo/internal/infrastructure/logging"
	"github.com/ersonp/microscope-solo/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/microscope-solo/internal/infrastructure/sessionfile"
	"github.com/ersonp/microscope-solo/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	BasePath string
	Config   *config.Config
	Sessions *config.SessionsConfig
	Session  string
	Logger   *zap.Logger

	Play    *handlers.PlayHandler
	Status  *handlers.StatusHandler
	Archive *handlers.ArchiveHandler
	Import  *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	store          *sessionfile.Store
	sessionService *services.SessionService
}

// baseDeps is what every command needs before a session is chosen.
type baseDeps struct {
	basePath string
	cfg      *config.Config
	sessions *config.SessionsConfig
	logger   *zap.Logger
}

// withBase loads config, the session registry and the logger.
func withBase(fn func(*baseDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sessions, err := config.LoadSessions(cwd)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return fn(&baseDeps{
		basePath: cwd,
		cfg:      cfg,
		sessions: sessions,
		logger:   logger,
	})
}

// withDeps resolves the session, opens its store and archive, then calls fn.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	return withBase(func(b *baseDeps) error {
		session, err := b.sessions.Resolve(globalSession)
		if err != nil {
			return err
		}

		archive, closeArchive, err := openArchive(ctx, b.basePath, session, b.cfg.Archive)
		if err != nil {
			return err
		}
		defer closeArchive()

		store := sessionfile.NewStore(b.basePath)
		sessionService := services.NewSessionService(session, store, archive, b.cfg.Archive.KeepVersions, b.logger)

		deps := &internalDeps{
			Deps: Deps{
				BasePath: b.basePath,
				Config:   b.cfg,
				Sessions: b.sessions,
				Session:  session,
				Logger:   b.logger,
				Play:     handlers.NewPlayHandler(sessionService, b.logger),
				Status:   handlers.NewStatusHandler(sessionService),
				Archive:  handlers.NewArchiveHandler(sessionService),
				Import:   handlers.NewImportHandler(services.NewPaletteImportService(sessionService)),
			},
			store:          store,
			sessionService: sessionService,
		}

		return fn(deps)
	})
}

// openArchive opens the session's SQLite archive, or returns a nil archive
// when archiving is disabled.
func openArchive(ctx context.Context, basePath, session string, cfg config.ArchiveConfig) (ports.Archive, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	if cfg.Path == "" {
		if err := os.MkdirAll(config.SessionDir(basePath, session), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating session directory: %w", err)
		}
		cfg.Path = config.ArchivePathForSession(basePath, session)
	}

	repo, err := sqlite.NewRepository(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return repo, func() { repo.Close() }, nil
}

// recallDeps adds the recall index to the session dependencies.
type recallDeps struct {
	*Deps
	Recall *handlers.RecallHandler
}

// withRecall connects to Qdrant and the embedder for the session's collection.
func withRecall(ctx context.Context, fn func(*recallDeps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		repo, err := openCollection(d.Config, d.Sessions, d.Session)
		if err != nil {
			return err
		}
		defer repo.Close()

		emb, err := embedder.NewEmbedder(d.Config.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		recall := services.NewRecallService(emb, repo, repo, emb.Dimensions(), d.Logger)
		return fn(&recallDeps{
			Deps:   &d.Deps,
			Recall: handlers.NewRecallHandler(d.sessionService, recall),
		})
	})
}

// openCollection connects to the Qdrant collection registered for session.
func openCollection(cfg *config.Config, sessions *config.SessionsConfig, session string) (*qdrant.Repository, error) {
	entry, err := sessions.Get(session)
	if err != nil {
		return nil, err
	}

	qdrantCfg := cfg.Qdrant
	qdrantCfg.Collection = entry.Collection
	if qdrantCfg.Collection == "" {
		qdrantCfg.Collection = config.GenerateCollectionName(session)
	}

	repo, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return nil, fmt.Errorf("creating qdrant repository: %w", err)
	}
	return repo, nil
}

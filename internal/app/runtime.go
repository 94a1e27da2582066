package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/config"
	"github.com/Rorical/missionchat/internal/core"
	"github.com/Rorical/missionchat/internal/identity"
	"github.com/Rorical/missionchat/internal/logging"
	"github.com/Rorical/missionchat/internal/remote"
)

// Runtime holds the dependencies shared by the TUI and the one-shot commands.
type Runtime struct {
	Config   *config.Config
	Logger   *zap.Logger
	Identity *identity.Keeper
	Mission  *remote.Client

	store identity.Store
}

// NewRuntime loads configuration and opens the log file, the identity store
// and the mission client. An identity store that cannot be opened leaves the
// keeper in degraded mode rather than failing.
func NewRuntime() (*Runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	store, err := identity.NewStore(identity.StoreType(cfg.StoreDriver), identity.WithPath(cfg.IdentityPath()))
	if err != nil {
		logger.Warn("identity store unavailable",
			zap.String("driver", cfg.StoreDriver),
			zap.Error(err))
		store = nil
	}

	logger.Info("runtime ready",
		zap.String("profile", cfg.ActiveProfile),
		zap.String("base_url", cfg.GetBaseURL()),
		zap.String("store_driver", cfg.StoreDriver))

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Identity: identity.NewKeeper(store, logger.Named("identity")),
		Mission:  remote.NewClient(cfg.GetBaseURL(), cfg.GetTimeout(), logger.Named("remote")),
		store:    store,
	}, nil
}

// NewService builds a ChatService over the runtime's mission and identity.
func (r *Runtime) NewService(opts ...core.ServiceOption) *core.ChatService {
	opts = append([]core.ServiceOption{core.WithLogger(r.Logger.Named("core"))}, opts...)
	return core.NewChatService(r.Mission, r.Identity, opts...)
}

func (r *Runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.Logger.Warn("failed to close identity store", zap.Error(err))
		}
	}
	_ = r.Logger.Sync()
}

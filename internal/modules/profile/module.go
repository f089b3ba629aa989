package profile

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/profile/service"

	"go.uber.org/fx"
)

func NewStore(lc fx.Lifecycle, cfg *config.Config) (*service.Store, error) {
	st, err := service.NewStore(cfg.Profile.SQLitePath)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return st.Close()
		},
	})
	return st, nil
}

func Module() fx.Option {
	return fx.Module("profile",
		fx.Provide(NewStore),
	)
}

package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-access-portal/internal/adapter"
	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/tui"
)

type App struct {
	adapter adapter.ServerAdapter
	tui     *tui.TUI
	logger  *logger.Logger
}

func NewApp() (*App, error) {
	log := logger.NewClientLogger("portalctl")

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.Adapter{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	ui, err := tui.New(serverAdapter, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	return &App{adapter: serverAdapter, tui: ui, logger: log}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	user, err := a.tui.LoginFlow(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	logout, err := a.tui.MainLoop(ctx, user)
	if err != nil {
		return err
	}
	if logout {
		if logoutErr := a.adapter.Logout(ctx); logoutErr != nil {
			fmt.Fprintf(os.Stderr, "logout warning: %v\n", logoutErr)
		}
		return a.Run()
	}

	return nil
}

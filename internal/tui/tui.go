package tui

import (
	"context"

	"github.com/MKhiriev/go-access-portal/internal/adapter"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	adapter adapter.ServerAdapter
}

func New(serverAdapter adapter.ServerAdapter, _ *logger.Logger) (*TUI, error) {
	return &TUI{adapter: serverAdapter}, nil
}

// LoginFlow runs the login screen until the user authenticates or quits.
// Returns [ErrUserQuit] when the user exits without logging in.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	model := newLoginModel(ctx, t.adapter)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(loginModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.User{}, ErrUserQuit
	}

	return result.user, nil
}

// MainLoop runs the account-management screens for an authenticated user.
// The returned logout flag tells the caller to restart the login flow.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.adapter, user)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}

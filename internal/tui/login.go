// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-access-portal/internal/adapter"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the Bubble Tea model for the login screen. It renders two text
// inputs (login and password) and dispatches an async login command on form
// submission. The server version is fetched in the background and shown in
// the footer once known.
type loginModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	version    string

	user       models.User
	quitByUser bool
}

func newLoginModel(ctx context.Context, serverAdapter adapter.ServerAdapter) loginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 150
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return loginModel{
		ctx:     ctx,
		adapter: serverAdapter,
		inputs:  []textinput.Model{loginInput, passwordInput},
	}
}

func (m loginModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdLoadVersion())
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case versionLoadedMsg:
		if msg.err == nil {
			m.version = msg.version
		}
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeLoginError(msg.err)
			return m, nil
		}
		m.user = msg.user
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitByUser = true
			return m, tea.Quit
		case "tab":
			m = m.focusNext()
			return m, nil
		case "shift+tab":
			m = m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if login == "" || pass == "" {
				m.errMsg = "Логин и пароль обязательны"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("Логин   │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	if m.version != "" {
		b.WriteString("\nВерсия сервера: ")
		b.WriteString(m.version)
		b.WriteString("\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "tab: след. поле │ enter: подтвердить")
}

func (m loginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		user, err := serverAdapter.Login(ctx, models.Credentials{
			Login:    login,
			Password: pass,
		})
		return loginResultMsg{user: user, err: err}
	}
}

func (m loginModel) cmdLoadVersion() tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		version, err := serverAdapter.GetServerVersion(ctx)
		return versionLoadedMsg{version: version, err: err}
	}
}

func (m loginModel) focusNext() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) focusPrev() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func humanizeLoginError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, adapter.ErrUnauthorized) {
		return "Неверный логин или пароль"
	}
	return humanizeServerUnavailableError(err)
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/adapter"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenCreate
	screenProfile
)

const statusVisibleFor = 3 * time.Second

// mainLoopModel drives the screens available after login. Staff users start
// on the account list and can inspect, create, deactivate accounts and toggle
// group membership; everyone else gets a read-only profile screen.
type mainLoopModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter
	me      models.User

	currentScreen screen
	loading       bool
	saving        bool
	status        string
	errMsg        string

	users []models.User
	idx   int

	groups     []models.Group
	detailUser models.User
	groupIdx   int

	createInputs      []textinput.Model
	createFocus       int
	generatedPassword string
	createdLogin      string

	showConfirm bool

	logout bool
}

func newMainLoopModel(ctx context.Context, serverAdapter adapter.ServerAdapter, user models.User) mainLoopModel {
	m := mainLoopModel{
		ctx:           ctx,
		adapter:       serverAdapter,
		me:            user,
		currentScreen: screenProfile,
	}
	if user.IsStaff {
		m.currentScreen = screenList
		m.loading = true
	}
	return m
}

func (m mainLoopModel) Init() tea.Cmd {
	if !m.me.IsStaff {
		return nil
	}
	return tea.Batch(m.cmdLoadUsers(), m.cmdLoadGroups())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.users = msg.users
		if m.idx >= len(m.users) {
			m.idx = len(m.users) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case groupsLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.groups = msg.groups
		return m, nil

	case userUpdatedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.detailUser = msg.user
		m.replaceUser(msg.user)
		m.status = "Изменения сохранены"
		return m, tea.Batch(m.cmdLoadUsers(), m.cmdClearStatus())

	case userCreatedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.generatedPassword = msg.created.GeneratedPassword
		m.createdLogin = msg.created.User.Login
		m.status = "Пользователь " + msg.created.User.Login + " создан"
		return m, m.cmdLoadUsers()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось скопировать: " + msg.err.Error()
			return m, nil
		}
		m.status = "Скопировано в буфер обмена"
		return m, m.cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.currentScreen == screenCreate {
		var cmd tea.Cmd
		m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			m.saving = true
			return m, m.cmdSetActive(m.detailUser.UserID, !m.detailUser.IsActive)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.showConfirm = false
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentScreen {
	case screenList:
		return m.handleListKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenCreate:
		return m.handleCreateKey(msg)
	case screenProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m mainLoopModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.users)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.users) == 0 {
			return m, nil
		}
		m.currentScreen = screenDetail
		m.detailUser = m.users[m.idx]
		m.groupIdx = 0
		return m, nil
	case key.Matches(msg, keys.newUser):
		m.currentScreen = screenCreate
		m.createInputs = newCreateInputs()
		m.createFocus = 0
		m.generatedPassword = ""
		m.createdLogin = ""
		return m, textinput.Blink
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.cmdLoadUsers(), m.cmdLoadGroups())
	}
	return m, nil
}

func (m mainLoopModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(msg, keys.up):
		if m.groupIdx > 0 {
			m.groupIdx--
		}
	case key.Matches(msg, keys.down):
		if m.groupIdx < len(m.groups)-1 {
			m.groupIdx++
		}
	case key.Matches(msg, keys.enter):
		if m.saving || len(m.groups) == 0 {
			return m, nil
		}
		m.saving = true
		return m, m.cmdToggleMembership(m.detailUser, m.groups[m.groupIdx])
	case key.Matches(msg, keys.deactivate):
		if m.saving {
			return m, nil
		}
		m.showConfirm = true
		return m, nil
	case key.Matches(msg, keys.copy):
		return m, cmdCopyToClipboard(m.detailUser.Login)
	}
	return m, nil
}

func (m mainLoopModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A generated password is on screen: only copy and leave are allowed.
	if m.generatedPassword != "" {
		switch {
		case key.Matches(msg, keys.copy):
			return m, cmdCopyToClipboard(m.generatedPassword)
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
			m.currentScreen = screenList
			m.generatedPassword = ""
			m.createdLogin = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(msg, keys.tab):
		m = m.createFocusNext()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m = m.createFocusPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.saving {
			return m, nil
		}

		login := strings.TrimSpace(m.createInputs[0].Value())
		if login == "" {
			m.errMsg = "Логин обязателен"
			return m, nil
		}

		req := models.CreateUserRequest{
			Login:   login,
			Name:    strings.TrimSpace(m.createInputs[1].Value()),
			IsStaff: parseYes(m.createInputs[3].Value()),
			Groups:  splitGroupNames(m.createInputs[2].Value()),
		}

		m.errMsg = ""
		m.saving = true
		return m, m.cmdCreateUser(req)
	}

	var cmd tea.Cmd
	m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.logout = true
		return m, tea.Quit
	}
	return m, nil
}

// ── Views ───────────────────────────────────────────────────────────────────

func (m mainLoopModel) View() string {
	if m.showConfirm {
		return m.viewConfirm()
	}

	switch m.currentScreen {
	case screenDetail:
		return m.viewDetail()
	case screenCreate:
		return m.viewCreate()
	case screenProfile:
		return m.viewProfile()
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Загрузка...\n")
	} else if len(m.users) == 0 {
		b.WriteString("Пользователи не найдены\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-5s │ %-20s │ %-20s │ %-5s │ %-7s │ %s\n",
			"ID", "Логин", "Имя", "Staff", "Активен", "Группы"))
		b.WriteString(strings.Repeat("─", 100))
		b.WriteString("\n")

		for i, u := range m.users {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-5d │ %-20s │ %-20s │ %-5s │ %-7s │ %s\n",
				cursor, u.UserID,
				fitText(u.Login, 20), fitText(u.Name, 20),
				yesOrDash(u.IsStaff), yesOrDash(u.IsActive),
				fitText(strings.Join(u.GroupNames(), ", "), 24)))
		}
	}

	b.WriteString(m.statusLine())

	return renderPage("ПОЛЬЗОВАТЕЛИ", strings.TrimRight(b.String(), "\n"),
		"enter: открыть │ n: создать │ r: обновить │ l: выйти из аккаунта │ q: выход")
}

func (m mainLoopModel) viewDetail() string {
	var b strings.Builder
	u := m.detailUser

	b.WriteString(fmt.Sprintf("ID:      %d\n", u.UserID))
	b.WriteString("Логин:   " + valueOrDash(u.Login) + "\n")
	b.WriteString("Имя:     " + valueOrDash(u.Name) + "\n")
	b.WriteString("Staff:   " + yesOrDash(u.IsStaff) + "\n")
	b.WriteString("Активен: " + yesOrDash(u.IsActive) + "\n")
	b.WriteString("\n")

	if len(m.groups) == 0 {
		b.WriteString("Группы не созданы\n")
	} else {
		b.WriteString("Группы (enter — вкл/выкл):\n")
		for i, g := range m.groups {
			cursor := " "
			if i == m.groupIdx {
				cursor = ">"
			}
			member := " "
			if u.InGroup(g.Name) {
				member = "✓"
			}
			b.WriteString(fmt.Sprintf("%s [%s] %s", cursor, member, g.Name))
			if g.Description != "" {
				b.WriteString(" — " + fitText(g.Description, 40))
			}
			b.WriteString("\n")
		}
	}

	if m.saving {
		b.WriteString("\nСохранение...\n")
	}
	b.WriteString(m.statusLine())

	action := "d: деактивировать"
	if !u.IsActive {
		action = "d: активировать"
	}
	return renderPage("ПОЛЬЗОВАТЕЛЬ: "+u.Login, strings.TrimRight(b.String(), "\n"),
		"enter: группа вкл/выкл │ "+action+" │ c: копировать логин │ esc: назад")
}

func (m mainLoopModel) viewCreate() string {
	var b strings.Builder

	if m.generatedPassword != "" {
		b.WriteString("Пользователь " + m.createdLogin + " создан.\n\n")
		b.WriteString("Сгенерированный пароль (показывается один раз):\n\n")
		b.WriteString("  " + m.generatedPassword + "\n")
		b.WriteString(m.statusLine())
		return renderPage("НОВЫЙ ПОЛЬЗОВАТЕЛЬ", strings.TrimRight(b.String(), "\n"),
			"c: скопировать пароль │ enter: к списку")
	}

	labels := []string{"Логин ", "Имя   ", "Группы", "Staff "}
	b.WriteString("Поле   │ Значение\n")
	b.WriteString("───────┼────────────────────────────────────────────\n")
	for i, input := range m.createInputs {
		b.WriteString(labels[i] + " │ [" + input.View() + "]\n")
	}

	if m.saving {
		b.WriteString("\n[Создать...]\n")
	} else {
		b.WriteString("\n[Создать]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("НОВЫЙ ПОЛЬЗОВАТЕЛЬ", strings.TrimRight(b.String(), "\n"),
		"tab: след. поле │ enter: создать │ esc: назад")
}

func (m mainLoopModel) viewProfile() string {
	var b strings.Builder
	u := m.me

	b.WriteString("Логин:   " + valueOrDash(u.Login) + "\n")
	b.WriteString("Имя:     " + valueOrDash(u.Name) + "\n")
	groups := strings.Join(u.GroupNames(), ", ")
	b.WriteString("Группы:  " + valueOrDash(groups) + "\n")

	return renderPage("ПРОФИЛЬ", strings.TrimRight(b.String(), "\n"),
		"l: выйти из аккаунта │ q: выход")
}

func (m mainLoopModel) viewConfirm() string {
	action := "Деактивировать"
	if !m.detailUser.IsActive {
		action = "Активировать"
	}
	question := fmt.Sprintf("%s пользователя %q? (y/n)", action, m.detailUser.Login)
	return renderPage("ПОДТВЕРЖДЕНИЕ", overlayBoxStyle.Render(question), "y: да │ n: нет")
}

func (m mainLoopModel) statusLine() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("\nOK: " + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// ── Commands ────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdLoadUsers() tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		users, err := serverAdapter.ListUsers(ctx, models.UserFilter{})
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m mainLoopModel) cmdLoadGroups() tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		groups, err := serverAdapter.ListGroups(ctx)
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

// cmdToggleMembership flips the user's membership in the group and reloads
// the account so the detail screen reflects the server state.
func (m mainLoopModel) cmdToggleMembership(user models.User, group models.Group) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		var err error
		if user.InGroup(group.Name) {
			err = serverAdapter.RemoveUserFromGroup(ctx, user.UserID, group.Name)
		} else {
			err = serverAdapter.AddUserToGroup(ctx, user.UserID, group.Name)
		}
		if err != nil {
			return userUpdatedMsg{err: err}
		}

		updated, err := serverAdapter.GetUser(ctx, user.UserID)
		return userUpdatedMsg{user: updated, err: err}
	}
}

func (m mainLoopModel) cmdSetActive(userID int64, active bool) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		updated, err := serverAdapter.UpdateUser(ctx, userID, models.UpdateUserRequest{IsActive: &active})
		return userUpdatedMsg{user: updated, err: err}
	}
}

func (m mainLoopModel) cmdCreateUser(req models.CreateUserRequest) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		created, err := serverAdapter.CreateUser(ctx, req)
		return userCreatedMsg{created: created, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m mainLoopModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(statusVisibleFor, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func (m *mainLoopModel) replaceUser(updated models.User) {
	for i, u := range m.users {
		if u.UserID == updated.UserID {
			m.users[i] = updated
			return
		}
	}
}

func newCreateInputs() []textinput.Model {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 150
	loginInput.Width = 40
	loginInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "отображаемое имя"
	nameInput.CharLimit = 150
	nameInput.Width = 40

	groupsInput := textinput.New()
	groupsInput.Placeholder = "через запятую"
	groupsInput.CharLimit = 256
	groupsInput.Width = 40

	staffInput := textinput.New()
	staffInput.Placeholder = "y/n"
	staffInput.CharLimit = 3
	staffInput.Width = 40

	return []textinput.Model{loginInput, nameInput, groupsInput, staffInput}
}

func (m mainLoopModel) createFocusNext() mainLoopModel {
	m.createInputs[m.createFocus].Blur()
	m.createFocus = (m.createFocus + 1) % len(m.createInputs)
	m.createInputs[m.createFocus].Focus()
	return m
}

func (m mainLoopModel) createFocusPrev() mainLoopModel {
	m.createInputs[m.createFocus].Blur()
	m.createFocus = (m.createFocus - 1 + len(m.createInputs)) % len(m.createInputs)
	m.createInputs[m.createFocus].Focus()
	return m
}

func parseYes(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "д" || v == "да"
}

func splitGroupNames(v string) []string {
	var names []string
	for _, part := range strings.Split(v, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

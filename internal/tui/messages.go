package tui

import (
	"github.com/MKhiriev/go-access-portal/models"
)

type loginResultMsg struct {
	user models.User
	err  error
}

type versionLoadedMsg struct {
	version string
	err     error
}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

type groupsLoadedMsg struct {
	groups []models.Group
	err    error
}

type userUpdatedMsg struct {
	user models.User
	err  error
}

type userCreatedMsg struct {
	created models.CreateUserResponse
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

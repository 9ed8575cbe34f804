package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_RequiresVersion(t *testing.T) {
	_, err := NewAppInfoService(config.App{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestGetAppVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.2.3"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", svc.GetAppVersion(context.Background()))
}

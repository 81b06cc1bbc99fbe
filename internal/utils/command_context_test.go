package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghaudit/internal/utils"
)

const testConfigurationFilePathConstant = "/etc/ghaudit/config.yaml"

func TestCommandContextAccessorRoundTripsConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	decoratedContext := accessor.WithConfigurationFilePath(context.Background(), testConfigurationFilePathConstant)

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(decoratedContext)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, testConfigurationFilePathConstant, configurationFilePath)
}

func TestCommandContextAccessorReportsAbsentConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationFilePathAvailable)
	require.Empty(testInstance, configurationFilePath)
}

func TestCommandContextAccessorToleratesNilContexts(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	decoratedContext := accessor.WithConfigurationFilePath(nil, testConfigurationFilePathConstant)
	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(decoratedContext)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, testConfigurationFilePathConstant, configurationFilePath)

	_, absentAvailable := accessor.ConfigurationFilePath(nil)
	require.False(testInstance, absentAvailable)
}

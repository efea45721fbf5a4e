package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kiln-lang/kiln/internal/adapters/telemetry"
	"github.com/kiln-lang/kiln/internal/core/ports/mocks"
)

func TestProvider_SpansDriveRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRenderer := mocks.NewMockRenderer(ctrl)
	gomock.InOrder(
		mockRenderer.EXPECT().OnStepStart(gomock.Any(), "github.com/kiln-lang/http", gomock.Any()),
		mockRenderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), nil),
	)

	provider := telemetry.NewProvider(mockRenderer)

	_, span := provider.Tracer("resolver").Start(context.Background(), "github.com/kiln-lang/http")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_ShutdownTwice(t *testing.T) {
	provider := telemetry.NewProvider(nil)

	require.NoError(t, provider.Shutdown(context.Background()))
	// A second shutdown must not panic or error.
	require.NoError(t, provider.Shutdown(context.Background()))
}

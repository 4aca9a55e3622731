package notification

import (
	"context"
	"testing"

	"healthlog/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierTracksSlots(t *testing.T) {
	n := NewLogNotifier(logger.NewNop())
	ctx := context.Background()

	require.NoError(t, n.ShowNotification(ctx, "medication-set-1", "Medication reminder", "Time to take A", "medication_sets"))
	require.NoError(t, n.ShowNotification(ctx, "medication-set-1", "Medication reminder", "Time to take A", "medication_sets"))
	require.NoError(t, n.ShowNotification(ctx, "medication-set-2", "Medication reminder", "Time to take B", "medication_sets"))
	assert.ElementsMatch(t, []string{"medication-set-1", "medication-set-2"}, n.Active())

	require.NoError(t, n.CancelNotification(ctx, "medication-set-1"))
	assert.Equal(t, []string{"medication-set-2"}, n.Active())
}

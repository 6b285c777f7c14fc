package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/repository"
	"complaint-service/internal/service"
)

func TestContentService(t *testing.T) {
	svc := service.NewContentService(repository.NewSeededContentStore(fixedNow))

	announcements, err := svc.Announcements(context.Background())
	require.NoError(t, err)
	require.Len(t, announcements, 2)
	assert.Equal(t, "Power Outage Notification", announcements[0].Title)
	assert.Equal(t, "Water Pipe Repair", announcements[1].Title)

	achievements, err := svc.Achievements(context.Background())
	require.NoError(t, err)
	require.Len(t, achievements, 2)
	assert.Equal(t, "Streetlight Upgrade Project Completed", achievements[1].Title)
}

package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/seed"
)

func TestDemo_Idempotente(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repos := seed.Repos{Users: s.Users(), Facilities: s.Facilities(), Parts: s.SpareParts()}

	res, err := seed.Demo(ctx, repos)
	require.NoError(t, err)
	assert.Len(t, res.Users, 3)

	// Un traslado previo no debe revertirse al volver a sembrar.
	part, err := s.SpareParts().GetByID(ctx, seed.DemoPartID)
	require.NoError(t, err)
	part.Quantity = 10
	require.NoError(t, s.SpareParts().Update(ctx, part))

	_, err = seed.Demo(ctx, repos)
	require.NoError(t, err)

	part, err = s.SpareParts().GetByID(ctx, seed.DemoPartID)
	require.NoError(t, err)
	assert.Equal(t, 10, part.Quantity)

	users, err := s.Users().ListByCompany(ctx, seed.DemoCompanyID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.True(t, u.IsActive())
	}
}

package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
)

type failingDirectory struct{ err error }

func (d failingDirectory) ResolveUser(context.Context, string) (*entity.User, error) {
	return nil, d.err
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Upsert(ctx, &entity.User{
		ID: "u1", CompanyID: "c1", Name: "Ana", Role: entity.RoleAdmin, Status: entity.UserStatusActive,
	}))
	require.NoError(t, s.Users().Upsert(ctx, &entity.User{
		ID: "u2", CompanyID: "c1", Name: "Luis", Role: entity.RoleTechnician, Status: entity.UserStatusInactive,
	}))
	return s
}

func TestWriter_Record(t *testing.T) {
	s := seed(t)
	w := audit.NewWriter(audit.NewRepositoryDirectory(s.Users()), s.Audit())
	ctx := context.Background()

	entry, err := w.Record(ctx, audit.Input{
		ActingUserID: "u1", Action: entity.AuditActionCreate, EntityType: entity.EntitySparePart,
		EntityID: "p1", EntityName: "Filtro", CompanyID: "c1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, entity.AuditUser{ID: "u1", Name: "Ana"}, entry.User)
	assert.False(t, entry.Timestamp.IsZero())

	list, err := w.ListByEntity(ctx, "c1", entity.EntitySparePart, "p1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWriter_ActorNoResoluble(t *testing.T) {
	s := seed(t)
	w := audit.NewWriter(audit.NewRepositoryDirectory(s.Users()), s.Audit())
	ctx := context.Background()

	cases := map[string]audit.Input{
		"sin usuario":  {Action: entity.AuditActionUpdate, CompanyID: "c1"},
		"desconocido":  {ActingUserID: "u9", Action: entity.AuditActionUpdate, CompanyID: "c1"},
		"inactivo":     {ActingUserID: "u2", Action: entity.AuditActionUpdate, CompanyID: "c1"},
		"otra empresa": {ActingUserID: "u1", Action: entity.AuditActionUpdate, CompanyID: "c2"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := w.Record(ctx, in)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
	all, _ := w.ListByCompany(ctx, "c1", 0, 0)
	assert.Empty(t, all)
}

func TestWriter_AccionInvalida(t *testing.T) {
	s := seed(t)
	w := audit.NewWriter(audit.NewRepositoryDirectory(s.Users()), s.Audit())

	_, err := w.Record(context.Background(), audit.Input{ActingUserID: "u1", Action: "PATCH", CompanyID: "c1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriter_ErrorDelDirectorio(t *testing.T) {
	s := seed(t)
	boom := errors.New("directorio caído")
	w := audit.NewWriter(failingDirectory{err: boom}, s.Audit())

	_, err := w.ResolveActor(context.Background(), "u1", "c1")
	require.ErrorIs(t, err, boom)
}

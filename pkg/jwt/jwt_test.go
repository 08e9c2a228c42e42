package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/fieldservice-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u1", CompanyID: "c1", Role: "storekeeper", Name: "Ana Pérez"}
	tok, err := pkgjwt.Generate(secret, id, "fieldservice-api", 5)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok, "fieldservice-api")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u1", CompanyID: "c1", Role: "admin"}
	tok, err := pkgjwt.Generate(secret, id, "fieldservice-api", 5)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, id, "fieldservice-api", -1)
	require.NoError(t, err)
	noCompany, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1"}, "fieldservice-api", 5)
	require.NoError(t, err)

	cases := map[string]struct{ secret, token, issuer string }{
		"firma incorrecta": {"otro-secret", tok, ""},
		"emisor distinto":  {secret, tok, "otro"},
		"expirado":         {secret, expired, ""},
		"sin empresa":      {secret, noCompany, ""},
		"basura":           {secret, "no-es-un-jwt", ""},
		"secret vacío":     {"", tok, ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pkgjwt.Parse(c.secret, c.token, c.issuer)
			require.Error(t, err)
		})
	}
}

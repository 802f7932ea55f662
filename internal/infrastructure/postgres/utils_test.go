package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/techinventory-api/internal/domain"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%mouse%`, containsPattern("mouse"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestCodigosPostgres(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isForeignKeyViolation(wrapped))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en texto")))
}

func TestStorageErr_ConservaCausa(t *testing.T) {
	cause := errors.New("conexión rechazada")
	err := storageErr("list products", cause)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list products")
}

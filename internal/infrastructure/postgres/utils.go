package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/techinventory-api/internal/domain"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == "23505" }

// isForeignKeyViolation 23503.
func isForeignKeyViolation(err error) bool { return pgCode(err) == "23503" }

// isCheckViolation 23514.
func isCheckViolation(err error) bool { return pgCode(err) == "23514" }

// storageErr envuelve una falla del driver como domain.ErrStorage conservando la causa.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern patrón ILIKE de subcadena con los comodines del usuario escapados.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

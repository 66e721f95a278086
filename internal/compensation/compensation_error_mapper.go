package compensation

import (
	"errors"
	"strings"

	compensationerrors "go-payroll/internal/compensation/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_compensation_current" {
			return compensationerrors.ErrDuplicateCurrentCompensation
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_compensation_current") {
		return compensationerrors.ErrDuplicateCurrentCompensation
	}

	return err
}

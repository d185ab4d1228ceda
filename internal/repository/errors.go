package repository

import (
	"fmt"

	"github.com/chetan-code/missioncontrol/internal/models"
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, models.ErrNotFound)
}

package api

import (
	"database/sql"

	"github.com/vytor/mathsprout/internal/services"
)

type Server struct {
	DB                 *sql.DB
	SessionService     services.SessionService
	StatsService       services.StatsService
	ProgressionService services.ProgressionService
	StudentService     services.StudentService
}

package repo

import (
	"gorm.io/gorm"
)

// Repo is the single persistence gateway. Every operation is one query
// against the request's connection; uniqueness is ultimately enforced by
// the database constraints, not by callers' pre-checks.
type Repo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Repo {
	return &Repo{DB: db}
}

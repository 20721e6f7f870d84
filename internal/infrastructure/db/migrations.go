package db

import (
	"github.com/taskdeck/backend/internal/domain"
	"gorm.io/gorm"
)

// RunMigrations creates the tasks table. The primary key is the only index;
// nothing at this scale justifies more.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Task{})
}

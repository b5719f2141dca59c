package migrations

import (
	"github.com/Siddique-web/EchoPlay/internal/database"
	"github.com/Siddique-web/EchoPlay/internal/folder"
	"github.com/Siddique-web/EchoPlay/internal/models"
)

func Migrate() error {
	db := database.GetDB()

	// Auto migrate tables
	return db.AutoMigrate(
		&models.User{},
		&models.Music{},
		&models.Video{},
		&folder.Blob{},
	)
}

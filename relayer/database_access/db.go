package databaseaccess

import (
	"fmt"
	"path/filepath"

	"github.com/Vikakfuse/star-craft/common"
	"github.com/Vikakfuse/star-craft/relayer/core"
)

func NewDatabase(filePath string) (core.Database, error) {
	if err := common.CreateDirectoryIfNotExists(filepath.Dir(filePath)); err != nil {
		return nil, fmt.Errorf("failed to create directory for relayer database: %w", err)
	}

	db := &BBoltDatabase{}
	if err := db.Init(filePath); err != nil {
		return nil, err
	}

	return db, nil
}

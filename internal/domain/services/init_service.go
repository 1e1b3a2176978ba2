package services

import (
	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"

	"gorm.io/gorm"
)

// InitResult reports what the database bootstrap actually did
type InitResult struct {
	Database          string   `json:"database"`
	CreatedTables     []string `json:"createdTables"`
	EnsuredIndexes    []string `json:"ensuredIndexes"`
	MasterInitialized *bool    `json:"masterInitialized,omitempty"`
}

// InterfaceInitService defines the database bootstrap interface
type InterfaceInitService interface {
	InitializeDatabase(checkMaster bool) (*InitResult, error)
	DropTables() error
}

// InitService ensures tables and indexes exist for the live models
type InitService struct {
	DB *gorm.DB
}

// NewInitService creates a new init service
func NewInitService(db *gorm.DB) InterfaceInitService {
	return &InitService{DB: db}
}

// InitializeDatabase creates missing tables and ensures the unique indexes
// declared on the models. When checkMaster is set the result also reports
// whether a master admin record exists.
func (s *InitService) InitializeDatabase(checkMaster bool) (*InitResult, error) {
	result := &InitResult{
		Database:       s.DB.Migrator().CurrentDatabase(),
		CreatedTables:  []string{},
		EnsuredIndexes: []string{},
	}

	for _, target := range []struct {
		name  string
		model interface{}
	}{
		{"admins", &models.Admin{}},
		{"farmers", &models.Farmer{}},
	} {
		existed := s.DB.Migrator().HasTable(target.model)
		if err := s.DB.AutoMigrate(target.model); err != nil {
			return nil, err
		}
		if !existed {
			result.CreatedTables = append(result.CreatedTables, target.name)
		}
		result.EnsuredIndexes = append(result.EnsuredIndexes, target.name)
	}

	if checkMaster {
		var count int64
		if err := s.DB.Model(&models.Admin{}).Where("role = ?", models.RoleMaster).Count(&count).Error; err != nil {
			return nil, err
		}
		initialized := count > 0
		result.MasterInitialized = &initialized
	}

	return result, nil
}

// DropTables removes every managed table. Used by the "drop" migration mode
// during development resets.
func (s *InitService) DropTables() error {
	return s.DB.Migrator().DropTable(&models.Admin{}, &models.Farmer{})
}

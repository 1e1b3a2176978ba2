package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"
	"github.com/Anandha-scraper/HarvestChain/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound            = errors.New("admin not found")
	ErrAdminUsernameTaken       = errors.New("username already exists")
	ErrMasterAlreadyExists      = errors.New("master admin already exists")
	ErrCurrentPasswordRequired  = errors.New("current password is required to change password")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrNoCredentialChanges      = errors.New("username or new password is required")
)

// CredentialUpdate carries a self-service credential rotation request.
// NewPassword requires a verified CurrentPassword; at least one of Username
// and NewPassword must be present.
type CredentialUpdate struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

// AdminStats aggregates the counters shown on the admin dashboard
type AdminStats struct {
	TotalFarmers      int64            `json:"totalFarmers"`
	TotalAdmins       int64            `json:"totalAdmins"`
	RecentFarmers     int64            `json:"recentFarmers"`
	FarmersByLocation map[string]int64 `json:"farmersByLocation"`
	FarmersByCrop     map[string]int64 `json:"farmersByCrop"`
}

// InterfaceAdminService defines the admin service interface
type InterfaceAdminService interface {
	CreateMasterAdmin() (*models.Admin, error)
	CreateMasterAdminWithCredentials(username, password string) (*models.Admin, error)
	VerifyAdminLogin(username, password string) (*models.Admin, error)
	GetAdminByID(id uint) (*models.Admin, error)
	UpdateAdminCredentials(id uint, update CredentialUpdate) (*models.Admin, error)
	GetAdminStats() (*AdminStats, error)
}

// AdminService provides admin account operations. Farmer-facing admin reads
// and writes delegate to the farmer service; responses built from them must
// never include the farmer passcode.
type AdminService struct {
	DB      *gorm.DB
	Config  *config.Config
	Farmers InterfaceFarmerService
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, cfg *config.Config, farmers InterfaceFarmerService) InterfaceAdminService {
	return &AdminService{
		DB:      db,
		Config:  cfg,
		Farmers: farmers,
	}
}

// 1 CreateMasterAdmin is the idempotent bootstrap: when a master-role record
// already exists it is returned unchanged, otherwise one is created with the
// configured default credentials.
func (s *AdminService) CreateMasterAdmin() (*models.Admin, error) {
	var existing models.Admin
	err := s.DB.Where("role = ?", models.RoleMaster).First(&existing).Error
	if err == nil {
		logger.Info("Master admin already exists")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Config.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	master := models.Admin{
		Username: s.Config.MasterAdminUsername,
		Password: string(hashed),
		Role:     models.RoleMaster,
		IsActive: true,
	}
	if err := s.DB.Create(&master).Error; err != nil {
		return nil, err
	}

	logger.Info("Master admin created")
	return &master, nil
}

// 2 CreateMasterAdminWithCredentials creates the master account with
// caller-supplied credentials. The route gates this behind the setup secret;
// once a master exists the operation is refused.
func (s *AdminService) CreateMasterAdminWithCredentials(username, password string) (*models.Admin, error) {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("role = ?", models.RoleMaster).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMasterAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	master := models.Admin{
		Username: username,
		Password: string(hashed),
		Role:     models.RoleMaster,
		IsActive: true,
	}
	if err := s.DB.Create(&master).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminUsernameTaken
		}
		return nil, err
	}
	return &master, nil
}

// 3 VerifyAdminLogin checks username and password against an active admin
// record. Unknown user and wrong password both return nil so the response
// cannot reveal which part failed. On success the last-login timestamp is
// updated before the record is returned.
func (s *AdminService) VerifyAdminLogin(username, password string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, nil
	}

	now := time.Now()
	if err := s.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	admin.LastLogin = &now
	return &admin, nil
}

// 4 GetAdminByID fetches an admin record by ID
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 5 UpdateAdminCredentials rotates username and/or password for the admin
// themself. Password changes require the current password to verify against
// the stored hash; the stored hash stays untouched on any failure.
func (s *AdminService) UpdateAdminCredentials(id uint, update CredentialUpdate) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username == "" && update.NewPassword == "" {
		return nil, ErrNoCredentialChanges
	}

	updates := make(map[string]interface{})

	if update.NewPassword != "" {
		if update.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(update.CurrentPassword)); err != nil {
			return nil, ErrCurrentPasswordIncorrect
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		updates["password"] = string(hashed)
	}

	if update.Username != "" && update.Username != admin.Username {
		var count int64
		if err := s.DB.Model(&models.Admin{}).Where("username = ? AND id != ?", update.Username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrAdminUsernameTaken
		}
		updates["username"] = update.Username
	}

	if len(updates) > 0 {
		if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrAdminUsernameTaken
			}
			return nil, err
		}
	}

	return s.GetAdminByID(id)
}

// 6 GetAdminStats combines the farmer aggregation with admin counters and a
// recent-registrations window of seven days
func (s *AdminService) GetAdminStats() (*AdminStats, error) {
	farmerStats, err := s.Farmers.GetFarmerStats()
	if err != nil {
		return nil, err
	}

	var totalAdmins int64
	if err := s.DB.Model(&models.Admin{}).Count(&totalAdmins).Error; err != nil {
		return nil, err
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var recentFarmers int64
	if err := s.DB.Model(&models.Farmer{}).Where("created_at >= ?", sevenDaysAgo).Count(&recentFarmers).Error; err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalFarmers:      farmerStats.TotalFarmers,
		TotalAdmins:       totalAdmins,
		RecentFarmers:     recentFarmers,
		FarmersByLocation: farmerStats.FarmersByLocation,
		FarmersByCrop:     farmerStats.FarmersByCrop,
	}, nil
}

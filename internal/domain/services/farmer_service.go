package services

import (
	"errors"
	"regexp"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"gorm.io/gorm"
)

// Service-level errors mapped onto response codes by the controllers
var (
	ErrFarmerExists    = errors.New("farmer already exists with this phone number, Aadhar, or Firebase UID")
	ErrFarmerNotFound  = errors.New("farmer not found")
	ErrInvalidPasscode = errors.New("passcode must be exactly 4 digits")
)

var passcodePattern = regexp.MustCompile(`^[0-9]{4}$`)

// FarmerStats aggregates counts over the whole farmers table
type FarmerStats struct {
	TotalFarmers      int64            `json:"totalFarmers"`
	FarmersByCrop     map[string]int64 `json:"farmersByCrop"`
	FarmersByLocation map[string]int64 `json:"farmersByLocation"`
}

// InterfaceFarmerService defines the farmer service interface
type InterfaceFarmerService interface {
	CreateFarmer(farmer *models.Farmer) error
	GetFarmerByFirebaseUID(uid string) (*models.Farmer, error)
	GetFarmerByPhoneNumber(phone string) (*models.Farmer, error)
	VerifyFarmerLogin(phone, passcode string) (*models.Farmer, error)
	UpdateFarmer(uid string, updates map[string]interface{}) (*models.Farmer, error)
	UpdateFarmerCrops(id uint, crops []string) (*models.Farmer, error)
	DeleteFarmer(uid string) (bool, error)
	FarmerExists(uid string) (bool, error)
	GetAllFarmers(limit, skip int) ([]models.Farmer, error)
	GetFarmerByID(id uint) (*models.Farmer, error)
	UpdateFarmerByID(id uint, updates map[string]interface{}) (*models.Farmer, error)
	DeleteFarmerByID(id uint) (bool, error)
	CountFarmers() (int64, error)
	GetFarmerStats() (*FarmerStats, error)
}

// FarmerService provides farmer record operations
type FarmerService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFarmerService creates a new farmer service
func NewFarmerService(db *gorm.DB, cfg *config.Config) InterfaceFarmerService {
	return &FarmerService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateFarmer inserts a new farmer record. Uniqueness of firebase_uid,
// phone_number, and aadhar_number is enforced by the store's unique indexes;
// a duplicate-key violation is reported as ErrFarmerExists. There is no prior
// existence check, so two racing creates cannot both succeed.
func (s *FarmerService) CreateFarmer(farmer *models.Farmer) error {
	if !passcodePattern.MatchString(farmer.Passcode) {
		return ErrInvalidPasscode
	}
	if farmer.CropsGrown == nil {
		farmer.CropsGrown = []string{}
	}

	if err := s.DB.Create(farmer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFarmerExists
		}
		return err
	}
	return nil
}

// 2 GetFarmerByFirebaseUID looks up a farmer by the external subject
// identifier; returns nil without error when no record matches
func (s *FarmerService) GetFarmerByFirebaseUID(uid string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := s.DB.Where("firebase_uid = ?", uid).First(&farmer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

// 3 GetFarmerByPhoneNumber looks up a farmer by phone number
func (s *FarmerService) GetFarmerByPhoneNumber(phone string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := s.DB.Where("phone_number = ?", phone).First(&farmer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

// 4 VerifyFarmerLogin matches phone number and passcode in a single query.
// Any mismatch, wrong phone or wrong passcode, yields the same nil result so
// callers cannot distinguish the two.
func (s *FarmerService) VerifyFarmerLogin(phone, passcode string) (*models.Farmer, error) {
	var farmer models.Farmer
	err := s.DB.Where("phone_number = ? AND passcode = ?", phone, passcode).First(&farmer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

// 5 UpdateFarmer applies a partial update to the farmer identified by
// Firebase UID. The route layer strips immutable fields (passcode, UID,
// identity, creation timestamp) before the patch reaches this method; the
// service applies whatever it is given.
func (s *FarmerService) UpdateFarmer(uid string, updates map[string]interface{}) (*models.Farmer, error) {
	farmer, err := s.GetFarmerByFirebaseUID(uid)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, nil
	}

	if len(updates) > 0 {
		if err := s.DB.Model(farmer).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrFarmerExists
			}
			return nil, err
		}
	}

	return s.GetFarmerByFirebaseUID(uid)
}

// 6 UpdateFarmerCrops replaces the crop list wholesale and refreshes the
// update timestamp. The list is not merged with the previous value.
func (s *FarmerService) UpdateFarmerCrops(id uint, crops []string) (*models.Farmer, error) {
	farmer, err := s.GetFarmerByID(id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, nil
	}

	if err := s.DB.Model(farmer).Update("crops_grown", crops).Error; err != nil {
		return nil, err
	}

	return s.GetFarmerByID(id)
}

// 7 DeleteFarmer removes the farmer identified by Firebase UID and reports
// whether a record was actually removed
func (s *FarmerService) DeleteFarmer(uid string) (bool, error) {
	result := s.DB.Where("firebase_uid = ?", uid).Delete(&models.Farmer{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// 8 FarmerExists reports whether a record with the given Firebase UID exists
func (s *FarmerService) FarmerExists(uid string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Farmer{}).Where("firebase_uid = ?", uid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// 9 GetAllFarmers returns a page of farmers sorted by creation time
// descending
func (s *FarmerService) GetAllFarmers(limit, skip int) ([]models.Farmer, error) {
	var farmers []models.Farmer
	err := s.DB.Order("created_at DESC").Limit(limit).Offset(skip).Find(&farmers).Error
	if err != nil {
		return nil, err
	}
	return farmers, nil
}

// 10 GetFarmerByID looks up a farmer by record ID (admin views)
func (s *FarmerService) GetFarmerByID(id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := s.DB.First(&farmer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

// 11 UpdateFarmerByID applies a partial update by record ID (admin views)
func (s *FarmerService) UpdateFarmerByID(id uint, updates map[string]interface{}) (*models.Farmer, error) {
	farmer, err := s.GetFarmerByID(id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, nil
	}

	if len(updates) > 0 {
		if err := s.DB.Model(farmer).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrFarmerExists
			}
			return nil, err
		}
	}

	return s.GetFarmerByID(id)
}

// 12 DeleteFarmerByID removes a farmer by record ID
func (s *FarmerService) DeleteFarmerByID(id uint) (bool, error) {
	result := s.DB.Delete(&models.Farmer{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// 13 CountFarmers returns the total number of farmer records
func (s *FarmerService) CountFarmers() (int64, error) {
	var total int64
	if err := s.DB.Model(&models.Farmer{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// 14 GetFarmerStats scans the whole table and produces frequency maps of
// farmers per crop and per location. The aggregation is recomputed from
// scratch on every call; nothing is cached between requests.
func (s *FarmerService) GetFarmerStats() (*FarmerStats, error) {
	total, err := s.CountFarmers()
	if err != nil {
		return nil, err
	}

	var farmers []models.Farmer
	if err := s.DB.Select("crops_grown", "location").Find(&farmers).Error; err != nil {
		return nil, err
	}

	stats := &FarmerStats{
		TotalFarmers:      total,
		FarmersByCrop:     make(map[string]int64),
		FarmersByLocation: make(map[string]int64),
	}
	for _, farmer := range farmers {
		for _, crop := range farmer.CropsGrown {
			stats.FarmersByCrop[crop]++
		}
		stats.FarmersByLocation[farmer.Location]++
	}
	return stats, nil
}

package services

import (
	"testing"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/models"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testTime = time.Now()

// farmerColumns matches the farmers table layout scanned by the service
var farmerColumns = []string{
	"id", "created_at", "updated_at", "firebase_uid", "name",
	"phone_number", "aadhar_number", "passcode", "location", "crops_grown",
}

func setupFarmerMock(t *testing.T) (InterfaceFarmerService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	service := NewFarmerService(gdb, &config.Config{})
	cleanup := func() { db.Close() }
	return service, mock, cleanup
}

func TestCreateFarmer_Success(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `farmers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	farmer := &models.Farmer{
		FirebaseUID:  "uid-1",
		Name:         "Ravi",
		PhoneNumber:  "9876543210",
		AadharNumber: "123412341234",
		Passcode:     "1234",
		Location:     "Thanjavur",
	}
	err := service.CreateFarmer(farmer)
	require.NoError(t, err)
	// a nil crop list is normalized to an empty one before insert
	assert.NotNil(t, farmer.CropsGrown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFarmer_InvalidPasscode(t *testing.T) {
	service, _, cleanup := setupFarmerMock(t)
	defer cleanup()

	for _, passcode := range []string{"", "123", "12345", "12a4", "abcd"} {
		err := service.CreateFarmer(&models.Farmer{
			FirebaseUID: "uid-1",
			PhoneNumber: "9876543210",
			Passcode:    passcode,
		})
		assert.ErrorIs(t, err, ErrInvalidPasscode, "passcode %q", passcode)
	}
}

func TestCreateFarmer_DuplicateKey(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `farmers`").
		WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := service.CreateFarmer(&models.Farmer{
		FirebaseUID:  "uid-1",
		PhoneNumber:  "9876543210",
		AadharNumber: "123412341234",
		Passcode:     "1234",
	})
	assert.ErrorIs(t, err, ErrFarmerExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFarmerByFirebaseUID_NotFound(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows(farmerColumns))

	farmer, err := service.GetFarmerByFirebaseUID("missing")
	require.NoError(t, err)
	assert.Nil(t, farmer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyFarmerLogin_Success(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(farmerColumns).
		AddRow(7, testTime, testTime, "uid-7", "Lakshmi", "9876543210", "123412341234", "4321", "Madurai", `["Rice","Wheat"]`)
	mock.ExpectQuery("SELECT (.+) FROM `farmers`").
		WillReturnRows(rows)

	farmer, err := service.VerifyFarmerLogin("9876543210", "4321")
	require.NoError(t, err)
	require.NotNil(t, farmer)
	assert.Equal(t, uint(7), farmer.ID)
	assert.Equal(t, []string{"Rice", "Wheat"}, farmer.CropsGrown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Wrong phone and wrong passcode both come back as a plain nil result so the
// handler cannot leak which part was wrong.
func TestVerifyFarmerLogin_Mismatch(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows(farmerColumns))

	farmer, err := service.VerifyFarmerLogin("9876543210", "0000")
	require.NoError(t, err)
	assert.Nil(t, farmer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFarmerCrops_ReplacesList(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	existing := sqlmock.NewRows(farmerColumns).
		AddRow(3, testTime, testTime, "uid-3", "Ravi", "9876543210", "123412341234", "1234", "Thanjavur", `["Rice"]`)
	mock.ExpectQuery("SELECT (.+) FROM `farmers`").WillReturnRows(existing)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `farmers`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated := sqlmock.NewRows(farmerColumns).
		AddRow(3, testTime, testTime, "uid-3", "Ravi", "9876543210", "123412341234", "1234", "Thanjavur", `["Wheat","Millet"]`)
	mock.ExpectQuery("SELECT (.+) FROM `farmers`").WillReturnRows(updated)

	farmer, err := service.UpdateFarmerCrops(3, []string{"Wheat", "Millet"})
	require.NoError(t, err)
	require.NotNil(t, farmer)
	assert.Equal(t, []string{"Wheat", "Millet"}, farmer.CropsGrown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFarmerCrops_FarmerMissing(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows(farmerColumns))

	farmer, err := service.UpdateFarmerCrops(99, []string{"Rice"})
	require.NoError(t, err)
	assert.Nil(t, farmer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFarmer_Removed(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `farmers`").
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := service.DeleteFarmer("uid-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFarmer_AlreadyGone(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `farmers`").
		WithArgs("uid-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := service.DeleteFarmer("uid-missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFarmerExists(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `farmers`").
		WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := service.FarmerExists("uid-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFarmerStats_FrequencyMaps(t *testing.T) {
	service, mock, cleanup := setupFarmerMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{"crops_grown", "location"}).
		AddRow(`["Rice"]`, "A").
		AddRow(`["Rice","Wheat"]`, "B")
	mock.ExpectQuery("SELECT (.+) FROM `farmers`").WillReturnRows(rows)

	stats, err := service.GetFarmerStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFarmers)
	assert.Equal(t, map[string]int64{"Rice": 2, "Wheat": 1}, stats.FarmersByCrop)
	assert.Equal(t, map[string]int64{"A": 1, "B": 1}, stats.FarmersByLocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

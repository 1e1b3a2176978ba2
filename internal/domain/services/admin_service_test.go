package services

import (
	"testing"

	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var adminColumns = []string{
	"id", "created_at", "updated_at", "username", "password",
	"role", "is_active", "last_login",
}

func setupAdminMock(t *testing.T) (InterfaceAdminService, sqlmock.Sqlmock, func()) {
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

	cfg := &config.Config{
		MasterAdminUsername:  "master",
		DefaultAdminPassword: "admin123",
	}
	service := NewAdminService(gdb, cfg, NewFarmerService(gdb, cfg))
	cleanup := func() { db.Close() }
	return service, mock, cleanup
}

func hashPassword(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestCreateMasterAdmin_ReturnsExisting(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	admin, err := service.CreateMasterAdmin()
	require.NoError(t, err)
	assert.Equal(t, "master", admin.Username)
	// no INSERT must have been issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMasterAdmin_CreatesWhenMissing(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `admins`").
		WillReturnRows(sqlmock.NewRows(adminColumns))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `admins`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	admin, err := service.CreateMasterAdmin()
	require.NoError(t, err)
	assert.Equal(t, "master", admin.Username)
	assert.Equal(t, "master", admin.Role)
	// the stored password is a bcrypt hash of the configured default
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMasterAdminWithCredentials_RefusedWhenMasterExists(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := service.CreateMasterAdminWithCredentials("root", "s3cret")
	assert.ErrorIs(t, err, ErrMasterAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAdminLogin_Success(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `admins`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	admin, err := service.VerifyAdminLogin("master", "admin123")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.NotNil(t, admin.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAdminLogin_WrongPassword(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	admin, err := service.VerifyAdminLogin("master", "wrong")
	require.NoError(t, err)
	// same nil result as an unknown username
	assert.Nil(t, admin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAdminLogin_UnknownUser(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `admins`").
		WillReturnRows(sqlmock.NewRows(adminColumns))

	admin, err := service.VerifyAdminLogin("nobody", "admin123")
	require.NoError(t, err)
	assert.Nil(t, admin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdminCredentials_NoChanges(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	_, err := service.UpdateAdminCredentials(1, CredentialUpdate{})
	assert.ErrorIs(t, err, ErrNoCredentialChanges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdminCredentials_PasswordChangeRequiresCurrent(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	_, err := service.UpdateAdminCredentials(1, CredentialUpdate{NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrCurrentPasswordRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed current-password check must leave the stored hash untouched, so no
// UPDATE statement may reach the store.
func TestUpdateAdminCredentials_WrongCurrentPassword(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	_, err := service.UpdateAdminCredentials(1, CredentialUpdate{
		CurrentPassword: "wrong",
		NewPassword:     "newpass",
	})
	assert.ErrorIs(t, err, ErrCurrentPasswordIncorrect)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdminCredentials_UsernameTaken(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(adminColumns).
		AddRow(1, testTime, testTime, "master", hashPassword(t, "admin123"), "master", true, nil)
	mock.ExpectQuery("SELECT (.+) FROM `admins`").WillReturnRows(rows)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WithArgs("other", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := service.UpdateAdminCredentials(1, CredentialUpdate{Username: "other"})
	assert.ErrorIs(t, err, ErrAdminUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminStats_CombinesCounters(t *testing.T) {
	service, mock, cleanup := setupAdminMock(t)
	defer cleanup()

	// farmer aggregation
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	farmerRows := sqlmock.NewRows([]string{"crops_grown", "location"}).
		AddRow(`["Rice"]`, "A").
		AddRow(`["Rice","Wheat"]`, "B")
	mock.ExpectQuery("SELECT (.+) FROM `farmers`").WillReturnRows(farmerRows)

	// admin counter and recent-registration window
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `farmers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	stats, err := service.GetAdminStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFarmers)
	assert.Equal(t, int64(1), stats.TotalAdmins)
	assert.Equal(t, int64(1), stats.RecentFarmers)
	assert.Equal(t, map[string]int64{"Rice": 2, "Wheat": 1}, stats.FarmersByCrop)
	assert.NoError(t, mock.ExpectationsWereMet())
}

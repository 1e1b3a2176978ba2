package models

// Farmer represents one registered grower and their declared crops.
// FirebaseUID is the opaque subject identifier issued by the external
// phone-verification provider; phone number and Aadhar number are unique
// across all farmer records, enforced by the store's unique indexes.
type Farmer struct {
	BaseModel
	FirebaseUID  string   `gorm:"column:firebase_uid;type:varchar(128);uniqueIndex;not null" json:"firebaseUid"`
	Name         string   `gorm:"type:varchar(100);not null" json:"name"`
	PhoneNumber  string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"phoneNumber"`
	Passcode     string   `gorm:"type:varchar(8);not null" json:"passcode,omitempty"` // 4-digit login passcode
	AadharNumber string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"aadharNumber"`
	Location     string   `gorm:"type:varchar(255);not null" json:"location"`
	CropsGrown   []string `gorm:"serializer:json;type:text" json:"cropsGrown"` // ordered, duplicates allowed
}

// TableName sets the table name for the farmer model
func (Farmer) TableName() string {
	return "farmers"
}

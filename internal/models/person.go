package models

import "time"

// Gender is the enumerated gender of a Person.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Person represents a registered forum user
type Person struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	IsAdmin        bool      `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	FirstName      string    `gorm:"type:varchar(50);not null;column:first_name" json:"first_name"`
	LastName       string    `gorm:"type:varchar(50);not null;column:last_name" json:"last_name"`
	Email          *string   `gorm:"type:varchar(150);column:email" json:"email"`
	Gender         Gender    `gorm:"type:varchar(6);not null;column:gender" json:"gender"`
	Avatar         *string   `gorm:"type:varchar(255);column:avatar" json:"avatar"`
	Job            *string   `gorm:"type:varchar(50);column:job" json:"job"`
	Company        *string   `gorm:"type:varchar(50);column:company" json:"company"`
	DateOfBirth    time.Time `gorm:"type:date;not null;column:date_of_birth" json:"date_of_birth"`
	CountryOfBirth string    `gorm:"type:varchar(50);not null;column:country_of_birth" json:"country_of_birth"`
}

// TableName specifies the table name for Person
func (Person) TableName() string {
	return "persons"
}

// Owner is the projection used to decorate rows with their owner's name
type Owner struct {
	ID        int64  `gorm:"column:id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

// Fullname returns the display name used in decorated rows.
func (o Owner) Fullname() string {
	return o.FirstName + " " + o.LastName
}

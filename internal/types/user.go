package types

// User owns its email and phone number rows. Children are always loaded and
// serialized by value; deleting a user removes every owned row.
type User struct {
	ID           int64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FirstName    string        `gorm:"size:100;not null;column:first_name" json:"firstName"`
	LastName     string        `gorm:"size:100;not null;column:last_name" json:"lastName"`
	Emails       []Email       `gorm:"foreignKey:UserID" json:"emails"`
	PhoneNumbers []PhoneNumber `gorm:"foreignKey:UserID" json:"phoneNumbers"`
}

func (User) TableName() string {
	return "user"
}

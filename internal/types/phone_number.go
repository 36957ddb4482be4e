package types

type PhoneNumber struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Number string `gorm:"size:50;not null;column:number" json:"number"`
	UserID int64  `gorm:"not null;index;column:user_id" json:"-"`
}

func (PhoneNumber) TableName() string {
	return "phone_number"
}

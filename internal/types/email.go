package types

type Email struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email  string `gorm:"size:50;not null;column:email" json:"email"`
	UserID int64  `gorm:"not null;index;column:user_id" json:"-"`
}

func (Email) TableName() string {
	return "email"
}

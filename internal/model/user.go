package model

const UserTableName = "users"

// User 用户模型；email 全局唯一，按存储值精确匹配
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}

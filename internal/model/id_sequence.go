package model

// IDSequence 数据库模式下的全局 id 计数器，所有实体共用一行
type IDSequence struct {
	Name      string `gorm:"primaryKey;size:32"`
	NextValue uint   `gorm:"not null"`
}

func (IDSequence) TableName() string {
	return "id_sequences"
}

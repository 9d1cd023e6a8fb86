package model

type PoolModel struct {
	ID   string `gorm:"column:id;type:uuid;primaryKey"`
	Name string `gorm:"column:name"`
}

func (PoolModel) TableName() string {
	return "pools"
}

type PoolMemberModel struct {
	PoolID string `gorm:"column:pool_id;type:uuid;primaryKey"`
	UserID string `gorm:"column:user_id;type:uuid;primaryKey"`
}

func (PoolMemberModel) TableName() string {
	return "pool_members"
}

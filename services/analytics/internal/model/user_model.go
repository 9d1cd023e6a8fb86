package model

type UserModel struct {
	ID                 string `gorm:"column:id;type:uuid;primaryKey"`
	Tier               string `gorm:"column:tier;type:varchar(20)"`
	PooledBalanceCents int64  `gorm:"column:pooled_balance_cents"`
	MonthlyWithdrawals int    `gorm:"column:monthly_withdrawals"`
}

func (UserModel) TableName() string {
	return "users"
}

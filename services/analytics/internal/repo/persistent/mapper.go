package persistent

import (
	"pool-fund/services/analytics/internal/entity"
	"pool-fund/services/analytics/internal/model"
)

func ToUserSnapshot(m *model.UserModel) entity.UserSnapshot {
	return entity.UserSnapshot{
		UserID:             m.ID,
		Tier:               m.Tier,
		PooledBalanceCents: m.PooledBalanceCents,
		MonthlyWithdrawals: m.MonthlyWithdrawals,
	}
}

func ToUserSnapshots(models []model.UserModel) []entity.UserSnapshot {
	results := make([]entity.UserSnapshot, len(models))
	for i := range models {
		results[i] = ToUserSnapshot(&models[i])
	}
	return results
}

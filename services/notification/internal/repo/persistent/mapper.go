package persistent

import "pool-fund/services/notification/internal/model"

func ToMemberIDs(models []model.PoolMemberModel) []string {
	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.UserID
	}
	return ids
}

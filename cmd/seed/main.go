package main

import (
	"errors"
	"flag"
	"fmt"

	"pool-fund/pkg/config"
	"pool-fund/pkg/database"
	"pool-fund/pkg/jwt"
	"pool-fund/pkg/logger"
	"pool-fund/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	email       string
	displayName string
	tier        models.UserTier
	pooledCents int64
	withdrawals int
	role        string
}

type seedPool struct {
	name        string
	ownerEmail  string
	goalCents   int64
	memberEmail []string
}

var seedUsers = []seedUser{
	{"alice@test.com", "Alice", models.TierPremium, 250000, 1, jwt.RoleAdmin},
	{"bob@test.com", "Bob", models.TierFree, 42000, 3, jwt.RoleMember},
	{"charlie@test.com", "Charlie", models.TierPlus, 18000, 0, jwt.RoleMember},
	{"diana@test.com", "Diana", models.TierFree, 0, 0, jwt.RoleMember},
}

var seedPools = []seedPool{
	{"Beach House 2027", "alice@test.com", 500000, []string{"alice@test.com", "bob@test.com", "charlie@test.com"}},
	{"Office Coffee Machine", "bob@test.com", 60000, []string{"bob@test.com", "diana@test.com"}},
}

func main() {
	var printTokens bool
	flag.BoolVar(&printTokens, "tokens", true, "print a bearer token for each seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userIDs, err := seedDatabase(db, log)
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	if printTokens {
		jwtService := jwt.NewService(cfg.JWTSecret)
		for _, u := range seedUsers {
			token, err := jwtService.GenerateToken(userIDs[u.email], u.role)
			if err != nil {
				log.Error("Failed to issue token for %s: %v", u.email, err)
				continue
			}
			fmt.Printf("%s (%s): %s\n", u.email, u.role, token)
		}
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) (map[string]string, error) {
	userIDs := make(map[string]string, len(seedUsers))

	for _, data := range seedUsers {
		var existing models.User
		err := db.Where("email = ?", data.email).First(&existing).Error
		if err == nil {
			log.Info("User %s already exists, skipping", data.email)
			userIDs[data.email] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user %s: %w", data.email, err)
		}

		user := &models.User{
			Email:              data.email,
			DisplayName:        data.displayName,
			Tier:               data.tier,
			PooledBalanceCents: data.pooledCents,
			MonthlyWithdrawals: data.withdrawals,
		}
		if err := db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", data.email, err)
		}
		log.Info("Created user: %s (%s)", user.DisplayName, user.Email)
		userIDs[data.email] = user.ID
	}

	for _, data := range seedPools {
		var pool models.Pool
		err := db.Where("name = ?", data.name).First(&pool).Error
		switch {
		case err == nil:
			log.Info("Pool %s already exists, skipping", data.name)
		case errors.Is(err, gorm.ErrRecordNotFound):
			pool = models.Pool{
				Name:            data.name,
				OwnerID:         userIDs[data.ownerEmail],
				GoalAmountCents: data.goalCents,
			}
			if err := db.Create(&pool).Error; err != nil {
				return nil, fmt.Errorf("failed to create pool %s: %w", data.name, err)
			}
			log.Info("Created pool: %s (goal %d cents)", pool.Name, pool.GoalAmountCents)
		default:
			return nil, fmt.Errorf("failed to look up pool %s: %w", data.name, err)
		}

		for _, email := range data.memberEmail {
			member := &models.PoolMember{PoolID: pool.ID, UserID: userIDs[email]}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error; err != nil {
				return nil, fmt.Errorf("failed to add %s to pool %s: %w", email, data.name, err)
			}
		}
	}

	log.Info("Created test pools and memberships")
	return userIDs, nil
}

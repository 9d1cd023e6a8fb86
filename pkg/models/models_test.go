package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:       "test@example.com",
		DisplayName: "Test",
		Tier:        TierFree,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:    existingID,
		Email: "test@example.com",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPool_BeforeCreate(t *testing.T) {
	pool := &Pool{
		Name:            "Beach House",
		OwnerID:         "owner-123",
		GoalAmountCents: 500000,
	}

	err := pool.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, pool.ID)

	id := pool.ID
	assert.NoError(t, pool.BeforeCreate(nil))
	assert.Equal(t, id, pool.ID)
}

package database

import (
	"context"
	"dashboard/utils"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDB(t *testing.T) {
	assert.Equal(t, "production", GetDB(utils.ENV_RELEASE))
	assert.Equal(t, "homolog", GetDB(utils.ENV_HOMOLOG))
	assert.Equal(t, "development", GetDB(utils.ENV_DEVELOPMENT))
	assert.Panics(t, func() { GetDB("staging") })
}

func TestConnectRedisRejectsBadURI(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "http://not-redis")
	assert.Error(t, err)
}

package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"mint-market.backend/pkg/logger"
)

func TestLogSMSSender_SendCode(t *testing.T) {
	logger.Init("development")
	sender := NewLogSMSSender()
	assert.NoError(t, sender.SendCode(context.Background(), "+15550001111", "123456"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "********1111", maskPhone("+15550001111"))
	assert.Equal(t, "1111", maskPhone("1111"))
	assert.Equal(t, "42", maskPhone("42"))
}

package notify

import (
	"context"

	"go.uber.org/zap"
	"mint-market.backend/pkg/logger"
)

// LogSMSSender writes login codes to the application log instead of a
// carrier. Used in development and as the default until a gateway is
// configured.
type LogSMSSender struct{}

// NewLogSMSSender creates a log-backed SMS sender
func NewLogSMSSender() *LogSMSSender {
	return &LogSMSSender{}
}

// SendCode logs the code for the phone number
func (s *LogSMSSender) SendCode(ctx context.Context, phoneNumber, code string) error {
	logger.Info(ctx, "sms login code issued",
		zap.String("phone_number", maskPhone(phoneNumber)),
		zap.String("code", code))
	return nil
}

// maskPhone hides all but the last four digits
func maskPhone(s string) string {
	if len(s) <= 4 {
		return s
	}
	masked := make([]byte, len(s)-4)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + s[len(s)-4:]
}

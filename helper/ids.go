package helper

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Các generator mã được inject để test có thể assert giá trị xác định.
var (
	NewTicketNumber = func() string {
		return "TKT-" + strings.ToUpper(uuid.New().String()[:10])
	}
	NewTicketCode = func() string {
		return uuid.New().String()
	}
	NewPaymentCode = func() string {
		return "PAY-" + time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
	}
)

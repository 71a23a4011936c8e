package helper

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock được inject để test expiry logic với thời gian cố định.
var Clock clockwork.Clock = clockwork.NewRealClock()

// ReservationTTL là cửa sổ giữ điểm mặc định cho một vé chưa thanh toán.
const ReservationTTL = 30 * time.Minute

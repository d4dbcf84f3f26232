package get_day_availability

import (
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response доступность всех слотов даты
type Response struct {
	Date      time.Time
	Closed    bool // нет приема в этот день недели
	Capacity  int  // дневной лимит
	Scheduled int  // активных записей на дату
	Remaining int
	Slots     []domain.DaySlot // все слоты рабочего дня по возрастанию
}

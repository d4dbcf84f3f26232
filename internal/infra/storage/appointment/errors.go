package appointment

import "errors"

// Ошибки отказа хранилища. Возвращаются и PostgreSQL репозиторием, и memory репозиторием.
var (
	// ErrAppointmentNotFound запись не найдена (или не принадлежит клиенту, или уже отменена)
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken на эту дату и время уже есть активная запись
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrDailyCapacityReached на дату уже есть максимальное число активных записей
	ErrDailyCapacityReached = errors.New("appointment.repository: daily capacity reached")

	// ErrClosedDay запись на четверг или выходной
	ErrClosedDay = errors.New("appointment.repository: closed day")

	// ErrOutOfHours время вне рабочих слотов
	ErrOutOfHours = errors.New("appointment.repository: out of business hours")

	// ErrLeadTime до начала записи меньше 24 часов
	ErrLeadTime = errors.New("appointment.repository: lead time violated")

	// ErrForbiddenChange попытка вернуть отмененную запись или изменить неизменяемые поля
	ErrForbiddenChange = errors.New("appointment.repository: forbidden change")

	// ErrDuplicateID запись с таким ID уже существует
	ErrDuplicateID = errors.New("appointment.repository: duplicate id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

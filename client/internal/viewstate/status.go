// Package viewstate содержит наблюдаемые записи состояния экранов и время жизни контроллера.
package viewstate

// Status - общие поля загрузки и ошибки любой записи состояния.
// Loading истинно только пока операция выполняется.
// Error очищается только явным вызовом.
type Status struct {
	Loading bool
	Error   string
}

// WithLoading возвращает копию с измененным флагом загрузки.
func (s Status) WithLoading(loading bool) Status {
	s.Loading = loading
	return s
}

// WithError возвращает копию с сообщением об ошибке.
func (s Status) WithError(msg string) Status {
	s.Error = msg
	return s
}

// HasError сообщает, есть ли неотображенная ошибка.
func (s Status) HasError() bool {
	return s.Error != ""
}

// ListState - состояние списка ресурсов.
type ListState[T any] struct {
	Items []T
	Status
}

// Without возвращает копию списка без элементов, для которых match вернул true.
func (l ListState[T]) Without(match func(T) bool) ListState[T] {
	items := make([]T, 0, len(l.Items))
	for _, it := range l.Items {
		if !match(it) {
			items = append(items, it)
		}
	}
	l.Items = items
	return l
}

// DeleteTarget - состояние подтверждения удаления. TargetID == 0 означает, что удаление не запрошено.
type DeleteTarget struct {
	TargetID int64
	Status
}

// Pending сообщает, ожидает ли удаление подтверждения.
func (d DeleteTarget) Pending() bool {
	return d.TargetID != 0
}

package set_phase

// SetPhaseRequest тело запроса управления фазой события.
//
// Два режима:
//   - auto=false (по умолчанию): зафиксировать фазу вручную,
//     автоматические переходы по расписанию замораживаются;
//   - auto=true: вернуть событие в автоматический режим, поле
//     phase игнорируется.
type SetPhaseRequest struct {
	Phase *int `json:"phase,omitempty"`
	Auto  bool `json:"auto,omitempty"`
}

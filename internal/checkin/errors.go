package checkin

import "fmt"

// RejectionKind enumerates the user-facing terminal outcomes of a
// confirmation attempt that do not record a check-in. Infrastructure
// failures (not ready, busy, internal) use pkg/domain-errors instead;
// rejections carry structured fields that are part of the HTTP contract.
type RejectionKind string

const (
	KindInvalidCPF       RejectionKind = "CPF_INVALIDO"
	KindNotRegistered    RejectionKind = "CPF_NAO_INSCRITO"
	KindNoRegistration   RejectionKind = "SEM_INSCRICAO"
	KindWaiting          RejectionKind = "FORA_HORARIO_AGUARDE"
	KindClosed           RejectionKind = "EVENTO_ENCERRADO"
	KindOutsideWindow    RejectionKind = "FORA_HORARIO"
	KindAlreadyConfirmed RejectionKind = "PRESENCA_JA_CONFIRMADA"
)

// Rejection is a terminal non-success outcome. Only the fields relevant to
// its kind are populated.
type Rejection struct {
	Kind RejectionKind

	// Attendee identification, when known.
	Nome      string
	Inscricao string

	// Day of the confirmed or attempted check-in.
	Dia string

	// Waiting outcome: next window and countdown (zero-padded).
	ProximoDia string
	LabelDia   string
	Horas      string
	Minutos    string

	// AlreadyConfirmed outcome: when the earlier check-in happened, when
	// known from the day table.
	Data string
	Hora string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("checkin rejected: %s", r.Kind)
}

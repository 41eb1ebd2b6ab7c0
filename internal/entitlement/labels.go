package entitlement

import (
	"fmt"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

// Display is the admin-facing rendering of a subscription state.
type Display struct {
	Label      string `json:"label"`
	StyleClass string `json:"style_class"`
}

// statusDisplay is the single status-to-label/color table; call sites must
// not carry their own literals.
var statusDisplay = map[Status]Display{
	StatusTrial:     {Label: "Período de teste", StyleClass: "badge-info"},
	StatusActive:    {Label: "Ativo", StyleClass: "badge-success"},
	StatusExpired:   {Label: "Expirado", StyleClass: "badge-warning"},
	StatusBlocked:   {Label: "Bloqueado", StyleClass: "badge-danger"},
	StatusCancelled: {Label: "Cancelado", StyleClass: "badge-muted"},
}

func StatusDisplay(s Status) Display {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return Display{Label: string(s), StyleClass: "badge-muted"}
}

// Describe renders the derived state with the days-remaining hint used by the
// tenant console ("Ativo — 12 dias restantes", "Vitalício", etc.).
func Describe(salon *models.Salon, now time.Time) string {
	if salon.IsLifetimeFree {
		return "Vitalício"
	}

	dec := Evaluate(salon, now)
	d := StatusDisplay(dec.DerivedStatus)

	if dec.Allowed && dec.DaysRemaining >= 0 {
		return fmt.Sprintf("%s — %d dias restantes", d.Label, dec.DaysRemaining)
	}
	return d.Label
}

package ui

import (
	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

// Intent messages emitted by page models. The root model translates these
// into controller operations; pages never touch the network themselves.
type (
	// NavigateMsg requests a view transition.
	NavigateMsg struct {
		Target session.View
	}

	// LogoutMsg requests the session be cleared.
	LogoutMsg struct{}

	// LoginSubmitMsg carries a completed login form.
	LoginSubmitMsg struct {
		Input types.LoginInput
	}

	// RegisterSubmitMsg carries a completed registration form.
	RegisterSubmitMsg struct {
		Input types.RegisterInput
	}

	// ProduceSubmitMsg carries a completed listing form. ImagePath is the
	// local file to encode, empty when no photo was attached.
	ProduceSubmitMsg struct {
		Input     types.ProduceInput
		ImagePath string
	}

	// OrderRequestMsg asks for one unit of the selected listing.
	OrderRequestMsg struct {
		ProduceID string
		Title     string
	}

	// ConfirmOrderMsg is a farmer accepting a pending order.
	ConfirmOrderMsg struct {
		OrderID string
	}

	// FiltersChangedMsg reports edited marketplace criteria.
	FiltersChangedMsg struct {
		Filters session.Filters
	}
)

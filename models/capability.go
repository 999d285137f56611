package models

// Action is something a user may try from the portal.
type Action string

const (
	ActionViewRestaurants    Action = "view_restaurants"
	ActionViewOrders         Action = "view_orders"
	ActionPlaceOrder         Action = "place_order"
	ActionCheckout           Action = "checkout"
	ActionCancel             Action = "cancel"
	ActionReconfigurePayment Action = "reconfigure_payment"
)

var actionRoles = map[Action][]Role{
	ActionViewRestaurants:    {RoleAdmin, RoleManager, RoleMember},
	ActionViewOrders:         {RoleAdmin, RoleManager, RoleMember},
	ActionPlaceOrder:         {RoleAdmin, RoleManager, RoleMember},
	ActionCheckout:           {RoleAdmin, RoleManager},
	ActionCancel:             {RoleAdmin, RoleManager},
	ActionReconfigurePayment: {RoleAdmin},
}

// CanPerform reports whether the portal should offer action to user. It only
// drives which controls are enabled; the backend makes the real decision.
func CanPerform(user *User, action Action) bool {
	if user == nil {
		return false
	}
	for _, role := range actionRoles[action] {
		if user.Role == role {
			return true
		}
	}
	return false
}

// ParseOrderAction maps a path segment onto an order transition.
func ParseOrderAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionCheckout, ActionCancel:
		return Action(raw), true
	}
	return "", false
}

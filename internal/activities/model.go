package activities

import "time"

// Action names recorded by the activity log.
const (
	ActionLogin             = "LOGIN"
	ActionAddMoney          = "ADD_MONEY"
	ActionSendMoney         = "SEND_MONEY"
	ActionAddProduct        = "ADD_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
	ActionUpdateTransaction = "UPDATE_TRANSACTION"
	ActionDeleteTransaction = "DELETE_TRANSACTION"
	ActionAddEvent          = "ADD_EVENT"
	ActionUpdateEvent       = "UPDATE_EVENT"
	ActionDeleteEvent       = "DELETE_EVENT"
	ActionCreatePinCode     = "CREATE_PIN_CODE"
	ActionConfirmPinCode    = "ACTIVE_PIN_CODE"
)

// Activity is one recorded user action.
type Activity struct {
	ID         string    `json:"_id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	ActionName string    `json:"actionName" db:"action_name"`
	Email      string    `json:"email" db:"email"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

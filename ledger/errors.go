package ledger

import "errors"

// Trade rejections. All of them are recoverable: the order is refused, the
// ledger is untouched, and the message goes back to the submitter only.
var (
	ErrInsufficientFunds    = errors.New("可用資金不足")
	ErrInsufficientHoldings = errors.New("持股不足")
	ErrUnknownOwner         = errors.New("未知的使用者")
	ErrInvalidOrder         = errors.New("無效的交易指令")
)

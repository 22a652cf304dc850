package domain

import "errors"

var (
	ErrDeckEmpty            = errors.New("deck is empty")
	ErrWasteEmpty           = errors.New("waste is empty")
	ErrSlotOccupied         = errors.New("slot is occupied")
	ErrSlotEmpty            = errors.New("slot is empty")
	ErrUnknownSlot          = errors.New("slot not found")
	ErrIllegalMove          = errors.New("illegal move")
	ErrInsufficientCurrency = errors.New("insufficient currency")
	ErrInvalidLayoutParams  = errors.New("invalid layout parameters")
	ErrInvalidState         = errors.New("command not allowed in current state")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

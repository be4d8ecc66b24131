package models

// MoveRequest is the body of a human move. Pointers let 0 pass the
// required check.
type MoveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

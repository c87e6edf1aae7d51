package engine

// SetSeatOccupant rebinds a seat's occupant, used when a human claims
// an AI seat mid-session or a leaver's seat reverts to the computer.
// Hand, score, and elimination stay with the seat, not the occupant.
func SetSeatOccupant(s *GameState, seat int, name string, t PlayerType) *GameState {
	next := s.clone()
	next.Players[seat].Name = name
	next.Players[seat].Type = t
	return next
}

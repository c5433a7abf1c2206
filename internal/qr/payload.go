package qr

import "encoding/json"

const (
	TypeStallReservation = "stall-reservation"
	TypeProduceDonation  = "produce-donation"
)

// Payload is the small JSON document embedded in every scannable image.
// It is re-derivable from the stored token, so losing the image is
// never fatal to a commitment.
type Payload struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservationId,omitempty"`
	DonationID    string `json:"donationId,omitempty"`
	ProgramID     string `json:"programId"`
	DonorID       string `json:"donorId"`
	SlotNumber    int    `json:"slotNumber,omitempty"`
}

func (p Payload) Encode() ([]byte, error) { return json.Marshal(p) }

func DecodePayload(b []byte) (Payload, error) {
	var p Payload
	err := json.Unmarshal(b, &p)
	return p, err
}

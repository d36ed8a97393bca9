package formation

import "github.com/soccerscope/soccerscope/internal/models"

// SlotID names one of the 11 fixed roles in the 4-3-3 template.
type SlotID string

const (
	SlotGK  SlotID = "GK"
	SlotLB  SlotID = "LB"
	SlotLCB SlotID = "LCB"
	SlotRCB SlotID = "RCB"
	SlotRB  SlotID = "RB"
	SlotLM  SlotID = "LM"
	SlotCM  SlotID = "CM"
	SlotRM  SlotID = "RM"
	SlotLF  SlotID = "LF"
	SlotCF  SlotID = "CF"
	SlotRF  SlotID = "RF"
)

// Slot is static formation configuration: a role on the pitch with a
// normalized coordinate and the coarse bucket it is allowed to host.
type Slot struct {
	ID     SlotID            `json:"id"`
	Bucket models.RoleBucket `json:"bucket"`
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
}

// Own goal at the bottom of the pitch (y=1), attacking toward y=0.
var template433 = []Slot{
	{ID: SlotGK, Bucket: models.BucketGK, X: 0.50, Y: 0.93},
	{ID: SlotLB, Bucket: models.BucketDF, X: 0.15, Y: 0.74},
	{ID: SlotLCB, Bucket: models.BucketDF, X: 0.38, Y: 0.78},
	{ID: SlotRCB, Bucket: models.BucketDF, X: 0.62, Y: 0.78},
	{ID: SlotRB, Bucket: models.BucketDF, X: 0.85, Y: 0.74},
	{ID: SlotLM, Bucket: models.BucketMF, X: 0.25, Y: 0.50},
	{ID: SlotCM, Bucket: models.BucketMF, X: 0.50, Y: 0.54},
	{ID: SlotRM, Bucket: models.BucketMF, X: 0.75, Y: 0.50},
	{ID: SlotLF, Bucket: models.BucketFW, X: 0.20, Y: 0.24},
	{ID: SlotCF, Bucket: models.BucketFW, X: 0.50, Y: 0.18},
	{ID: SlotRF, Bucket: models.BucketFW, X: 0.80, Y: 0.24},
}

// Slots returns a fresh copy of the 4-3-3 slot template.
func Slots() []Slot {
	slots := make([]Slot, len(template433))
	copy(slots, template433)
	return slots
}

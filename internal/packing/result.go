package packing

// Result is the outcome of one placement attempt: either a committed placement
// (Placed true, with the bin, origin and orientation) or an unfit marker with
// the first blocking reason encountered during the search. Results are
// produced once per expanded item instance and are immutable.
type Result struct {
	Item     *Item
	Instance int
	Placed   bool
	BinID    string
	Origin   Vector
	Rotation Rotation
	Reason   UnfitReason
}

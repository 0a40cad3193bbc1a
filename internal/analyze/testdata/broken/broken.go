package broken

// Crate holds something that does not exist.
//
// +collection:name=Crates
type Crate struct {
	Contents Missing
}

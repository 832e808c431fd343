package platform

// Host identifies the machine a result was produced on.
type Host struct {
	Name    string
	Machine string
}

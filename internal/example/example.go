// Package example generates graph files of small models with fixed
// pseudo-random weights.
package example

var menu = [...]struct {
	name string
	call func() []byte
}{
	{"MLP", MLP},
	{"ConvNet", ConvNet},
	{"LSTM", LSTM},
	{"GRU", GRU},
	{"Merge", Merge},
}

func Names() []string {
	names := make([]string, len(menu))
	for i := range &menu {
		names[i] = menu[i].name
	}
	return names
}

// Generate returns nil for an unknown name.
func Generate(name string) []byte {
	for i := range &menu {
		if menu[i].name == name {
			return menu[i].call()
		}
	}
	return nil
}

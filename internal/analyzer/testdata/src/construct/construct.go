package construct

import "bytes"

type Widget struct{ Name string }

type Gadget struct {
	W *Widget
}

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

type Alias = Widget

type Names []string

type Counter int

func Build() {
	_ = Widget{}                   // want `for the type construct\.Widget$`
	_ = &Widget{Name: "x"}         // want `for the type construct\.Widget$`
	_ = new(Widget)                // want `for the type construct\.Widget$`
	_ = Gadget{W: &Widget{}}       // want `for the type construct\.Gadget$` `for the type construct\.Widget$`
	_ = []*Widget{{}, {Name: "y"}} // want `for the type construct\.Widget$` `for the type construct\.Widget$`
	_ = Pair[string, int]{}        // want `for the type construct\.Pair$`
	_ = Alias{}                    // want `for the type construct\.Widget$`
	_ = &bytes.Buffer{}            // want `Prefer using dependency inversion to new operator for the type bytes\.Buffer`

	_ = Names{"a"}
	_ = map[string]int{}
	_ = []int{1}
	_ = struct{ X int }{1}
	_ = new(int)
	_ = new(Counter)

	var w Widget
	_ = w
}

func Local() {
	type inner struct{}
	_ = inner{} // want `for the type construct\.Local\.inner$`
}

func (g *Gadget) Method() {
	type helper struct{}
	_ = helper{} // want `for the type construct\.Gadget\.Method\.helper$`
}

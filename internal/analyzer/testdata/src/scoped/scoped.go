package scoped

import "bytes"

type Allowed struct{}

type Flagged struct{}

func F() {
	_ = &bytes.Buffer{}
	_ = Allowed{}
	_ = Flagged{} // want `for the type scoped\.Flagged$`
}

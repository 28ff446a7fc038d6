package excluded

import (
	"bytes"
	"strings"
)

type Local struct{}

func F() {
	_ = &bytes.Buffer{}
	_ = strings.Builder{}
	_ = Local{} // want `for the type excluded\.Local$`
}

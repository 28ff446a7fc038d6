package nested

type Public struct{}

type hidden struct{}

func F() {
	type Local struct{}

	_ = Local{}
	_ = Public{} // want `for the type nested\.Public$`
	_ = hidden{} // want `for the type nested\.hidden$`
}

package private

type Public struct{}

type hidden struct{}

func F() {
	type local struct{}

	_ = Public{} // want `for the type private\.Public$`
	_ = hidden{}
	_ = local{}
}

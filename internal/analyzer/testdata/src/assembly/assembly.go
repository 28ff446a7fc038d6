package assembly

type T struct{}

func F() {
	_ = T{}
	_ = new(T)
}
